package yield

// BaseScore is the starting efficiency before any rule applies.
const BaseScore = 70

// Bounds of the efficiency score.
const (
	MinScore = 40
	MaxScore = 98
)

// Field names a scored request attribute, using its JSON name.
type Field string

const (
	FieldSoilType          Field = "soilType"
	FieldWaterAvailability Field = "waterAvailability"
	FieldIrrigationMethod  Field = "irrigationMethod"
	FieldFertilizerUse     Field = "fertilizerUse"
	FieldFarmingMethod     Field = "farmingMethod"
)

// Condition is an extra exact-match test a rule can require.
type Condition struct {
	Field  Field
	Value  string
	Negate bool
}

// Rule adds Delta when Field equals Value (case-sensitive) and every
// condition holds. At most one rule per field applies; earlier rules win.
type Rule struct {
	Field      Field
	Value      string
	Conditions []Condition
	Delta      int
}

var rules = []Rule{
	{Field: FieldSoilType, Value: "Loamy", Delta: 15},
	{Field: FieldSoilType, Value: "Clay", Delta: 5},
	{Field: FieldSoilType, Value: "Sandy", Delta: -5},

	{Field: FieldWaterAvailability, Value: "High", Delta: 10},
	{Field: FieldWaterAvailability, Value: "Low", Delta: -15,
		Conditions: []Condition{{Field: FieldIrrigationMethod, Value: "Drip", Negate: true}}},
	{Field: FieldWaterAvailability, Value: "Low", Delta: -5,
		Conditions: []Condition{{Field: FieldIrrigationMethod, Value: "Drip"}}},

	{Field: FieldFarmingMethod, Value: "Organic", Delta: 5},
	{Field: FieldFarmingMethod, Value: "Hydroponic", Delta: 12},

	{Field: FieldFertilizerUse, Value: "None", Delta: -10},
	{Field: FieldFertilizerUse, Value: "Mixed", Delta: 8},
}

// Rules returns a copy of the scoring table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = r
		out[i].Conditions = append([]Condition(nil), r.Conditions...)
	}
	return out
}

func (r Request) value(f Field) string {
	switch f {
	case FieldSoilType:
		return r.SoilType
	case FieldWaterAvailability:
		return r.WaterAvailability
	case FieldIrrigationMethod:
		return r.IrrigationMethod
	case FieldFertilizerUse:
		return r.FertilizerUse
	case FieldFarmingMethod:
		return r.FarmingMethod
	default:
		return ""
	}
}

func (r Rule) matches(req Request) bool {
	if req.value(r.Field) != r.Value {
		return false
	}
	for _, c := range r.Conditions {
		if (req.value(c.Field) == c.Value) == c.Negate {
			return false
		}
	}
	return true
}

// applyRules returns the rules that fire for req, in table order.
func applyRules(table []Rule, req Request) []Rule {
	fired := make([]Rule, 0, 4)
	seen := make(map[Field]bool, 4)
	for _, r := range table {
		if seen[r.Field] || !r.matches(req) {
			continue
		}
		seen[r.Field] = true
		fired = append(fired, r)
	}
	return fired
}

func clamp(score int) int {
	return min(max(score, MinScore), MaxScore)
}
