// Package yield scores farming parameters into a bounded efficiency
// forecast. Everything here is a pure function of its input and safe for
// concurrent use.
package yield

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Adjustment is one fired rule in a Breakdown.
type Adjustment struct {
	Field Field  `json:"field"`
	Value string `json:"value"`
	Delta int    `json:"delta"`
}

// Breakdown explains how a score was reached.
type Breakdown struct {
	Base        int          `json:"base"`
	Adjustments []Adjustment `json:"adjustments"`
	RawScore    int          `json:"rawScore"`
	Score       int          `json:"score"`
	Tier        Tier         `json:"tier"`
	LandArea    float64      `json:"landArea"`
	Production  float64      `json:"productionTons"`
}

// Validate checks the fields the forecast text cannot do without.
func Validate(req Request) error {
	if strings.TrimSpace(req.Crop) == "" {
		return invalid("crop", "is required")
	}
	return nil
}

// Explain scores req without rendering text. It does not validate.
func Explain(req Request) Breakdown {
	fired := applyRules(rules, req)
	raw := BaseScore
	adjustments := make([]Adjustment, 0, len(fired))
	for _, r := range fired {
		raw += r.Delta
		adjustments = append(adjustments, Adjustment{Field: r.Field, Value: r.Value, Delta: r.Delta})
	}
	score := clamp(raw)
	area := req.LandArea.Value()
	return Breakdown{
		Base:        BaseScore,
		Adjustments: adjustments,
		RawScore:    raw,
		Score:       score,
		Tier:        TierFor(score),
		LandArea:    area,
		Production:  area * (float64(score) / 10),
	}
}

// Estimate scores req and renders the forecast. The only failure is a
// missing crop, reported as an *Error of kind InvalidInput.
func Estimate(req Request) (Result, error) {
	if err := Validate(req); err != nil {
		return Result{}, err
	}
	b := Explain(req)
	return render(req, b), nil
}

func render(req Request, b Breakdown) Result {
	t := tierFor(b.Score)
	description := fmt.Sprintf("%s Estimated production: %s tons. Confidence Score: %d%%",
		t.describe(req, b.Score), formatTenths(b.Production), b.Score)
	return Result{
		Title:       t.title(req.Crop),
		Description: description,
		Efficiency:  b.Score,
	}
}

// formatTenths renders x with one decimal. Exact ties round away from
// zero; every other value rounds to nearest as %.1f does.
func formatTenths(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmt.Sprintf("%.1f", x)
	}
	if x == 0 {
		return "0.0"
	}
	sign := ""
	if x < 0 {
		sign, x = "-", -x
	}
	scaled := new(big.Float).SetPrec(128).SetFloat64(x)
	scaled.Mul(scaled, big.NewFloat(10))
	whole, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(128).Sub(scaled, new(big.Float).SetPrec(128).SetInt(whole))
	if frac.Cmp(big.NewFloat(0.5)) != 0 {
		return sign + fmt.Sprintf("%.1f", x)
	}
	digits := whole.Add(whole, big.NewInt(1)).String()
	if len(digits) < 2 {
		digits = "0" + digits
	}
	return sign + digits[:len(digits)-1] + "." + digits[len(digits)-1:]
}
