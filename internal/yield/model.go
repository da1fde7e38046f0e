package yield

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DefaultLandArea is used when landArea is absent or cannot be read as a
// finite, non-negative number.
const DefaultLandArea = 1.0

// Request carries the farming parameters submitted by the yield estimator panel.
type Request struct {
	Crop              string   `json:"crop"`
	LandArea          LandArea `json:"landArea"`
	SoilType          string   `json:"soilType"`
	WaterAvailability string   `json:"waterAvailability"`
	IrrigationMethod  string   `json:"irrigationMethod"`
	FertilizerUse     string   `json:"fertilizerUse"`
	FarmingMethod     string   `json:"farmingMethod"`

	// Collected by the form but not scored.
	PesticideUse string `json:"pesticideUse,omitempty"`
	SowingMonth  string `json:"sowingMonth,omitempty"`
	HarvestMonth string `json:"harvestMonth,omitempty"`
}

// Result is the forecast returned to the caller.
type Result struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Efficiency  int    `json:"efficiency"`
}

// LandArea accepts a JSON string or number. Anything else, including
// null, leaves it unset. A numeric zero counts as absent; the text "0"
// is a real zero.
type LandArea struct {
	raw     string
	value   float64
	set     bool
	numeric bool
}

// Acres builds a LandArea from a number.
func Acres(v float64) LandArea {
	return LandArea{raw: strconv.FormatFloat(v, 'f', -1, 64), value: v, set: true, numeric: true}
}

// ParseLandArea builds a LandArea from user text. Unparseable text leaves it unset.
func ParseLandArea(s string) LandArea {
	s = strings.TrimSpace(s)
	if s == "" {
		return LandArea{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return LandArea{raw: s}
	}
	return LandArea{raw: s, value: v, set: true}
}

// Value resolves the land area, falling back to DefaultLandArea.
func (a LandArea) Value() float64 {
	if a.Defaulted() {
		return DefaultLandArea
	}
	return a.value
}

// Defaulted reports whether Value falls back to DefaultLandArea.
func (a LandArea) Defaulted() bool {
	if !a.set || math.IsNaN(a.value) || math.IsInf(a.value, 0) || a.value < 0 {
		return true
	}
	return a.numeric && a.value == 0
}

func (a *LandArea) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*a = LandArea{}
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*a = ParseLandArea(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*a = ParseLandArea(string(data))
		a.numeric = a.set
	}
	return nil
}

func (a LandArea) MarshalJSON() ([]byte, error) {
	if !a.set {
		if a.raw == "" {
			return []byte("null"), nil
		}
		return json.Marshal(a.raw)
	}
	return json.Marshal(a.value)
}
