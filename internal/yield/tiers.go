package yield

import (
	"fmt"
	"math"
	"unicode"
	"unicode/utf8"
)

// Tier buckets the clamped efficiency score.
type Tier string

const (
	TierExcellent   Tier = "Excellent"
	TierStrong      Tier = "Strong"
	TierModerate    Tier = "Moderate"
	TierChallenging Tier = "Challenging"
)

type tierSpec struct {
	tier     Tier
	above    int
	noun     string
	describe func(req Request, score int) string
}

// Evaluated top-down; the first entry whose bound the score exceeds wins.
var tiers = []tierSpec{
	{
		tier: TierExcellent, above: 85, noun: "Forecast",
		describe: func(req Request, score int) string {
			return fmt.Sprintf("Your %s yield is predicted to be exceptional (%d%% efficiency). The combination of %s soil and %s practices is highly effective.",
				req.Crop, score, req.SoilType, req.FarmingMethod)
		},
	},
	{
		tier: TierStrong, above: 70, noun: "Potential",
		describe: func(req Request, score int) string {
			return fmt.Sprintf("You can expect a solid harvest with around %d%% yield efficiency. Your %s irrigation strategy is helping stabilize growth.",
				score, req.IrrigationMethod)
		},
	},
	{
		tier: TierModerate, above: 55, noun: "Growth",
		describe: func(req Request, score int) string {
			focus := "water management"
			if req.FertilizerUse == "None" {
				focus = "fertilizer use"
			}
			return fmt.Sprintf("Current predictions suggest a %d%% efficiency. Consider optimizing %s to improve the outcome.", score, focus)
		},
	},
	{
		tier: TierChallenging, above: math.MinInt, noun: "Outlook",
		describe: func(req Request, score int) string {
			return fmt.Sprintf("Predicted yield is lower than average (%d%%). %s soil with %s water availability presents some hurdles. Explore Drip irrigation.",
				score, req.SoilType, req.WaterAvailability)
		},
	},
}

func tierFor(score int) tierSpec {
	for _, t := range tiers {
		if score > t.above {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

// TierFor maps a clamped score to its tier.
func TierFor(score int) Tier {
	return tierFor(score).tier
}

func (t tierSpec) title(crop string) string {
	return fmt.Sprintf("%s %s %s", t.tier, capitalize(crop), t.noun)
}

// capitalize upper-cases the first rune and leaves the rest untouched.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
