package yield

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEstimateExcellentClampsAt98(t *testing.T) {
	req := Request{
		Crop:              "wheat",
		LandArea:          ParseLandArea("2"),
		SoilType:          "Loamy",
		WaterAvailability: "High",
		IrrigationMethod:  "Sprinkler",
		FertilizerUse:     "Mixed",
		FarmingMethod:     "Hydroponic",
	}

	got, err := Estimate(req)
	require.NoError(t, err)

	want := Result{
		Title: "Excellent Wheat Forecast",
		Description: "Your wheat yield is predicted to be exceptional (98% efficiency). " +
			"The combination of Loamy soil and Hydroponic practices is highly effective. " +
			"Estimated production: 19.6 tons. Confidence Score: 98%",
		Efficiency: 98,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Estimate mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 115, Explain(req).RawScore)
}

func TestEstimateChallengingFloorsAt40(t *testing.T) {
	req := Request{
		Crop:              "rice",
		SoilType:          "Sandy",
		WaterAvailability: "Low",
		IrrigationMethod:  "Flood",
		FertilizerUse:     "None",
		FarmingMethod:     "Conventional",
	}

	got, err := Estimate(req)
	require.NoError(t, err)

	assert.Equal(t, 40, got.Efficiency)
	assert.Equal(t, "Challenging Rice Outlook", got.Title)
	assert.Equal(t, "Predicted yield is lower than average (40%). Sandy soil with Low water availability presents some hurdles. "+
		"Explore Drip irrigation. Estimated production: 4.0 tons. Confidence Score: 40%", got.Description)
	assert.Equal(t, 40, Explain(req).RawScore)
}

func TestEstimateDripMitigatesLowWater(t *testing.T) {
	base := Request{Crop: "wheat", WaterAvailability: "Low", IrrigationMethod: "Drip"}
	flood := base
	flood.IrrigationMethod = "Flood"

	assert.Equal(t, BaseScore-5, Explain(base).Score)
	assert.Equal(t, BaseScore-15, Explain(flood).Score)
}

func TestEstimateModerateSuggestsWaterOrFertilizer(t *testing.T) {
	// Frontend defaults: Sandy, Low water, Drip, Organic fertilizer, Organic farming.
	req := Request{
		Crop:              "wheat",
		LandArea:          ParseLandArea("2"),
		SoilType:          "Sandy",
		WaterAvailability: "Low",
		IrrigationMethod:  "Drip",
		FertilizerUse:     "Organic",
		FarmingMethod:     "Organic",
	}
	got, err := Estimate(req)
	require.NoError(t, err)
	assert.Equal(t, 65, got.Efficiency)
	assert.Equal(t, "Moderate Wheat Growth", got.Title)
	assert.Equal(t, "Current predictions suggest a 65% efficiency. Consider optimizing water management to improve the outcome. "+
		"Estimated production: 13.0 tons. Confidence Score: 65%", got.Description)

	req.FertilizerUse = "None"
	req.FarmingMethod = "Hydroponic"
	got, err = Estimate(req)
	require.NoError(t, err)
	assert.Equal(t, 62, got.Efficiency)
	assert.Contains(t, got.Description, "Consider optimizing fertilizer use")
}

func TestEstimateProductionUsesLandArea(t *testing.T) {
	req := Request{
		Crop:              "corn",
		LandArea:          ParseLandArea("3"),
		SoilType:          "Silt",
		WaterAvailability: "High",
		IrrigationMethod:  "Sprinkler",
		FertilizerUse:     "Chemical",
		FarmingMethod:     "Conventional",
	}
	got, err := Estimate(req)
	require.NoError(t, err)

	assert.Equal(t, 80, got.Efficiency)
	assert.Equal(t, "Strong Corn Potential", got.Title)
	assert.True(t, strings.HasSuffix(got.Description, "Estimated production: 24.0 tons. Confidence Score: 80%"), got.Description)
	assert.Contains(t, got.Description, "Your Sprinkler irrigation strategy")
}

func TestEstimateProductionRoundsExactHalvesUp(t *testing.T) {
	cases := []struct {
		name     string
		req      Request
		score    int
		wantTons string
	}{
		{
			name: "quarter acre at 50",
			req: Request{Crop: "millet", LandArea: ParseLandArea("0.25"), WaterAvailability: "Low",
				IrrigationMethod: "Flood", FertilizerUse: "None", FarmingMethod: "Organic"},
			score:    50,
			wantTons: "1.3",
		},
		{
			name:     "quarter acre at 70",
			req:      Request{Crop: "millet", LandArea: ParseLandArea("0.25")},
			score:    70,
			wantTons: "1.8",
		},
		{
			name:     "numeric zero acres falls back to one",
			req:      Request{Crop: "millet", LandArea: Acres(0)},
			score:    70,
			wantTons: "7.0",
		},
		{
			name:     "text zero acres stays zero",
			req:      Request{Crop: "millet", LandArea: ParseLandArea("0")},
			score:    70,
			wantTons: "0.0",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Estimate(tc.req)
			require.NoError(t, err)
			assert.Equal(t, tc.score, got.Efficiency)
			assert.Contains(t, got.Description, "Estimated production: "+tc.wantTons+" tons.")
		})
	}
}

func TestFormatTenths(t *testing.T) {
	cases := map[float64]string{
		1.25:  "1.3",
		1.75:  "1.8",
		0.25:  "0.3",
		1.45:  "1.4", // stored just below the tie
		0.15:  "0.1",
		24:    "24.0",
		0:     "0.0",
		-1.25: "-1.3",
		-0.25: "-0.3",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatTenths(in), "%v", in)
	}
	assert.Equal(t, "0.0", formatTenths(math.Copysign(0, -1)))
}

func TestEstimateUnknownValuesScoreZero(t *testing.T) {
	req := Request{Crop: "barley", SoilType: "Unknown", WaterAvailability: "high", FertilizerUse: "mixed", FarmingMethod: "Biodynamic"}

	b := Explain(req)
	assert.Empty(t, b.Adjustments)
	assert.Equal(t, BaseScore, b.Score)

	_, err := Estimate(req)
	assert.NoError(t, err)
}

func TestEstimateRejectsMissingCrop(t *testing.T) {
	for _, crop := range []string{"", "   "} {
		_, err := Estimate(Request{Crop: crop, SoilType: "Loamy"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))

		var yerr *Error
		require.True(t, errors.As(err, &yerr))
		assert.Equal(t, KindInvalidInput, yerr.Kind)
		assert.Equal(t, "crop", yerr.Field)
	}
}

func TestEstimateCapitalizesOnlyFirstRune(t *testing.T) {
	got, err := Estimate(Request{Crop: "éPEAUTRE", SoilType: "Loamy", WaterAvailability: "High"})
	require.NoError(t, err)
	assert.Equal(t, "Excellent ÉPEAUTRE Forecast", got.Title)
}

func TestEstimateBoundedAndDeterministicAcrossDomain(t *testing.T) {
	soils := []string{"Loamy", "Clay", "Sandy", "Silt", "Peaty", "Chalky", "Unknown", ""}
	waters := []string{"High", "Medium", "Low", ""}
	irrigations := []string{"Drip", "Sprinkler", "Flood", "Manual", ""}
	fertilizers := []string{"None", "Organic", "Chemical", "Mixed", ""}
	methods := []string{"Organic", "Hydroponic", "Conventional", "Permaculture", ""}

	for _, soil := range soils {
		for _, water := range waters {
			for _, irrigation := range irrigations {
				for _, fert := range fertilizers {
					for _, method := range methods {
						req := Request{
							Crop: "soybean", LandArea: ParseLandArea("1.5"),
							SoilType: soil, WaterAvailability: water, IrrigationMethod: irrigation,
							FertilizerUse: fert, FarmingMethod: method,
						}
						first, err := Estimate(req)
						require.NoError(t, err)
						second, _ := Estimate(req)
						require.Equal(t, first, second)
						require.GreaterOrEqual(t, first.Efficiency, MinScore)
						require.LessOrEqual(t, first.Efficiency, MaxScore)
						require.True(t, strings.HasPrefix(first.Title, string(TierFor(first.Efficiency))))
					}
				}
			}
		}
	}
}

func TestEstimateConcurrentCallsAgree(t *testing.T) {
	req := Request{Crop: "cotton", SoilType: "Clay", WaterAvailability: "Low", IrrigationMethod: "Drip", FertilizerUse: "Mixed"}
	want, err := Estimate(req)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Result, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Estimate(req)
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestTierThresholds(t *testing.T) {
	cases := map[int]Tier{
		98: TierExcellent, 86: TierExcellent, 85: TierStrong, 71: TierStrong,
		70: TierModerate, 56: TierModerate, 55: TierChallenging, 40: TierChallenging,
	}
	for score, want := range cases {
		assert.Equal(t, want, TierFor(score), "score %d", score)
	}
}
