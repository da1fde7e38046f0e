package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmhub-backend/internal/yield"
)

func execute(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEstimateCommand(t *testing.T) {
	out, err := execute("estimate", "--crop", "corn", "--land-area", "3", "--soil", "Silt", "--water", "High", "--method", "Conventional")
	require.NoError(t, err)

	var got yield.Result
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 80, got.Efficiency)
	assert.Equal(t, "Strong Corn Potential", got.Title)
	assert.Contains(t, got.Description, "24.0 tons")
}

func TestEstimateCommandRequiresCrop(t *testing.T) {
	_, err := execute("estimate", "--soil", "Loamy")
	require.Error(t, err)
	assert.True(t, errors.Is(err, yield.ErrInvalidInput))
}

func TestExplainCommand(t *testing.T) {
	out, err := execute("explain", "--crop", "rice", "--water", "Low", "--irrigation", "Drip")
	require.NoError(t, err)

	var got yield.Breakdown
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	want := []yield.Adjustment{{Field: yield.FieldWaterAvailability, Value: "Low", Delta: -5}}
	if diff := cmp.Diff(want, got.Adjustments); diff != "" {
		t.Fatalf("adjustments mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 65, got.Score)
}

func TestRulesCommandListsEveryRule(t *testing.T) {
	out, err := execute("rules")
	require.NoError(t, err)
	assert.Contains(t, out, "BASE")
	assert.Contains(t, out, "irrigationMethod!=Drip")
	for _, r := range yield.Rules() {
		assert.Contains(t, out, r.Value)
	}
}
