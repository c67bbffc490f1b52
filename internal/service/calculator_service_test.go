package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yourorg/buildbid/internal/model"
)

func TestEstimateConcreteWithRatio(t *testing.T) {
	svc := NewCalculatorService()

	estimate, err := svc.Estimate(model.MaterialInput{
		Length:       10,
		Width:        5,
		Height:       3,
		Thickness:    0.2,
		MaterialType: "concrete",
		MixRatio:     "1:2:4",
	})
	require.NoError(t, err)

	// volume = 10 * 5 * 0.2 = 10 m3, total ratio parts = 7
	require.InDelta(t, 10.0/7.0*7, estimate.CementBags, 1e-9)
	require.InDelta(t, 10.0*2/7, estimate.SandVolume, 1e-9)
	require.InDelta(t, 10.0*4/7, estimate.AggregateVolume, 1e-9)

	expectedCost := estimate.CementBags*8.5 + estimate.SandVolume*25 + estimate.AggregateVolume*30
	require.InDelta(t, expectedCost, estimate.TotalCost, 1e-9)
}

func TestEstimateConcreteReadyMix(t *testing.T) {
	svc := NewCalculatorService()

	estimate, err := svc.Estimate(model.MaterialInput{
		Length:       4,
		Width:        3,
		Height:       2,
		MaterialType: "concrete",
		MixRatio:     "ready-mix",
	})
	require.NoError(t, err)

	// Default thickness of 0.15 applies when none is given.
	volume := 4.0 * 3.0 * 0.15
	require.InDelta(t, volume, estimate.ConcreteVolume, 1e-9)
	require.InDelta(t, volume*120, estimate.TotalCost, 1e-9)
	require.Zero(t, estimate.CementBags)
}

func TestEstimateBrickwork(t *testing.T) {
	svc := NewCalculatorService()

	estimate, err := svc.Estimate(model.MaterialInput{
		Length:       8,
		Width:        1,
		Height:       2.5,
		MaterialType: "brickwork",
	})
	require.NoError(t, err)

	wallArea := 8.0 * 2.5
	require.InDelta(t, wallArea*55, estimate.Bricks, 1e-9)
	require.InDelta(t, wallArea*0.03, estimate.MortarVolume, 1e-9)
	require.InDelta(t, estimate.Bricks*0.5+estimate.MortarVolume*95, estimate.TotalCost, 1e-9)
}

func TestEstimateSteel(t *testing.T) {
	svc := NewCalculatorService()

	estimate, err := svc.Estimate(model.MaterialInput{
		Length:       6,
		Width:        4,
		Height:       3,
		Thickness:    0.25,
		MaterialType: "steel",
	})
	require.NoError(t, err)

	volume := 6.0 * 4.0 * 0.25
	require.InDelta(t, volume*80, estimate.SteelWeight, 1e-9)
	require.InDelta(t, estimate.SteelWeight*1.2, estimate.TotalCost, 1e-9)
}

func TestEstimateRejectsMissingDimensions(t *testing.T) {
	svc := NewCalculatorService()

	cases := []model.MaterialInput{
		{Length: 0, Width: 5, Height: 3, MaterialType: "concrete"},
		{Length: 10, Width: 0, Height: 3, MaterialType: "concrete"},
		{Length: 10, Width: 5, Height: 0, MaterialType: "concrete"},
	}
	for _, input := range cases {
		_, err := svc.Estimate(input)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	}
}

func TestEstimateRejectsBadMixRatio(t *testing.T) {
	svc := NewCalculatorService()

	for _, ratio := range []string{"1:2", "a:b:c", "1:0:4", "1:2:3:4"} {
		_, err := svc.Estimate(model.MaterialInput{
			Length:       1,
			Width:        1,
			Height:       1,
			MaterialType: "concrete",
			MixRatio:     ratio,
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "mix_ratio", verr.Field)
	}
}

func TestEstimateRejectsUnknownMaterial(t *testing.T) {
	svc := NewCalculatorService()

	_, err := svc.Estimate(model.MaterialInput{
		Length:       1,
		Width:        1,
		Height:       1,
		MaterialType: "timber",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "material_type", verr.Field)
}
