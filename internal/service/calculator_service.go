package service

import (
	"strconv"
	"strings"

	"github.com/yourorg/buildbid/internal/model"
)

// Material cost rates. Cement is per 50kg bag, sand, aggregate, and mortar
// per cubic meter, concrete per cubic meter ready-mixed, bricks per unit,
// steel per kg.
const (
	costCement    = 8.5
	costSand      = 25.0
	costAggregate = 30.0
	costConcrete  = 120.0
	costBrick     = 0.5
	costMortar    = 95.0
	costSteel     = 1.2
)

const (
	defaultThickness = 0.15
	cementBagsPerM3  = 7.0
	bricksPerSqm     = 55.0
	mortarThickness  = 0.03
	steelKgPerM3     = 80.0
)

// MixRatioReadyMix selects pre-mixed concrete instead of a cement ratio.
const MixRatioReadyMix = "ready-mix"

// CalculatorService estimates material quantities and costs from dimensions
type CalculatorService struct{}

// NewCalculatorService creates a new calculator service
func NewCalculatorService() *CalculatorService {
	return &CalculatorService{}
}

// Estimate computes quantities and total cost for the given input.
// Length, width, and height must all be positive.
func (s *CalculatorService) Estimate(input model.MaterialInput) (*model.MaterialEstimate, error) {
	if input.Length <= 0 {
		return nil, NewValidationError("length", "length must be a positive number")
	}
	if input.Width <= 0 {
		return nil, NewValidationError("width", "width must be a positive number")
	}
	if input.Height <= 0 {
		return nil, NewValidationError("height", "height must be a positive number")
	}

	thickness := input.Thickness
	if thickness <= 0 {
		thickness = defaultThickness
	}

	switch input.MaterialType {
	case "concrete":
		return s.estimateConcrete(input, thickness)
	case "brickwork":
		return s.estimateBrickwork(input)
	case "steel":
		return s.estimateSteel(input, thickness)
	default:
		return nil, NewValidationError("material_type", "unknown material type")
	}
}

func (s *CalculatorService) estimateConcrete(input model.MaterialInput, thickness float64) (*model.MaterialEstimate, error) {
	volume := input.Length * input.Width * thickness

	if input.MixRatio == "" || input.MixRatio == MixRatioReadyMix {
		return &model.MaterialEstimate{
			ConcreteVolume: volume,
			TotalCost:      volume * costConcrete,
		}, nil
	}

	ratios, err := parseMixRatio(input.MixRatio)
	if err != nil {
		return nil, err
	}

	totalRatio := ratios[0] + ratios[1] + ratios[2]
	cementBags := volume * ratios[0] / totalRatio * cementBagsPerM3
	sandVolume := volume * ratios[1] / totalRatio
	aggregateVolume := volume * ratios[2] / totalRatio

	return &model.MaterialEstimate{
		CementBags:      cementBags,
		SandVolume:      sandVolume,
		AggregateVolume: aggregateVolume,
		TotalCost: cementBags*costCement +
			sandVolume*costSand +
			aggregateVolume*costAggregate,
	}, nil
}

func (s *CalculatorService) estimateBrickwork(input model.MaterialInput) (*model.MaterialEstimate, error) {
	wallArea := input.Length * input.Height
	bricks := wallArea * bricksPerSqm
	mortarVolume := wallArea * mortarThickness

	return &model.MaterialEstimate{
		Bricks:       bricks,
		MortarVolume: mortarVolume,
		TotalCost:    bricks*costBrick + mortarVolume*costMortar,
	}, nil
}

func (s *CalculatorService) estimateSteel(input model.MaterialInput, thickness float64) (*model.MaterialEstimate, error) {
	volume := input.Length * input.Width * thickness
	steelWeight := volume * steelKgPerM3

	return &model.MaterialEstimate{
		SteelWeight: steelWeight,
		TotalCost:   steelWeight * costSteel,
	}, nil
}

// parseMixRatio parses a cement:sand:aggregate ratio like "1:2:4"
func parseMixRatio(ratio string) ([3]float64, error) {
	parts := strings.Split(ratio, ":")
	if len(parts) != 3 {
		return [3]float64{}, NewValidationError("mix_ratio", "mix ratio must have three parts")
	}

	var parsed [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || v <= 0 {
			return [3]float64{}, NewValidationError("mix_ratio", "mix ratio parts must be positive numbers")
		}
		parsed[i] = v
	}

	return parsed, nil
}
