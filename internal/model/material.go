package model

// MaterialInput holds the dimensions and material choice for an estimate.
// Lengths are in meters.
type MaterialInput struct {
	Length       float64 `json:"length"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Thickness    float64 `json:"thickness,omitempty"`
	MaterialType string  `json:"material_type"`
	MixRatio     string  `json:"mix_ratio,omitempty" binding:"omitempty,mixratio"`
}

// MaterialEstimate holds computed quantities and their total cost.
// Only the fields relevant to the chosen material type are populated.
type MaterialEstimate struct {
	CementBags      float64 `json:"cement_bags,omitempty"`
	SandVolume      float64 `json:"sand_volume,omitempty"`
	AggregateVolume float64 `json:"aggregate_volume,omitempty"`
	ConcreteVolume  float64 `json:"concrete_volume,omitempty"`
	Bricks          float64 `json:"bricks,omitempty"`
	MortarVolume    float64 `json:"mortar_volume,omitempty"`
	SteelWeight     float64 `json:"steel_weight,omitempty"`
	TotalCost       float64 `json:"total_cost"`
}
