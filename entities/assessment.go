package entities

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
	PriorityInfo   Priority = "Info"
)

type Recommendation struct {
	Icon        string   `json:"icon"`
	Title       string   `json:"title"`
	Description string   `json:"desc"`
	Priority    Priority `json:"priority"`
	Color       string   `json:"color"`
}

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

type RiskClassification struct {
	Level RiskLevel `json:"level"`
	Label string    `json:"label"`
	Color string    `json:"color"`
}

type YieldCategory struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Mode  string `json:"mode"`
}

type PredictionResult struct {
	PredictedYield  float64 `json:"predicted_yield_q_ha"`
	TotalProduction float64 `json:"total_production_q"`
	MarketPrice     float64 `json:"market_price_per_q"`
	Revenue         float64 `json:"revenue"`
	NegativeYield   bool    `json:"negative_yield,omitempty"`
}

type FactorScore struct {
	Factor string  `json:"factor"`
	Score  float64 `json:"score"`
}

type RiskFactor struct {
	Factor string `json:"factor"`
	Level  int    `json:"level"`
}

type MapPoint struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Crop  Crop    `json:"crop"`
	Yield float64 `json:"yield"`
}

type Metrics struct {
	TotalInputsKgPerHa float64       `json:"total_inputs_kg_ha"`
	OptimalFertilizer  float64       `json:"optimal_fertilizer_kg_ha"`
	FactorImpact       []FactorScore `json:"factor_impact"`
	RiskFactors        []RiskFactor  `json:"risk_factors"`
	Location           MapPoint      `json:"location"`
}

// Assessment is everything the rendering layer needs for one submission.
type Assessment struct {
	ID              string             `json:"id,omitempty"`
	Params          FarmParameters     `json:"params"`
	Weather         WeatherRecord      `json:"weather"`
	Result          PredictionResult   `json:"result"`
	RainfallRisk    RiskClassification `json:"rainfall_risk"`
	YieldCategory   YieldCategory      `json:"yield_category"`
	Recommendations []Recommendation   `json:"recommendations"`
	Metrics         Metrics            `json:"metrics"`
	Predictor       string             `json:"predictor,omitempty"`
}

// Preview is the live input monitor shown before a prediction is requested.
type Preview struct {
	Params             FarmParameters     `json:"params"`
	Weather            WeatherRecord      `json:"weather"`
	RainfallRisk       RiskClassification `json:"rainfall_risk"`
	TotalInputsKgPerHa float64            `json:"total_inputs_kg_ha"`
}
