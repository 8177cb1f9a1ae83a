package entities

import "time"

// Evaluation is the persisted history row for one assessment.
type Evaluation struct {
	ID                string           `gorm:"primaryKey;size:36" json:"id"`
	SessionID         string           `gorm:"index;size:64" json:"session_id"`
	Source            string           `json:"source"` // model name, or "manual" for caller-supplied yields
	State             string           `json:"state"`
	Crop              string           `gorm:"index" json:"crop"`
	Season            string           `json:"season"`
	AreaHectares      float64          `json:"area_ha"`
	AnnualRainfallMM  float64          `json:"annual_rainfall_mm"`
	FertilizerKgPerHa float64          `json:"fertilizer_kg_ha"`
	PesticideKgPerHa  float64          `json:"pesticide_kg_ha"`
	PredictedYield    float64          `json:"predicted_yield_q_ha"`
	TotalProduction   float64          `json:"total_production_q"`
	Revenue           float64          `json:"revenue"`
	RainfallRisk      string           `json:"rainfall_risk"`
	YieldCategory     string           `json:"yield_category"`
	Recommendations   []Recommendation `gorm:"serializer:json" json:"recommendations"`
	CreatedAt         time.Time        `gorm:"index" json:"created_at"`
}

func NewEvaluation(id, sessionID, source string, a *Assessment) *Evaluation {
	return &Evaluation{
		ID:                id,
		SessionID:         sessionID,
		Source:            source,
		State:             string(a.Params.State),
		Crop:              string(a.Params.Crop),
		Season:            string(a.Params.Season),
		AreaHectares:      a.Params.AreaHectares,
		AnnualRainfallMM:  a.Params.AnnualRainfallMM,
		FertilizerKgPerHa: a.Params.FertilizerKgPerHa,
		PesticideKgPerHa:  a.Params.PesticideKgPerHa,
		PredictedYield:    a.Result.PredictedYield,
		TotalProduction:   a.Result.TotalProduction,
		Revenue:           a.Result.Revenue,
		RainfallRisk:      a.RainfallRisk.Label,
		YieldCategory:     a.YieldCategory.Label,
		Recommendations:   a.Recommendations,
	}
}

// CropSummary aggregates predicted yields (q/ha) for one crop in a session's history.
type CropSummary struct {
	Crop   Crop    `json:"crop"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}
