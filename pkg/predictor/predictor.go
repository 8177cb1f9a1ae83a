// Package predictor wraps the trained yield model behind an interface so the
// service can run against a model server, a fixed value, or nothing at all.
package predictor

import (
	"context"

	"agripredict/entities"
)

type Predictor interface {
	// Predict returns yield in quintals/ha. Errors carry apperr codes
	// MODEL_UNAVAILABLE or PREDICTION_FAILURE.
	Predict(ctx context.Context, in ModelInput) (float64, error)
	Name() string
}

// Pinger is implemented by predictors that can report their own health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ModelInput is one row in the shape the trained pipeline was fitted on.
type ModelInput struct {
	State          string  `json:"State"`
	Season         string  `json:"Season"`
	Crop           string  `json:"Crop"`
	Area           float64 `json:"Area"`
	AnnualRainfall float64 `json:"Annual_Rainfall"`
	Fertilizer     float64 `json:"Fertilizer"`
	Pesticide      float64 `json:"Pesticide"`
	CropYear       int     `json:"Crop_Year"`
	AvgTemp        float64 `json:"tavg"`
	AvgPrecip      float64 `json:"prcp"`
	Production     float64 `json:"Production"` // unused by the model, always 0
}

func NewModelInput(p entities.FarmParameters, w entities.WeatherRecord, cropYear int) ModelInput {
	return ModelInput{
		State:          string(p.State),
		Season:         string(p.Season),
		Crop:           string(p.Crop),
		Area:           p.AreaHectares,
		AnnualRainfall: p.AnnualRainfallMM,
		Fertilizer:     p.FertilizerKgPerHa,
		Pesticide:      p.PesticideKgPerHa,
		CropYear:       cropYear,
		AvgTemp:        w.AvgTempC,
		AvgPrecip:      w.AvgPrecipMM,
	}
}
