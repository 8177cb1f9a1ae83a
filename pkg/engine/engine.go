package engine

import (
	"math"

	"agripredict/entities"
	"agripredict/pkg/apperr"
)

// Reference is the read-only lookup the engine needs; *reference.Data
// satisfies it.
type Reference interface {
	Weather(entities.State) (entities.WeatherRecord, error)
	Crop(entities.Crop) (entities.CropReference, error)
}

// Engine classifies, prices and advises on one submission at a time. It
// holds no mutable state and may be shared freely.
type Engine struct {
	ref   Reference
	mode  CategoryMode
	rules []Rule
}

type Option func(*Engine)

func WithCategoryMode(m CategoryMode) Option { return func(e *Engine) { e.mode = m } }

func WithRules(rules []Rule) Option { return func(e *Engine) { e.rules = rules } }

func New(ref Reference, opts ...Option) *Engine {
	e := &Engine{ref: ref, mode: ModeFixed, rules: DefaultRules()}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) Mode() CategoryMode { return e.mode }

// ValidateParams enforces the form contract: known enums, area > 0 and
// non-negative finite amounts.
func ValidateParams(p entities.FarmParameters) error {
	switch {
	case !p.State.Valid():
		return apperr.InvalidInput("unknown state %q", p.State)
	case !p.Crop.Valid():
		return apperr.InvalidInput("unknown crop %q", p.Crop)
	case !p.Season.Valid():
		return apperr.InvalidInput("unknown season %q", p.Season)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"area_ha", p.AreaHectares},
		{"annual_rainfall_mm", p.AnnualRainfallMM},
		{"fertilizer_kg_ha", p.FertilizerKgPerHa},
		{"pesticide_kg_ha", p.PesticideKgPerHa},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return apperr.InvalidInput("%s must be a finite number", f.name)
		}
		if f.v < 0 {
			return apperr.InvalidInput("%s must not be negative, got %g", f.name, f.v)
		}
	}
	if p.AreaHectares == 0 {
		return apperr.InvalidInput("area_ha must be greater than zero")
	}
	return nil
}

func (e *Engine) ClassifyRainfallRisk(rainfallMM float64) entities.RiskClassification {
	return ClassifyRainfallRisk(rainfallMM)
}

func (e *Engine) ClassifyYieldCategory(crop entities.Crop, predictedYield float64) (entities.YieldCategory, error) {
	if e.mode == ModeFixed {
		if !crop.Valid() {
			return entities.YieldCategory{}, apperr.InvalidInput("unknown crop %q", crop)
		}
		return classifyFixed(predictedYield), nil
	}
	ref, err := e.ref.Crop(crop)
	if err != nil {
		return entities.YieldCategory{}, err
	}
	return classifyBands(ref.Bands, predictedYield), nil
}

func (e *Engine) ComputeRevenue(predictedYield, areaHectares float64, crop entities.Crop) (entities.PredictionResult, error) {
	ref, err := e.ref.Crop(crop)
	if err != nil {
		return entities.PredictionResult{}, err
	}
	return ComputeRevenue(predictedYield, areaHectares, ref), nil
}

func (e *Engine) GenerateRecommendations(p entities.FarmParameters, predictedYield float64) ([]entities.Recommendation, error) {
	if err := ValidateParams(p); err != nil {
		return nil, err
	}
	ref, err := e.ref.Crop(p.Crop)
	if err != nil {
		return nil, err
	}
	return Recommend(e.rules, Input{Params: p, PredictedYield: predictedYield, Crop: ref}), nil
}

// Evaluate runs the full pipeline for one submission. The yield comes from
// the model; the engine never calls it.
func (e *Engine) Evaluate(p entities.FarmParameters, predictedYield float64) (*entities.Assessment, error) {
	if err := ValidateParams(p); err != nil {
		return nil, err
	}
	if math.IsNaN(predictedYield) || math.IsInf(predictedYield, 0) {
		return nil, apperr.InvalidInput("predicted yield must be a finite number")
	}
	w, err := e.ref.Weather(p.State)
	if err != nil {
		return nil, err
	}
	ref, err := e.ref.Crop(p.Crop)
	if err != nil {
		return nil, err
	}
	cat, err := e.ClassifyYieldCategory(p.Crop, predictedYield)
	if err != nil {
		return nil, err
	}

	in := Input{Params: p, PredictedYield: predictedYield, Crop: ref}
	return &entities.Assessment{
		Params:          p,
		Weather:         w,
		Result:          ComputeRevenue(predictedYield, p.AreaHectares, ref),
		RainfallRisk:    ClassifyRainfallRisk(p.AnnualRainfallMM),
		YieldCategory:   cat,
		Recommendations: Recommend(e.rules, in),
		Metrics:         buildMetrics(in, w),
	}, nil
}

// Preview is the pre-submission monitor: no model, no recommendations.
func (e *Engine) Preview(p entities.FarmParameters) (*entities.Preview, error) {
	if err := ValidateParams(p); err != nil {
		return nil, err
	}
	w, err := e.ref.Weather(p.State)
	if err != nil {
		return nil, err
	}
	return &entities.Preview{
		Params:             p,
		Weather:            w,
		RainfallRisk:       ClassifyRainfallRisk(p.AnnualRainfallMM),
		TotalInputsKgPerHa: TotalInputs(p),
	}, nil
}
