package engine

import (
	"math"

	"agripredict/entities"
)

func capped(v float64) float64 { return math.Min(100, v) }

// FactorImpact scales each input onto 0-100 for the dashboard radar.
func FactorImpact(p entities.FarmParameters, w entities.WeatherRecord) []entities.FactorScore {
	return []entities.FactorScore{
		{Factor: "Rainfall", Score: capped(p.AnnualRainfallMM / 15)},
		{Factor: "Temperature", Score: capped(w.AvgTempC * 3)},
		{Factor: "Fertilizer", Score: capped(p.FertilizerKgPerHa * 1.5)},
		{Factor: "Area", Score: capped(p.AreaHectares * 20)},
		{Factor: "Pesticide", Score: capped(p.PesticideKgPerHa * 8)},
	}
}

// RiskFactors are coarse percentage risk levels for the dashboard bar chart.
func RiskFactors(p entities.FarmParameters) []entities.RiskFactor {
	pick := func(cond bool, a, b int) int {
		if cond {
			return a
		}
		return b
	}
	return []entities.RiskFactor{
		{Factor: "Weather", Level: pick(p.AnnualRainfallMM > 1000, 30, 70)},
		{Factor: "Pest/Disease", Level: pick(p.PesticideKgPerHa > 10, 20, 60)},
		{Factor: "Market Price", Level: 40},
		{Factor: "Input Cost", Level: pick(p.FertilizerKgPerHa < 100, 50, 30)},
		{Factor: "Soil Health", Level: 35},
	}
}

func TotalInputs(p entities.FarmParameters) float64 {
	return p.FertilizerKgPerHa + p.PesticideKgPerHa
}

func buildMetrics(in Input, w entities.WeatherRecord) entities.Metrics {
	return entities.Metrics{
		TotalInputsKgPerHa: TotalInputs(in.Params),
		OptimalFertilizer:  in.optimalFertilizer(),
		FactorImpact:       FactorImpact(in.Params, w),
		RiskFactors:        RiskFactors(in.Params),
		Location:           entities.MapPoint{Lat: w.Lat, Lon: w.Lon, Crop: in.Params.Crop, Yield: in.PredictedYield},
	}
}
