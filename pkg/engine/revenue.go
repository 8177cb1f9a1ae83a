package engine

import "agripredict/entities"

// ComputeRevenue is linear in both yield and area. Negative yields are not
// clamped; they are flagged so the caller can warn.
func ComputeRevenue(predictedYield, areaHectares float64, crop entities.CropReference) entities.PredictionResult {
	production := predictedYield * areaHectares
	return entities.PredictionResult{
		PredictedYield:  predictedYield,
		TotalProduction: production,
		MarketPrice:     crop.MarketPrice,
		Revenue:         production * crop.MarketPrice,
		NegativeYield:   predictedYield < 0,
	}
}

// OptimalFertilizer is the rule-of-thumb 3 kg of fertilizer per quintal of
// the crop's average yield.
func OptimalFertilizer(crop entities.CropReference) float64 {
	return crop.AvgYield * 3
}
