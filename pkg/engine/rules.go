package engine

import (
	"fmt"
	"math"
	"strconv"

	"agripredict/entities"
)

// Input is what every rule sees.
type Input struct {
	Params         entities.FarmParameters
	PredictedYield float64
	Crop           entities.CropReference
}

func (in Input) optimalFertilizer() float64 { return OptimalFertilizer(in.Crop) }

// Rule appends one recommendation when When holds. Rules are independent of
// each other; their order only decides display order.
type Rule struct {
	ID    string
	When  func(Input) bool
	Build func(Input) entities.Recommendation
}

var priorityColors = map[entities.Priority]string{
	entities.PriorityHigh:   "#FF5722",
	entities.PriorityMedium: "#FF9800",
	entities.PriorityLow:    "#4CAF50",
	entities.PriorityInfo:   "#2196F3",
}

func PriorityColor(p entities.Priority) string {
	if c, ok := priorityColors[p]; ok {
		return c
	}
	return priorityColors[entities.PriorityLow]
}

func rec(icon, title, desc string, p entities.Priority) entities.Recommendation {
	return entities.Recommendation{Icon: icon, Title: title, Description: desc, Priority: p, Color: PriorityColor(p)}
}

// num prints the shortest decimal that round-trips, e.g. 412.5 or 400.
func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// DefaultRules returns the advisory rules in display order.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:   "rain-deficit",
			When: func(in Input) bool { return in.Params.AnnualRainfallMM < 600 },
			Build: func(in Input) entities.Recommendation {
				r := in.Params.AnnualRainfallMM
				return rec("💧", "Critical Water Management", fmt.Sprintf(
					"With only %smm rainfall, install drip irrigation system and consider drought-resistant varieties. Expected water deficit: %smm",
					num(r), num(math.Max(0, 800-r))), entities.PriorityHigh)
			},
		},
		{
			ID:   "rain-excess",
			When: func(in Input) bool { return in.Params.AnnualRainfallMM > 1500 },
			Build: func(in Input) entities.Recommendation {
				return rec("🌊", "Excess Water Management", fmt.Sprintf(
					"High rainfall (%smm) may cause waterlogging. Ensure proper drainage and consider fungicide application",
					num(in.Params.AnnualRainfallMM)), entities.PriorityMedium)
			},
		},
		{
			ID:   "fertilizer-low",
			When: func(in Input) bool { return in.Params.FertilizerKgPerHa < in.optimalFertilizer()*0.7 },
			Build: func(in Input) entities.Recommendation {
				opt, cur := in.optimalFertilizer(), in.Params.FertilizerKgPerHa
				return rec("🧪", "Increase Fertilizer Application", fmt.Sprintf(
					"Current: %skg/ha, Recommended: %.0fkg/ha. Increase by %.0fkg/ha for optimal yield",
					num(cur), opt, opt-cur), entities.PriorityHigh)
			},
		},
		{
			ID:   "fertilizer-high",
			When: func(in Input) bool { return in.Params.FertilizerKgPerHa > in.optimalFertilizer()*1.3 },
			Build: func(in Input) entities.Recommendation {
				return rec("⚖️", "Reduce Fertilizer Usage", fmt.Sprintf(
					"Over-fertilization detected (%skg/ha). Reduce to %.0fkg/ha to improve cost effectiveness",
					num(in.Params.FertilizerKgPerHa), in.optimalFertilizer()), entities.PriorityMedium)
			},
		},
		{
			ID:   "pesticide-high",
			When: func(in Input) bool { return in.Params.PesticideKgPerHa > 20 },
			Build: func(in Input) entities.Recommendation {
				return rec("🌱", "Reduce Chemical Pesticide", fmt.Sprintf(
					"High pesticide usage (%skg/ha). Implement IPM practices to reduce to 10-15kg/ha and improve sustainability",
					num(in.Params.PesticideKgPerHa)), entities.PriorityMedium)
			},
		},
		{
			ID:   "pesticide-low",
			When: func(in Input) bool { return in.Params.PesticideKgPerHa < 5 },
			Build: func(in Input) entities.Recommendation {
				return rec("🛡️", "Pest Management Alert", fmt.Sprintf(
					"Low pesticide usage (%skg/ha) may increase pest risk. Monitor crop health closely and be ready for targeted application",
					num(in.Params.PesticideKgPerHa)), entities.PriorityMedium)
			},
		},
		{
			ID:   "season-summer",
			When: func(in Input) bool { return in.Params.Season == entities.Summer },
			Build: func(Input) entities.Recommendation {
				return rec("☀️", "Summer Season Management",
					"Use mulching to conserve soil moisture, provide shade nets if possible, and monitor for heat stress symptoms",
					entities.PriorityHigh)
			},
		},
		{
			ID:   "season-kharif",
			When: func(in Input) bool { return in.Params.Season == entities.Kharif },
			Build: func(Input) entities.Recommendation {
				return rec("🌧️", "Monsoon Preparedness",
					"Ensure proper drainage, apply pre-emergence herbicides, and monitor for fungal diseases during monsoon",
					entities.PriorityMedium)
			},
		},
		{
			ID: "rice-water",
			When: func(in Input) bool {
				return in.Params.Crop == entities.Rice && in.Params.AnnualRainfallMM < 1000
			},
			Build: func(Input) entities.Recommendation {
				return rec("🌾", "Rice Water Management",
					"Rice requires 1000-1200mm water. Consider System of Rice Intensification (SRI) method to reduce water usage by 30-40%",
					entities.PriorityHigh)
			},
		},
		{
			ID: "groundnut-nutrition",
			When: func(in Input) bool {
				return in.Params.Crop == entities.Groundnut && in.Params.FertilizerKgPerHa > 60
			},
			Build: func(Input) entities.Recommendation {
				return rec("🥜", "Groundnut Nutrition",
					"Groundnut fixes nitrogen naturally. Reduce nitrogen fertilizer and focus on phosphorus and potassium for better pod development",
					entities.PriorityMedium)
			},
		},
	}
}

// Fallback is shown only when no rule fired.
func Fallback(in Input) []entities.Recommendation {
	return []entities.Recommendation{
		rec("✅", "Well-Balanced Approach", fmt.Sprintf(
			"Your farming parameters are well-optimized for %s cultivation. Expected yield of %.1f q/ha is within good range",
			in.Params.Crop, in.PredictedYield), entities.PriorityInfo),
		rec("📊", "Market Intelligence", fmt.Sprintf(
			"Current market price: ₹%s/quintal. Monitor price trends and consider contract farming for price stability",
			num(in.Crop.MarketPrice)), entities.PriorityMedium),
		rec("🌿", "Sustainable Practices",
			"Implement crop rotation, use organic matter, and maintain soil health for long-term productivity and environmental benefits",
			entities.PriorityLow),
		rec("📱", "Technology Adoption",
			"Consider using weather-based agro-advisories, soil health cards, and precision farming techniques for better results",
			entities.PriorityLow),
	}
}

// Recommend evaluates rules in order and falls back to the defaults when the
// list stays empty.
func Recommend(rules []Rule, in Input) []entities.Recommendation {
	out := make([]entities.Recommendation, 0, len(rules))
	for _, r := range rules {
		if r.When(in) {
			out = append(out, r.Build(in))
		}
	}
	if len(out) == 0 {
		out = Fallback(in)
	}
	return out
}
