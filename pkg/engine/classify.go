package engine

import (
	"fmt"
	"strings"

	"agripredict/entities"
)

// ClassifyRainfallRisk maps annual rainfall onto four contiguous bands:
// [0,600) drought, [600,1200] optimal, (1200,1800] excess, (1800,∞) flooding.
func ClassifyRainfallRisk(rainfallMM float64) entities.RiskClassification {
	switch {
	case rainfallMM < 600:
		return entities.RiskClassification{Level: entities.RiskHigh, Label: "High Risk - Drought Conditions", Color: "#FF5722"}
	case rainfallMM <= 1200:
		return entities.RiskClassification{Level: entities.RiskLow, Label: "Low Risk - Optimal Rainfall", Color: "#4CAF50"}
	case rainfallMM <= 1800:
		return entities.RiskClassification{Level: entities.RiskModerate, Label: "Moderate Risk - Excess Rainfall", Color: "#FFC107"}
	default:
		return entities.RiskClassification{Level: entities.RiskHigh, Label: "High Risk - Flooding/Waterlogging", Color: "#E64A19"}
	}
}

// CategoryMode selects the thresholds used by yield classification.
type CategoryMode string

const (
	// ModeFixed uses the 0 / 0.5 / 1 / 1.5 cut points the dashboard has always
	// used. They are on a 0-2 scale while predictions are in quintals/ha, so
	// realistic yields all land in "Excellent".
	ModeFixed CategoryMode = "fixed"
	// ModeCropBands uses the crop's own five yield bands.
	ModeCropBands CategoryMode = "crop_bands"
)

func ParseCategoryMode(s string) (CategoryMode, error) {
	switch m := CategoryMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeFixed, ModeCropBands:
		return m, nil
	case "":
		return ModeFixed, nil
	default:
		return "", fmt.Errorf("unknown yield category mode %q (want %q or %q)", s, ModeFixed, ModeCropBands)
	}
}

const (
	labelPoor      = "Poor"
	labelBelowAvg  = "Below Average"
	labelAverage   = "Average"
	labelGood      = "Good"
	labelExcellent = "Excellent"
)

var categoryColors = map[string]string{
	labelPoor:      "#FF5722",
	labelBelowAvg:  "#FF9800",
	labelAverage:   "#FFC107",
	labelGood:      "#4CAF50",
	labelExcellent: "#2E7D32",
}

var bandLabels = map[entities.BandName]string{
	entities.BandPoor:      labelPoor,
	entities.BandBelowAvg:  labelBelowAvg,
	entities.BandAverage:   labelAverage,
	entities.BandGood:      labelGood,
	entities.BandExcellent: labelExcellent,
}

func category(label string, mode CategoryMode) entities.YieldCategory {
	return entities.YieldCategory{Label: label, Color: categoryColors[label], Mode: string(mode)}
}

func classifyFixed(yield float64) entities.YieldCategory {
	switch {
	case yield < 0:
		return category(labelPoor, ModeFixed)
	case yield < 0.5:
		return category(labelBelowAvg, ModeFixed)
	case yield < 1:
		return category(labelAverage, ModeFixed)
	case yield < 1.5:
		return category(labelGood, ModeFixed)
	default:
		return category(labelExcellent, ModeFixed)
	}
}

// classifyBands finds the band whose [Min, Max) holds yield. Negative yields are
// Poor and the top band has no upper limit.
func classifyBands(bands []entities.YieldBand, yield float64) entities.YieldCategory {
	if len(bands) == 0 || yield < bands[0].Min {
		return category(labelPoor, ModeCropBands)
	}
	last := len(bands) - 1
	for i, b := range bands[:last] {
		if yield < b.Max {
			return category(bandLabels[bands[i].Name], ModeCropBands)
		}
	}
	return category(bandLabels[bands[last].Name], ModeCropBands)
}
