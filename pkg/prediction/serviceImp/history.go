package serviceImp

import (
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/xuri/excelize/v2"

	"agripredict/entities"
	"agripredict/pkg/apperr"
)

const exportSheet = "predictions"

var errHistoryDisabled = apperr.New(apperr.CodeNotFound, "prediction history is disabled")

var exportHeader = []any{
	"id", "created_at", "source", "state", "crop", "season",
	"area_ha", "annual_rainfall_mm", "fertilizer_kg_ha", "pesticide_kg_ha",
	"predicted_yield_q_ha", "total_production_q", "revenue",
	"rainfall_risk", "yield_category", "recommendations",
}

// Export renders the session's whole history as an xlsx workbook.
func (s *PredictionSvc) Export(sessionID string) ([]byte, error) {
	rows, err := s.History(sessionID, 0)
	if err != nil {
		return nil, err
	}

	x := excelize.NewFile()
	defer x.Close()
	if err := x.SetSheetName(x.GetSheetName(0), exportSheet); err != nil {
		return nil, err
	}
	if err := x.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}
	for i, r := range rows {
		titles := make([]string, 0, len(r.Recommendations))
		for _, rec := range r.Recommendations {
			titles = append(titles, rec.Title)
		}
		line := []any{
			r.ID, r.CreatedAt.UTC().Format("2006-01-02 15:04:05"), r.Source, r.State, r.Crop, r.Season,
			r.AreaHectares, r.AnnualRainfallMM, r.FertilizerKgPerHa, r.PesticideKgPerHa,
			r.PredictedYield, r.TotalProduction, r.Revenue,
			r.RainfallRisk, r.YieldCategory, strings.Join(titles, "; "),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := x.SetSheetRow(exportSheet, cell, &line); err != nil {
			return nil, fmt.Errorf("export row %d: %w", i+1, err)
		}
	}

	buf, err := x.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Summary aggregates predicted yields per crop, in the catalogue's crop order.
func (s *PredictionSvc) Summary(sessionID string) ([]entities.CropSummary, error) {
	rows, err := s.History(sessionID, 0)
	if err != nil {
		return nil, err
	}
	byCrop := map[entities.Crop]stats.Float64Data{}
	for _, r := range rows {
		c := entities.Crop(r.Crop)
		byCrop[c] = append(byCrop[c], r.PredictedYield)
	}

	out := []entities.CropSummary{}
	for _, c := range entities.Crops {
		ys, ok := byCrop[c]
		if !ok {
			continue
		}
		sum, err := summarize(c, ys)
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, nil
}

func summarize(c entities.Crop, ys stats.Float64Data) (entities.CropSummary, error) {
	sum := entities.CropSummary{Crop: c, Count: ys.Len()}
	var err error
	if sum.Mean, err = ys.Mean(); err != nil {
		return sum, err
	}
	if sum.Median, err = ys.Median(); err != nil {
		return sum, err
	}
	if sum.StdDev, err = ys.StandardDeviation(); err != nil {
		return sum, err
	}
	if sum.Min, err = ys.Min(); err != nil {
		return sum, err
	}
	if sum.Max, err = ys.Max(); err != nil {
		return sum, err
	}
	return sum, nil
}
