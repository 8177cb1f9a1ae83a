package reference

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	CropsSheet   = "crops"
	WeatherSheet = "weather"
)

// LoadWorkbook reads the "crops" and "weather" sheets of an .xlsx file. The
// sheets use the same columns as the CSV files.
func LoadWorkbook(path string) (*Data, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()

	head, rows, err := sheetRows(x, CropsSheet)
	if err != nil {
		return nil, err
	}
	crops, err := parseCropRows(head, rows)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", CropsSheet, err)
	}

	head, rows, err = sheetRows(x, WeatherSheet)
	if err != nil {
		return nil, err
	}
	weather, err := parseWeatherRows(head, rows)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", WeatherSheet, err)
	}
	return New(weather, crops)
}

func sheetRows(x *excelize.File, sheet string) ([]string, [][]string, error) {
	rows, err := x.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %s is empty", sheet)
	}
	return rows[0], rows[1:], nil
}

// WriteWorkbook saves d as an .xlsx file readable by LoadWorkbook.
func WriteWorkbook(path string, d *Data) error {
	x := excelize.NewFile()
	defer x.Close()

	if err := x.SetSheetName("Sheet1", CropsSheet); err != nil {
		return err
	}
	if err := setRow(x, CropsSheet, 1, toAny(cropCSVHeader)); err != nil {
		return err
	}
	for i, c := range d.CropTable() {
		row := []any{string(c.Crop), c.AvgYield, c.MarketPrice}
		for _, b := range c.Bands {
			row = append(row, b.Max)
		}
		if err := setRow(x, CropsSheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := x.NewSheet(WeatherSheet); err != nil {
		return err
	}
	if err := setRow(x, WeatherSheet, 1, []any{"state", "tavg", "prcp", "lat", "lon"}); err != nil {
		return err
	}
	for i, w := range d.WeatherTable() {
		if err := setRow(x, WeatherSheet, i+2, []any{string(w.State), w.AvgTempC, w.AvgPrecipMM, w.Lat, w.Lon}); err != nil {
			return err
		}
	}
	return x.SaveAs(path)
}

func setRow(x *excelize.File, sheet string, row int, values []any) error {
	cellName, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return x.SetSheetRow(sheet, cellName, &values)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
