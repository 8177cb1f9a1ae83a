package reference

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"agripredict/entities"
)

const (
	CropsFile   = "crops.csv"
	WeatherFile = "weather.csv"
)

// LoadDir reads crops.csv and weather.csv from dir.
func LoadDir(dir string) (*Data, error) {
	head, rows, err := readCSV(filepath.Join(dir, CropsFile))
	if err != nil {
		return nil, err
	}
	crops, err := parseCropRows(head, rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", CropsFile, err)
	}

	head, rows, err = readCSV(filepath.Join(dir, WeatherFile))
	if err != nil {
		return nil, err
	}
	weather, err := parseWeatherRows(head, rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", WeatherFile, err)
	}
	return New(weather, crops)
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	head, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: read header: %w", path, err)
	}
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		rows = append(rows, rec)
	}
	return head, rows, nil
}

// WriteDir writes d as crops.csv and weather.csv under dir.
func WriteDir(dir string, d *Data) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	crops := [][]string{cropCSVHeader}
	for _, c := range d.CropTable() {
		crops = append(crops, cropRecord(c))
	}
	if err := writeCSV(filepath.Join(dir, CropsFile), crops); err != nil {
		return err
	}
	weather := [][]string{{"state", "tavg", "prcp", "lat", "lon"}}
	for _, w := range d.WeatherTable() {
		weather = append(weather, []string{string(w.State), num(w.AvgTempC), num(w.AvgPrecipMM), num(w.Lat), num(w.Lon)})
	}
	return writeCSV(filepath.Join(dir, WeatherFile), weather)
}

var cropCSVHeader = []string{"crop", "avg_yield", "market_price", "poor", "below_avg", "average", "good", "excellent"}

func cropRecord(c entities.CropReference) []string {
	rec := []string{string(c.Crop), num(c.AvgYield), num(c.MarketPrice)}
	for _, b := range c.Bands {
		rec = append(rec, num(b.Max))
	}
	return rec
}

// writeCSV replaces path atomically via a temp file in the same directory.
func writeCSV(path string, records [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	w := csv.NewWriter(tmp)
	if err := w.WriteAll(records); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
