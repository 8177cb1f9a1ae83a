package reference

import (
	"fmt"
	"path/filepath"

	"agripredict/entities"
)

// UpdatePrices rewrites the market price column of dir/crops.csv. Crops not in
// quotes keep their price. The result is validated before the file is replaced.
func UpdatePrices(dir string, quotes map[entities.Crop]float64) ([]entities.Crop, error) {
	path := filepath.Join(dir, CropsFile)
	head, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	cols, err := cropHeader(head)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", CropsFile, err)
	}

	var changed []entities.Crop
	for _, rec := range rows {
		c := entities.Crop(cell(rec, cols.crop))
		p, ok := quotes[c]
		if !ok || cols.price >= len(rec) {
			continue
		}
		if !(p > 0) {
			return nil, fmt.Errorf("price for %q must be positive, got %g", c, p)
		}
		rec[cols.price] = num(p)
		changed = append(changed, c)
	}

	crops, err := parseCropRows(head, rows)
	if err != nil {
		return nil, err
	}
	if _, err := LoadDirWithCrops(dir, crops); err != nil {
		return nil, err
	}
	if err := writeCSV(path, append([][]string{head}, rows...)); err != nil {
		return nil, err
	}
	return changed, nil
}

// LoadDirWithCrops validates crops against the weather table stored in dir.
func LoadDirWithCrops(dir string, crops []entities.CropReference) (*Data, error) {
	head, rows, err := readCSV(filepath.Join(dir, WeatherFile))
	if err != nil {
		return nil, err
	}
	weather, err := parseWeatherRows(head, rows)
	if err != nil {
		return nil, err
	}
	return New(weather, crops)
}
