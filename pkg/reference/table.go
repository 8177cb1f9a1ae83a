package reference

import (
	"fmt"
	"strconv"
	"strings"

	"agripredict/entities"
)

// Header matching ignores a BOM, case, spaces, '-' and '_'.
func normHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

type header map[string]int

func newHeader(head []string) header {
	h := header{}
	for i, name := range head {
		h[normHeader(name)] = i
	}
	return h
}

func (h header) find(keys ...string) int {
	for _, k := range keys {
		if idx, ok := h[normHeader(k)]; ok {
			return idx
		}
	}
	return -1
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

type cropColumns struct {
	crop, avgYield, price int
	bands                 []int
}

func cropHeader(head []string) (cropColumns, error) {
	h := newHeader(head)
	cols := cropColumns{
		crop:     h.find("crop", "name"),
		avgYield: h.find("avg_yield", "average_yield", "avg_yield_q_ha"),
		price:    h.find("market_price", "price", "price_per_quintal"),
		bands: []int{
			h.find("poor", "poor_max"),
			h.find("below_avg", "below_avg_max", "below_average"),
			h.find("average", "average_max"),
			h.find("good", "good_max"),
			h.find("excellent", "excellent_max"),
		},
	}
	if cols.crop == -1 || cols.avgYield == -1 || cols.price == -1 {
		return cols, fmt.Errorf("crop table missing required columns; found headers %v, need at least crop, avg_yield, market_price", head)
	}
	for i, idx := range cols.bands {
		if idx == -1 {
			return cols, fmt.Errorf("crop table missing band column %q; found headers %v", entities.BandOrder[i], head)
		}
	}
	return cols, nil
}

// parseCropRows reads one crop per row. Band columns hold each band's upper
// bound; lower bounds follow from the previous band.
func parseCropRows(head []string, rows [][]string) ([]entities.CropReference, error) {
	cols, err := cropHeader(head)
	if err != nil {
		return nil, err
	}
	var out []entities.CropReference
	for n, rec := range rows {
		if blank(rec) {
			continue
		}
		line := n + 2
		ref := entities.CropReference{Crop: entities.Crop(cell(rec, cols.crop))}
		if ref.AvgYield, err = parseNum(rec, cols.avgYield); err != nil {
			return nil, fmt.Errorf("crop row %d: avg_yield: %w", line, err)
		}
		if ref.MarketPrice, err = parseNum(rec, cols.price); err != nil {
			return nil, fmt.Errorf("crop row %d: market_price: %w", line, err)
		}
		upper := make([]float64, len(cols.bands))
		for i, idx := range cols.bands {
			if upper[i], err = parseNum(rec, idx); err != nil {
				return nil, fmt.Errorf("crop row %d: %s: %w", line, entities.BandOrder[i], err)
			}
		}
		ref.Bands = bandsFromUpper(upper...)
		out = append(out, ref)
	}
	return out, nil
}

func parseWeatherRows(head []string, rows [][]string) ([]entities.WeatherRecord, error) {
	h := newHeader(head)
	cState := h.find("state")
	cTemp := h.find("tavg", "avg_temp", "avg_temp_c", "temperature")
	cPrcp := h.find("prcp", "avg_precip", "avg_precip_mm", "precipitation")
	cLat := h.find("lat", "latitude")
	cLon := h.find("lon", "lng", "longitude")
	if cState == -1 || cTemp == -1 || cPrcp == -1 || cLat == -1 || cLon == -1 {
		return nil, fmt.Errorf("weather table missing required columns; found headers %v, need state, tavg, prcp, lat, lon", head)
	}

	var out []entities.WeatherRecord
	for n, rec := range rows {
		if blank(rec) {
			continue
		}
		line := n + 2
		w := entities.WeatherRecord{State: entities.State(cell(rec, cState))}
		var err error
		for _, f := range []struct {
			name string
			idx  int
			dst  *float64
		}{
			{"tavg", cTemp, &w.AvgTempC},
			{"prcp", cPrcp, &w.AvgPrecipMM},
			{"lat", cLat, &w.Lat},
			{"lon", cLon, &w.Lon},
		} {
			if *f.dst, err = parseNum(rec, f.idx); err != nil {
				return nil, fmt.Errorf("weather row %d: %s: %w", line, f.name, err)
			}
		}
		out = append(out, w)
	}
	return out, nil
}

func parseNum(rec []string, idx int) (float64, error) {
	s := strings.ReplaceAll(cell(rec, idx), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	return strconv.ParseFloat(s, 64)
}
