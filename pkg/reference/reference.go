package reference

import (
	"fmt"
	"math"

	"agripredict/entities"
	"agripredict/pkg/apperr"
)

// Data holds the weather-by-state and crop tables. It is immutable once built
// and safe to share between goroutines.
type Data struct {
	weather map[entities.State]entities.WeatherRecord
	crops   map[entities.Crop]entities.CropReference
}

// New validates the tables and returns an immutable Data. Every known state and
// crop must appear exactly once.
func New(weather []entities.WeatherRecord, crops []entities.CropReference) (*Data, error) {
	d := &Data{
		weather: make(map[entities.State]entities.WeatherRecord, len(weather)),
		crops:   make(map[entities.Crop]entities.CropReference, len(crops)),
	}
	for _, w := range weather {
		if !w.State.Valid() {
			return nil, fmt.Errorf("weather: unknown state %q", w.State)
		}
		if _, dup := d.weather[w.State]; dup {
			return nil, fmt.Errorf("weather: duplicate state %q", w.State)
		}
		if !finite(w.AvgTempC, w.AvgPrecipMM, w.Lat, w.Lon) {
			return nil, fmt.Errorf("weather: non-finite value for %q", w.State)
		}
		d.weather[w.State] = w
	}
	for _, s := range entities.States {
		if _, ok := d.weather[s]; !ok {
			return nil, fmt.Errorf("weather: missing state %q", s)
		}
	}

	for _, c := range crops {
		if !c.Crop.Valid() {
			return nil, fmt.Errorf("crops: unknown crop %q", c.Crop)
		}
		if _, dup := d.crops[c.Crop]; dup {
			return nil, fmt.Errorf("crops: duplicate crop %q", c.Crop)
		}
		if !(c.AvgYield > 0) || !(c.MarketPrice > 0) || !finite(c.AvgYield, c.MarketPrice) {
			return nil, fmt.Errorf("crops: %q needs positive avg yield and market price", c.Crop)
		}
		if err := validateBands(c.Bands); err != nil {
			return nil, fmt.Errorf("crops: %q: %w", c.Crop, err)
		}
		c.Bands = append([]entities.YieldBand(nil), c.Bands...)
		d.crops[c.Crop] = c
	}
	for _, c := range entities.Crops {
		if _, ok := d.crops[c]; !ok {
			return nil, fmt.Errorf("crops: missing crop %q", c)
		}
	}
	return d, nil
}

func validateBands(bands []entities.YieldBand) error {
	if len(bands) != len(entities.BandOrder) {
		return fmt.Errorf("want %d yield bands, got %d", len(entities.BandOrder), len(bands))
	}
	prevMax := 0.0
	for i, b := range bands {
		if b.Name != entities.BandOrder[i] {
			return fmt.Errorf("band %d is %q, want %q", i, b.Name, entities.BandOrder[i])
		}
		if !finite(b.Min, b.Max) {
			return fmt.Errorf("band %q has non-finite bounds", b.Name)
		}
		if b.Min != prevMax {
			return fmt.Errorf("band %q starts at %g, want %g", b.Name, b.Min, prevMax)
		}
		if b.Max <= b.Min {
			return fmt.Errorf("band %q is empty or decreasing (%g..%g)", b.Name, b.Min, b.Max)
		}
		prevMax = b.Max
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (d *Data) Weather(s entities.State) (entities.WeatherRecord, error) {
	w, ok := d.weather[s]
	if !ok {
		return entities.WeatherRecord{}, apperr.InvalidInput("unknown state %q", s)
	}
	return w, nil
}

// Crop returns a copy of the crop's reference row.
func (d *Data) Crop(c entities.Crop) (entities.CropReference, error) {
	ref, ok := d.crops[c]
	if !ok {
		return entities.CropReference{}, apperr.InvalidInput("unknown crop %q", c)
	}
	ref.Bands = append([]entities.YieldBand(nil), ref.Bands...)
	return ref, nil
}

// WeatherTable lists the records in entities.States order.
func (d *Data) WeatherTable() []entities.WeatherRecord {
	out := make([]entities.WeatherRecord, 0, len(d.weather))
	for _, s := range entities.States {
		out = append(out, d.weather[s])
	}
	return out
}

// CropTable lists the crop rows in entities.Crops order.
func (d *Data) CropTable() []entities.CropReference {
	out := make([]entities.CropReference, 0, len(d.crops))
	for _, c := range entities.Crops {
		ref, _ := d.Crop(c)
		out = append(out, ref)
	}
	return out
}
