package reference

import "agripredict/entities"

// Defaults returns the built-in tables used when no reference file is configured.
func Defaults() *Data {
	d, err := New(defaultWeather(), defaultCrops())
	if err != nil {
		panic("reference: built-in tables invalid: " + err.Error())
	}
	return d
}

func defaultWeather() []entities.WeatherRecord {
	return []entities.WeatherRecord{
		{State: entities.Karnataka, AvgTempC: 26.3, AvgPrecipMM: 950, Lat: 15.3, Lon: 75.7},
		{State: entities.AndhraPradesh, AvgTempC: 29.1, AvgPrecipMM: 1050, Lat: 15.9, Lon: 79.7},
		{State: entities.WestBengal, AvgTempC: 27.4, AvgPrecipMM: 1200, Lat: 22.9, Lon: 87.8},
		{State: entities.Chhattisgarh, AvgTempC: 28.2, AvgPrecipMM: 1300, Lat: 21.2, Lon: 81.8},
		{State: entities.Bihar, AvgTempC: 26.7, AvgPrecipMM: 1100, Lat: 25.0, Lon: 85.3},
	}
}

func defaultCrops() []entities.CropReference {
	return []entities.CropReference{
		{Crop: entities.Rice, AvgYield: 24.0, MarketPrice: 2100, Bands: bandsFromUpper(16, 22, 32, 42, 55)},
		{Crop: entities.Maize, AvgYield: 28.5, MarketPrice: 2300, Bands: bandsFromUpper(18, 24, 32, 42, 60)},
		{Crop: entities.Moong, AvgYield: 8.5, MarketPrice: 7500, Bands: bandsFromUpper(3, 5, 8, 12, 18)},
		{Crop: entities.Urad, AvgYield: 6.2, MarketPrice: 8200, Bands: bandsFromUpper(2.5, 4, 7, 11, 16)},
		{Crop: entities.Groundnut, AvgYield: 15.8, MarketPrice: 5800, Bands: bandsFromUpper(12, 16, 22, 28, 40)},
	}
}

// bandsFromUpper builds contiguous bands starting at 0 from their upper bounds.
func bandsFromUpper(upper ...float64) []entities.YieldBand {
	out := make([]entities.YieldBand, 0, len(upper))
	lo := 0.0
	for i, hi := range upper {
		name := entities.BandName("")
		if i < len(entities.BandOrder) {
			name = entities.BandOrder[i]
		}
		out = append(out, entities.YieldBand{Name: name, Min: lo, Max: hi})
		lo = hi
	}
	return out
}
