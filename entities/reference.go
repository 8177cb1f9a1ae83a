package entities

type WeatherRecord struct {
	State       State   `json:"state" yaml:"state"`
	AvgTempC    float64 `json:"tavg" yaml:"tavg"`
	AvgPrecipMM float64 `json:"prcp" yaml:"prcp"`
	Lat         float64 `json:"lat" yaml:"lat"`
	Lon         float64 `json:"lon" yaml:"lon"`
}

// BandName identifies one of the five yield bands, lowest first.
type BandName string

const (
	BandPoor      BandName = "poor"
	BandBelowAvg  BandName = "below_avg"
	BandAverage   BandName = "average"
	BandGood      BandName = "good"
	BandExcellent BandName = "excellent"
)

var BandOrder = []BandName{BandPoor, BandBelowAvg, BandAverage, BandGood, BandExcellent}

// YieldBand is the half-open interval [Min, Max) in quintals/ha. The excellent
// band is treated as open-ended; its Max is informational.
type YieldBand struct {
	Name BandName `json:"name" yaml:"name"`
	Min  float64  `json:"min" yaml:"min"`
	Max  float64  `json:"max" yaml:"max"`
}

type CropReference struct {
	Crop        Crop        `json:"crop" yaml:"crop"`
	AvgYield    float64     `json:"avg_yield_q_ha" yaml:"avg_yield"`
	MarketPrice float64     `json:"market_price_per_q" yaml:"market_price"`
	Bands       []YieldBand `json:"yield_bands" yaml:"bands"`
}
