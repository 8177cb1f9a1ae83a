package entities

type State string
type Crop string
type Season string

const (
	Karnataka     State = "Karnataka"
	AndhraPradesh State = "Andhra Pradesh"
	WestBengal    State = "West Bengal"
	Chhattisgarh  State = "Chhattisgarh"
	Bihar         State = "Bihar"
)

const (
	Rice      Crop = "Rice"
	Maize     Crop = "Maize"
	Moong     Crop = "Moong(Green Gram)"
	Urad      Crop = "Urad"
	Groundnut Crop = "Groundnut"
)

const (
	Kharif    Season = "Kharif"
	Rabi      Season = "Rabi"
	WholeYear Season = "Whole Year"
	Summer    Season = "Summer"
	Autumn    Season = "Autumn"
)

// Display order matches the form's select boxes.
var (
	States  = []State{Karnataka, AndhraPradesh, WestBengal, Chhattisgarh, Bihar}
	Crops   = []Crop{Rice, Maize, Moong, Urad, Groundnut}
	Seasons = []Season{Kharif, Rabi, WholeYear, Summer, Autumn}
)

func (s State) Valid() bool {
	for _, v := range States {
		if v == s {
			return true
		}
	}
	return false
}

func (c Crop) Valid() bool {
	for _, v := range Crops {
		if v == c {
			return true
		}
	}
	return false
}

func (s Season) Valid() bool {
	for _, v := range Seasons {
		if v == s {
			return true
		}
	}
	return false
}

type FarmParameters struct {
	State             State   `json:"state"`
	Crop              Crop    `json:"crop"`
	Season            Season  `json:"season"`
	AreaHectares      float64 `json:"area_ha"`
	AnnualRainfallMM  float64 `json:"annual_rainfall_mm"`
	FertilizerKgPerHa float64 `json:"fertilizer_kg_ha"`
	PesticideKgPerHa  float64 `json:"pesticide_kg_ha"`
}
