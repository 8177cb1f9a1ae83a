package reference

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agripredict/entities"
	"agripredict/pkg/apperr"
)

func TestDefaults(t *testing.T) {
	d := Defaults()

	rice, err := d.Crop(entities.Rice)
	require.NoError(t, err)
	assert.Equal(t, 24.0, rice.AvgYield)
	assert.Equal(t, 2100.0, rice.MarketPrice)
	require.Len(t, rice.Bands, 5)
	assert.Equal(t, entities.YieldBand{Name: entities.BandGood, Min: 32, Max: 42}, rice.Bands[3])

	w, err := d.Weather(entities.Karnataka)
	require.NoError(t, err)
	assert.Equal(t, 26.3, w.AvgTempC)
	assert.Equal(t, 950.0, w.AvgPrecipMM)

	assert.Len(t, d.WeatherTable(), 5)
	assert.Equal(t, entities.Groundnut, d.CropTable()[4].Crop)
}

func TestCropReturnsCopy(t *testing.T) {
	d := Defaults()
	a, _ := d.Crop(entities.Maize)
	a.Bands[0].Max = 999
	b, _ := d.Crop(entities.Maize)
	assert.Equal(t, 18.0, b.Bands[0].Max)
}

func TestUnknownKeysAreInvalidInput(t *testing.T) {
	d := Defaults()
	_, err := d.Crop("Wheat")
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
	_, err = d.Weather("Kerala")
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestNewRejectsBadTables(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(w []entities.WeatherRecord, c []entities.CropReference) ([]entities.WeatherRecord, []entities.CropReference)
		wantErr string
	}{
		{"missing state", func(w []entities.WeatherRecord, c []entities.CropReference) ([]entities.WeatherRecord, []entities.CropReference) {
			return w[1:], c
		}, `missing state "Karnataka"`},
		{"duplicate crop", func(w []entities.WeatherRecord, c []entities.CropReference) ([]entities.WeatherRecord, []entities.CropReference) {
			return w, append(c, c[0])
		}, `duplicate crop "Rice"`},
		{"unknown crop", func(w []entities.WeatherRecord, c []entities.CropReference) ([]entities.WeatherRecord, []entities.CropReference) {
			c[0].Crop = "Wheat"
			return w, c
		}, `unknown crop "Wheat"`},
		{"zero price", func(w []entities.WeatherRecord, c []entities.CropReference) ([]entities.WeatherRecord, []entities.CropReference) {
			c[1].MarketPrice = 0
			return w, c
		}, "positive avg yield and market price"},
		{"gap between bands", func(w []entities.WeatherRecord, c []entities.CropReference) ([]entities.WeatherRecord, []entities.CropReference) {
			c[2].Bands[2].Min = 6
			return w, c
		}, `band "average" starts at 6, want 5`},
		{"decreasing band", func(w []entities.WeatherRecord, c []entities.CropReference) ([]entities.WeatherRecord, []entities.CropReference) {
			c[3].Bands = bandsFromUpper(2.5, 2, 7, 11, 16)
			return w, c
		}, `band "below_avg" is empty or decreasing`},
		{"four bands", func(w []entities.WeatherRecord, c []entities.CropReference) ([]entities.WeatherRecord, []entities.CropReference) {
			c[4].Bands = c[4].Bands[:4]
			return w, c
		}, "want 5 yield bands, got 4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := tt.mutate(defaultWeather(), defaultCrops())
			_, err := New(w, c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDirAcceptsHeaderAliases(t *testing.T) {
	dir := t.TempDir()
	crops := "\uFEFFCrop,Average Yield,Price Per Quintal,Poor Max,Below-Avg,Average,Good,Excellent\n" +
		"Rice,24,\"2,100\",16,22,32,42,55\n" +
		"Maize,28.5,2300,18,24,32,42,60\n" +
		"\n" +
		"Moong(Green Gram),8.5,7500,3,5,8,12,18\n" +
		"Urad,6.2,8200,2.5,4,7,11,16\n" +
		"Groundnut,15.8,5800,12,16,22,28,40\n"
	weather := "State,Avg Temp C,Precipitation,Latitude,Longitude\n" +
		"Karnataka,26.3,950,15.3,75.7\n" +
		"Andhra Pradesh,29.1,1050,15.9,79.7\n" +
		"West Bengal,27.4,1200,22.9,87.8\n" +
		"Chhattisgarh,28.2,1300,21.2,81.8\n" +
		"Bihar,26.7,1100,25.0,85.3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, CropsFile), []byte(crops), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, WeatherFile), []byte(weather), 0o644))

	d, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Defaults().CropTable(), d.CropTable())
	assert.Equal(t, Defaults().WeatherTable(), d.WeatherTable())
}

func TestLoadDirReportsBadCell(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDir(dir, Defaults()))
	raw, err := os.ReadFile(filepath.Join(dir, CropsFile))
	require.NoError(t, err)
	broken := strings.Replace(string(raw), "Maize,28.5", "Maize,lots", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, CropsFile), []byte(broken), 0o644))

	_, err = LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "crop row 3: avg_yield")
}

func TestWorkbookRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.xlsx")
	require.NoError(t, WriteWorkbook(path, Defaults()))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults().CropTable(), d.CropTable())
	assert.Equal(t, Defaults().WeatherTable(), d.WeatherTable())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.yaml")
	doc := `
weather:
  - {state: Karnataka, tavg: 26.3, prcp: 950, lat: 15.3, lon: 75.7}
  - {state: Andhra Pradesh, tavg: 29.1, prcp: 1050, lat: 15.9, lon: 79.7}
  - {state: West Bengal, tavg: 27.4, prcp: 1200, lat: 22.9, lon: 87.8}
  - {state: Chhattisgarh, tavg: 28.2, prcp: 1300, lat: 21.2, lon: 81.8}
  - {state: Bihar, tavg: 26.7, prcp: 1100, lat: 25.0, lon: 85.3}
crops:
`
	for _, c := range Defaults().CropTable() {
		doc += "  - crop: " + string(c.Crop) + "\n    avg_yield: " + num(c.AvgYield) +
			"\n    market_price: " + num(c.MarketPrice) + "\n    bands:\n"
		for _, b := range c.Bands {
			doc += "      - {name: " + string(b.Name) + ", min: " + num(b.Min) + ", max: " + num(b.Max) + "}\n"
		}
	}
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults().CropTable(), d.CropTable())
}

func TestLoadDispatch(t *testing.T) {
	d, err := Load("")
	require.NoError(t, err)
	assert.NotNil(t, d)

	path := filepath.Join(t.TempDir(), "reference.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, `unsupported file type ".json"`)

	_, err = Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestUpdatePrices(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDir(dir, Defaults()))

	changed, err := UpdatePrices(dir, map[entities.Crop]float64{entities.Rice: 2250, entities.Urad: 8400})
	require.NoError(t, err)
	assert.ElementsMatch(t, []entities.Crop{entities.Rice, entities.Urad}, changed)

	d, err := LoadDir(dir)
	require.NoError(t, err)
	rice, _ := d.Crop(entities.Rice)
	maize, _ := d.Crop(entities.Maize)
	assert.Equal(t, 2250.0, rice.MarketPrice)
	assert.Equal(t, 2300.0, maize.MarketPrice)

	_, err = UpdatePrices(dir, map[entities.Crop]float64{entities.Maize: -1})
	assert.Error(t, err)
}
