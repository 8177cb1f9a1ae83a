package reference

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"agripredict/entities"
)

type yamlDoc struct {
	Weather []entities.WeatherRecord `yaml:"weather"`
	Crops   []entities.CropReference `yaml:"crops"`
}

// LoadYAML reads a document with top-level "weather" and "crops" lists. Bands
// are spelled out with explicit min/max and must be contiguous.
func LoadYAML(path string) (*Data, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference: %w", err)
	}
	var doc yamlDoc
	if err := yaml.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("parse reference: %w", err)
	}
	return New(doc.Weather, doc.Crops)
}
