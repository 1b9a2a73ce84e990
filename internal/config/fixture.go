package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fixture is the seed data written into an empty store. Links reference
// objects by their 1-based position in Objects, which matches the ids the
// store assigns on a fresh schema.
type Fixture struct {
	Version int             `yaml:"version"`
	Objects []FixtureObject `yaml:"objects"`
	Links   []FixtureLink   `yaml:"links"`
}

type FixtureObject struct {
	Name            string  `yaml:"name"`
	Category        string  `yaml:"category"`
	OriginCountry   string  `yaml:"origin_country"`
	BasePrice2025   float64 `yaml:"base_price_2025"`
	EcosystemImpact float64 `yaml:"ecosystem_impact"`
	EconomicImpact  float64 `yaml:"economic_impact"`
	Stock           int64   `yaml:"stock"`
}

type FixtureLink struct {
	Source       int     `yaml:"source"`
	Target       int     `yaml:"target"`
	Probability  float64 `yaml:"probability"`
	RelationType string  `yaml:"relation_type"`
}

// DefaultFixture returns the demo dataset: four goods and four links.
func DefaultFixture() *Fixture {
	return &Fixture{
		Version: 1,
		Objects: []FixtureObject{
			{Name: "Chaise bois", Category: "Mobilier", OriginCountry: "France", BasePrice2025: 49.90, EcosystemImpact: 3.6, EconomicImpact: 2.8, Stock: 1200},
			{Name: "Bois brut", Category: "Ressource", OriginCountry: "Brésil", BasePrice2025: 12.50, EcosystemImpact: 4.5, EconomicImpact: 1.2, Stock: 8000},
			{Name: "Transport maritime", Category: "Logistique", OriginCountry: "International", BasePrice2025: 5.90, EcosystemImpact: 5.0, EconomicImpact: 2.0, Stock: 99999},
			{Name: "Copeaux recyclés", Category: "Matière", OriginCountry: "France", BasePrice2025: 3.20, EcosystemImpact: 1.0, EconomicImpact: 1.4, Stock: 3000},
		},
		Links: []FixtureLink{
			{Source: 2, Target: 1, Probability: 0.9, RelationType: "=>"},
			{Source: 3, Target: 1, Probability: 0.8, RelationType: "=>"},
			{Source: 4, Target: 1, Probability: 0.4, RelationType: "=>"},
			{Source: 2, Target: 4, Probability: 0.7, RelationType: "<=>"},
		},
	}
}

func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading fixture: %w", err)
	}

	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("loading fixture: %w", err)
	}

	for i := range fixture.Links {
		if strings.TrimSpace(fixture.Links[i].RelationType) == "" {
			fixture.Links[i].RelationType = "=>"
		}
	}

	if err := ValidateFixture(&fixture); err != nil {
		return nil, fmt.Errorf("loading fixture: %w", err)
	}

	return &fixture, nil
}

// ValidateFixture checks structure only. Probabilities are deliberately left
// unchecked: values outside [0,1] model amplifying or inverting relations.
func ValidateFixture(f *Fixture) error {
	if f == nil {
		return fmt.Errorf("fixture is required")
	}
	if f.Version != 1 {
		return fmt.Errorf("unsupported version: %d", f.Version)
	}
	if len(f.Objects) == 0 {
		return fmt.Errorf("at least one object is required")
	}

	for i, obj := range f.Objects {
		if strings.TrimSpace(obj.Name) == "" {
			return fmt.Errorf("object %d name is required", i+1)
		}
		if strings.TrimSpace(obj.OriginCountry) == "" {
			return fmt.Errorf("object %s origin_country is required", obj.Name)
		}
	}

	for i, link := range f.Links {
		if link.Source < 1 || link.Source > len(f.Objects) {
			return fmt.Errorf("link %d source %d out of range", i+1, link.Source)
		}
		if link.Target < 1 || link.Target > len(f.Objects) {
			return fmt.Errorf("link %d target %d out of range", i+1, link.Target)
		}
	}

	return nil
}
