package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FortuneOutcomes is the number of outcomes a fortune draw picks from.
const FortuneOutcomes = 5

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog holds the fixed data served by the local commands.
type Catalog struct {
	ImageURL string `yaml:"image_url"`
	Fortune  struct {
		Domains  []string `yaml:"domains"`
		Outcomes []string `yaml:"outcomes"`
	} `yaml:"fortune"`
	Meals []string `yaml:"meals"`
}

// LoadCatalog reads a YAML catalog from path. An empty path loads the embedded default.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
		}
	}

	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (c *Catalog) Validate() error {
	if !strings.HasPrefix(c.ImageURL, "http://") && !strings.HasPrefix(c.ImageURL, "https://") {
		return fmt.Errorf("catalog image_url must be an http(s) URL")
	}
	if len(c.Fortune.Domains) == 0 {
		return fmt.Errorf("catalog needs at least one fortune domain")
	}
	if len(c.Fortune.Outcomes) != FortuneOutcomes {
		return fmt.Errorf("catalog needs exactly %d fortune outcomes, got %d", FortuneOutcomes, len(c.Fortune.Outcomes))
	}
	if len(c.Meals) == 0 {
		return fmt.Errorf("catalog needs at least one meal")
	}
	for _, list := range [][]string{c.Fortune.Domains, c.Fortune.Outcomes, c.Meals} {
		for _, item := range list {
			if strings.TrimSpace(item) == "" {
				return fmt.Errorf("catalog entries cannot be empty")
			}
		}
	}
	return nil
}
