// engine/internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"jobscreen-engine/internal/predict"
)

type Config struct {
	App struct {
		Port     int    `yaml:"port"`
		DataDir  string `yaml:"data_dir"`
		ModelDir string `yaml:"model_dir"`
	} `yaml:"app"`

	Ensemble predict.Weights `yaml:"ensemble"`

	Detector struct {
		CatalogPath       string  `yaml:"catalog_path"`
		MinDescriptionLen int     `yaml:"min_description_len"`
		CapsRatio         float64 `yaml:"caps_ratio"`
		MisspellingCount  int     `yaml:"misspelling_count"`
		EscalateCount     int     `yaml:"escalate_count"`
	} `yaml:"detector"`

	Analysis struct {
		BatchLimit int `yaml:"batch_limit"`
	} `yaml:"analysis"`

	Enrichment struct {
		DomainLookup   bool     `yaml:"domain_lookup"`
		LookupPerHost  float64  `yaml:"lookup_per_host"`
		DomainsBlocked []string `yaml:"domains_blocked"`
	} `yaml:"enrichment"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
