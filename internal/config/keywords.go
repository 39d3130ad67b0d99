package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// KeywordsConfig is the YAML shape of configs/keywords.yaml:
//
//	keywords:
//	  - 정치
//	  - 경제
type KeywordsConfig struct {
	Keywords []string `yaml:"keywords"`
}

// LoadKeywords reads the ingestion keyword list. Order matters: keywords
// are processed in file order.
func LoadKeywords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg KeywordsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing keywords config: %w", err)
	}
	if len(cfg.Keywords) == 0 {
		return nil, fmt.Errorf("keywords config %s is empty", path)
	}
	return cfg.Keywords, nil
}
