// internal/config/config.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config supplies run defaults that the CLI flags can override. It mirrors
// the tool's built-in defaults; a YAML file given via --config is merged on
// top of Default, and explicit flags win over both.
type Config struct {
	HMMDB     string  `yaml:"hmm_db"`
	KOMap     string  `yaml:"ko_map"`
	SymbolMap string  `yaml:"symbol_map"`
	AnnotDB   string  `yaml:"annot_db"`
	Evalue    float64 `yaml:"evalue"`
	Threads   int     `yaml:"threads"`

	// Optional default thresholds; nil = not set.
	MinScore    *float64 `yaml:"min_score"`
	MinModelCov *float64 `yaml:"min_modelcov"`
	MinSeqCov   *float64 `yaml:"min_seqcov"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		HMMDB:     "data/PzDE-HMM.hmm",
		KOMap:     "data/hmm_label-KO.txt",
		SymbolMap: "data/hmm_label-symbol.txt",
		Evalue:    1e-5,
		Threads:   4,
	}
}

// Load reads a YAML config file and merges it over Default. An empty path
// returns Default unchanged. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var file Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	merge(&cfg, file)
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func merge(dst *Config, src Config) {
	if src.HMMDB != "" {
		dst.HMMDB = src.HMMDB
	}
	if src.KOMap != "" {
		dst.KOMap = src.KOMap
	}
	if src.SymbolMap != "" {
		dst.SymbolMap = src.SymbolMap
	}
	if src.AnnotDB != "" {
		dst.AnnotDB = src.AnnotDB
	}
	if src.Evalue != 0 {
		dst.Evalue = src.Evalue
	}
	if src.Threads != 0 {
		dst.Threads = src.Threads
	}
	if src.MinScore != nil {
		dst.MinScore = src.MinScore
	}
	if src.MinModelCov != nil {
		dst.MinModelCov = src.MinModelCov
	}
	if src.MinSeqCov != nil {
		dst.MinSeqCov = src.MinSeqCov
	}
}

func (c Config) validate() error {
	if c.Evalue < 0 {
		return fmt.Errorf("evalue must be ≥ 0, got %v", c.Evalue)
	}
	if c.Threads < 1 {
		return fmt.Errorf("threads must be ≥ 1, got %d", c.Threads)
	}
	for name, v := range map[string]*float64{"min_modelcov": c.MinModelCov, "min_seqcov": c.MinSeqCov} {
		if v != nil && (*v < 0 || *v > 1) {
			return fmt.Errorf("%s must be in [0,1], got %v", name, *v)
		}
	}
	return nil
}
