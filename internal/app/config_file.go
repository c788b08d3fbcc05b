package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Search string `yaml:"search" json:"search"`
	Title  string `yaml:"title" json:"title"`
	Random bool   `yaml:"random" json:"random"`

	Language string `yaml:"language" json:"language"`
	Output   string `yaml:"output" json:"output"`

	Max       int    `yaml:"max" json:"max"`
	MinLength int    `yaml:"minLength" json:"minLength"`
	Filter    string `yaml:"filter" json:"filter"`

	SearchLimit int    `yaml:"searchLimit" json:"searchLimit"`
	SearchFile  string `yaml:"searchFile" json:"searchFile"`
	APIURL      string `yaml:"apiURL" json:"apiURL"`
	UserAgent   string `yaml:"userAgent" json:"userAgent"`

	Cache struct {
		Dir         string        `yaml:"dir" json:"dir"`
		MaxAge      time.Duration `yaml:"maxAge" json:"maxAge"`
		Clear       bool          `yaml:"clear" json:"clear"`
		StrictPerms bool          `yaml:"strictPerms" json:"strictPerms"`
	} `yaml:"cache" json:"cache"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from fc onto cfg for fields that are still
// zero or at their default. Env and flags are applied afterwards and win.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	def := DefaultConfig()

	if cfg.Search == "" && fc.Search != "" {
		cfg.Search = fc.Search
	}
	if cfg.Title == "" && fc.Title != "" {
		cfg.Title = fc.Title
	}
	if !cfg.Random && fc.Random {
		cfg.Random = true
	}

	if (cfg.Language == "" || cfg.Language == def.Language) && fc.Language != "" {
		cfg.Language = fc.Language
	}
	if cfg.OutputPath == "" && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}

	if cfg.MaxWords == 0 && fc.Max > 0 {
		cfg.MaxWords = fc.Max
	}
	if (cfg.MinLength == 0 || cfg.MinLength == def.MinLength) && fc.MinLength > 0 {
		cfg.MinLength = fc.MinLength
	}
	if (cfg.Filter == "" || cfg.Filter == def.Filter) && fc.Filter != "" {
		cfg.Filter = fc.Filter
	}

	if (cfg.SearchLimit == 0 || cfg.SearchLimit == def.SearchLimit) && fc.SearchLimit > 0 {
		cfg.SearchLimit = fc.SearchLimit
	}
	if cfg.SearchFile == "" && fc.SearchFile != "" {
		cfg.SearchFile = fc.SearchFile
	}
	if cfg.APIURL == "" && fc.APIURL != "" {
		cfg.APIURL = fc.APIURL
	}
	if (cfg.UserAgent == "" || cfg.UserAgent == def.UserAgent) && fc.UserAgent != "" {
		cfg.UserAgent = fc.UserAgent
	}

	if cfg.CacheDir == "" && fc.Cache.Dir != "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge > 0 {
		cfg.CacheMaxAge = fc.Cache.MaxAge
	}
	if !cfg.CacheClear && fc.Cache.Clear {
		cfg.CacheClear = true
	}
	if !cfg.CacheStrictPerms && fc.Cache.StrictPerms {
		cfg.CacheStrictPerms = true
	}

	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}
