package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides overrides cfg fields with W2W_* environment variables
// that are set. It runs after the config file and before explicit flags.
// A mode chosen in the environment replaces any mode from the config file.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	search := os.Getenv("W2W_SEARCH")
	random, randomSet := envBool("W2W_RANDOM")
	if search != "" || (randomSet && random) {
		cfg.Search, cfg.Title, cfg.Random = "", "", false
	}
	if search != "" {
		cfg.Search = search
	}
	if randomSet {
		cfg.Random = random
	}

	if v := os.Getenv("W2W_LANG"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("W2W_OUTPUT"); v != "" {
		cfg.OutputPath = v
	}
	if v := os.Getenv("W2W_FILTER"); v != "" {
		cfg.Filter = v
	}
	if v := os.Getenv("W2W_SEARCH_FILE"); v != "" {
		cfg.SearchFile = v
	}
	if v := os.Getenv("W2W_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("W2W_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}

	if v := strings.TrimSpace(os.Getenv("W2W_MAX")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxWords = n
		}
	}
	if s := os.Getenv("W2W_CACHE_MAX_AGE"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			cfg.CacheMaxAge = d
		}
	}

	if v, ok := envBool("W2W_CACHE_CLEAR"); ok {
		cfg.CacheClear = v
	}
	if v, ok := envBool("W2W_VERBOSE"); ok {
		cfg.Verbose = v
	}
}

// envBool reports the boolean value of key and whether it was recognised.
func envBool(key string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
