package config

import (
	"os"
	"strconv"
)

// Environment overrides, applied after the YAML file. Only the settings an
// operator plausibly flips per-invocation get env knobs; policy tables stay
// file-only.
//
//	LYRICLENS_PROVIDER       provider kind (keyword|openai|gemini)
//	LYRICLENS_MODEL          model override
//	LYRICLENS_BASE_URL       OpenAI-compatible endpoint override
//	LYRICLENS_API_KEY        provider API key (also OPENAI_API_KEY / GEMINI_API_KEY)
//	LYRICLENS_WORKERS        batch worker count
//	LYRICLENS_DEBUG          "1"/"true" enables debug file logging
func applyEnvOverrides(c *Config) {
	if v := os.Getenv("LYRICLENS_PROVIDER"); v != "" {
		c.Provider.Kind = v
	}
	if v := os.Getenv("LYRICLENS_MODEL"); v != "" {
		c.Provider.Model = v
	}
	if v := os.Getenv("LYRICLENS_BASE_URL"); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv("LYRICLENS_API_KEY"); v != "" {
		c.Provider.APIKey = v
	}
	if c.Provider.APIKey == "" {
		switch c.Provider.Kind {
		case "openai":
			c.Provider.APIKey = os.Getenv("OPENAI_API_KEY")
		case "gemini":
			c.Provider.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	if v := os.Getenv("LYRICLENS_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Batch.Workers = n
		}
	}
	if v := os.Getenv("LYRICLENS_DEBUG"); v == "1" || v == "true" {
		c.Logging.Debug = true
		c.Logging.Level = "debug"
	}
}
