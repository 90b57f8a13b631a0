package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every externally configurable endpoint of the portal.
// Service addresses are never hardcoded at call sites.
type Config struct {
	// APIBaseURL points at the pricing/renegotiation service.
	APIBaseURL string `yaml:"api_base_url"`

	Supabase struct {
		URL     string `yaml:"url"`
		AnonKey string `yaml:"anon_key"`
	} `yaml:"supabase"`

	// RedisAddr enables the registry snapshot cache when set.
	RedisAddr string `yaml:"redis_addr"`

	// LoginDomain is appended to the cleaned CPF to form the e-mail the
	// identity service expects.
	LoginDomain string `yaml:"login_domain"`
}

func Default() Config {
	var cfg Config
	cfg.APIBaseURL = "http://127.0.0.1:5000"
	cfg.LoginDomain = "@portalcliente.com"
	return cfg
}

// Load reads the YAML file at path (skipped when path is empty or the
// file is absent) and then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return cfg, fmt.Errorf("lendo configuração %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("configuração inválida em %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("EDYFINANCE_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("SUPABASE_URL"); v != "" {
		cfg.Supabase.URL = v
	}
	if v := os.Getenv("SUPABASE_ANON_KEY"); v != "" {
		cfg.Supabase.AnonKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	return cfg, nil
}
