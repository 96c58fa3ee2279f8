// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the resolved runtime configuration.
type Config struct {
	Eutils EutilsConfig
	Fetch  FetchConfig
	Model  ModelConfig
	Output OutputConfig
}

// EutilsConfig holds remote record-lookup settings.
type EutilsConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	DB        string `mapstructure:"db"`
	APIKeyEnv string `mapstructure:"api_key_env"`
}

// FetchConfig holds retry/timeout settings for remote fetches.
type FetchConfig struct {
	Attempts  int           `mapstructure:"attempts"`
	BaseDelay time.Duration `mapstructure:"base_delay"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// ModelConfig holds context-model persistence settings.
type ModelConfig struct {
	Path string `mapstructure:"path"`
}

// OutputConfig holds result-artifact settings.
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

// Load resolves configuration from defaults, then an optional config file,
// then environment overrides with prefix SEQPROF_ (dots become underscores,
// e.g. SEQPROF_MODEL_PATH).
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("eutils.base_url", "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi")
	v.SetDefault("eutils.db", "nuccore")
	v.SetDefault("eutils.api_key_env", "NCBI_API_KEY")
	v.SetDefault("fetch.attempts", 3)
	v.SetDefault("fetch.base_delay", "100ms")
	v.SetDefault("fetch.timeout", "30s")
	v.SetDefault("model.path", "kmer_model.txt")
	v.SetDefault("output.path", "summary.gz")

	v.SetConfigType("toml")

	if cfgPath := os.Getenv("SEQPROF_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "seqprof"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SEQPROF")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// config file is optional
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// APIKey resolves the remote API credential from the configured environment
// variable. Empty when unset; the key is never stored in the config file.
func (c Config) APIKey() string {
	if c.Eutils.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Eutils.APIKeyEnv)
}
