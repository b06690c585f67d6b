// Package config loads plume.yml, the optional per-project settings file.
//
// Every key has a default, so a missing file is not an error. Environment
// variables prefixed with PLUME_ override file values, e.g.
// PLUME_OUTPUT_DIR=src or PLUME_LOG_LEVEL=debug.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds every setting the generators read.
type Config struct {
	Output    OutputConfig
	Firebase  FirebaseConfig
	Store     StoreConfig
	Auth      AuthConfig
	Log       LogConfig
	Email     EmailConfig
	Functions FunctionsConfig
}

// OutputConfig controls where artifacts are written.
type OutputConfig struct {
	Dir       string
	Extension string
}

// FirebaseConfig names the module generated code imports auth and db from.
type FirebaseConfig struct {
	Import string
}

// StoreConfig tunes generated stores.
type StoreConfig struct {
	PageSize int
}

// AuthConfig controls auth collection classification and messages.
type AuthConfig struct {
	Collections []string
	Messages    map[string]string
}

// LogConfig sets the diagnostic log level.
type LogConfig struct {
	Level string
}

// EmailConfig holds email template defaults.
type EmailConfig struct {
	BrandColor string
	Font       string
	Company    string
}

// FunctionsConfig holds Cloud Function defaults.
type FunctionsConfig struct {
	Region  string
	Runtime string
}

// DefaultAuthCollections are the collection names treated as auth entities
// when plume.yml does not say otherwise.
var DefaultAuthCollections = []string{
	"users", "admins", "accounts", "members",
	"customers", "profiles", "employees", "staff",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.extension", "js")
	v.SetDefault("firebase.import", "@/firebase")
	v.SetDefault("store.page_size", 20)
	v.SetDefault("auth.collections", DefaultAuthCollections)
	v.SetDefault("auth.messages", map[string]string{})
	v.SetDefault("log.level", "warn")
	v.SetDefault("email.brand_color", "#4F46E5")
	v.SetDefault("email.font", "Helvetica, Arial, sans-serif")
	v.SetDefault("email.company", "")
	v.SetDefault("functions.region", "us-central1")
	v.SetDefault("functions.runtime", "nodejs20")
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, _ := fromViper(v)
	return cfg
}

// Load reads configuration. An empty path looks for plume.yml in the working
// directory and tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("PLUME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("plume")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read plume.yml: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Output: OutputConfig{
			Dir:       v.GetString("output.dir"),
			Extension: strings.TrimPrefix(v.GetString("output.extension"), "."),
		},
		Firebase: FirebaseConfig{
			Import: v.GetString("firebase.import"),
		},
		Store: StoreConfig{
			PageSize: v.GetInt("store.page_size"),
		},
		Auth: AuthConfig{
			Collections: v.GetStringSlice("auth.collections"),
			Messages:    v.GetStringMapString("auth.messages"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
		Email: EmailConfig{
			BrandColor: v.GetString("email.brand_color"),
			Font:       v.GetString("email.font"),
			Company:    v.GetString("email.company"),
		},
		Functions: FunctionsConfig{
			Region:  v.GetString("functions.region"),
			Runtime: v.GetString("functions.runtime"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the generators cannot honour.
func (c *Config) Validate() error {
	if c.Store.PageSize <= 0 {
		return fmt.Errorf("store.page_size must be positive, got %d", c.Store.PageSize)
	}
	if c.Output.Extension == "" {
		return fmt.Errorf("output.extension must not be empty")
	}
	if c.Firebase.Import == "" {
		return fmt.Errorf("firebase.import must not be empty")
	}
	return nil
}
