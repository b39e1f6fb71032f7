package config

import (
	"reflect"
	"strings"

	"stage-alts/core/database"
	"stage-alts/core/logger"
	"stage-alts/core/names"
	"stage-alts/core/server"
	"stage-alts/core/storage"
	"stage-alts/feature/alts"
	"stage-alts/feature/params"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Alts holds the redirection settings and the archive listing source.
	Alts alts.Config `mapstructure:"alts"`
	// Names holds where the hash name table comes from.
	Names names.Config `mapstructure:"names"`
	// Params holds where the stage and music tables come from.
	Params params.Config `mapstructure:"params"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}

// RequiredObjects lists the bucket objects the configured sources read.
func (c *Config) RequiredObjects() []string {
	var out []string
	if c.Alts.ListingSource == storage.SourceStorage {
		out = append(out, c.Alts.Listing)
	}
	if c.Names.Source == storage.SourceStorage {
		out = append(out, c.Names.Path)
	}
	if c.Params.Source == params.SourceStorage {
		out = append(out, c.Params.Path)
	}
	return out
}
