package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyStoreBackend  = "store.backend"
	KeyStoreSQLite   = "store.sqlite_path"
	KeyStoreMongoURI = "store.mongo_uri"
	KeyStoreMongoDB  = "store.mongo_database"
)

type Config struct {
	Store StoreConfig `mapstructure:"store" validate:"required"`
}

type StoreConfig struct {
	Backend       string `mapstructure:"backend" validate:"required,oneof=sqlite mongo"`
	SQLitePath    string `mapstructure:"sqlite_path"`
	MongoURI      string `mapstructure:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# shiftsync configuration
store:
  # Backend for schedules and shift master data: sqlite | mongo
  backend: "sqlite"
  sqlite_path: "./shiftsync.db"

  # Used when backend is mongo:
  mongo_uri: "mongodb://localhost:27017"
  mongo_database: "shiftsync"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateStore(cfg.Store); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyStoreBackend, "sqlite")
	v.SetDefault(KeyStoreSQLite, "./shiftsync.db")
	v.SetDefault(KeyStoreMongoURI, "mongodb://localhost:27017")
	v.SetDefault(KeyStoreMongoDB, "shiftsync")
}

func validateStore(store StoreConfig) error {
	switch strings.ToLower(strings.TrimSpace(store.Backend)) {
	case "sqlite":
		if strings.TrimSpace(store.SQLitePath) == "" {
			return fmt.Errorf("validation failed: store.sqlite_path is required for the sqlite backend")
		}
	case "mongo":
		if strings.TrimSpace(store.MongoURI) == "" {
			return fmt.Errorf("validation failed: store.mongo_uri is required for the mongo backend")
		}
		if strings.TrimSpace(store.MongoDatabase) == "" {
			return fmt.Errorf("validation failed: store.mongo_database is required for the mongo backend")
		}
	}
	return nil
}
