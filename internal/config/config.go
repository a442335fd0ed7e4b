package config

import (
	"fmt"

	"github.com/dragon-editor/dragondata/internal/util"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory
const FileName = "dragondata.cfg.json"

// StorageConfig selects and configures the catalog export backend
type StorageConfig struct {
	Type     string         `json:"type" mapstructure:"type"`
	SQLite   SQLiteConfig   `json:"sqlite" mapstructure:"sqlite"`
	Postgres PostgresConfig `json:"postgres" mapstructure:"postgres"`
}

// SQLiteConfig holds SQLite storage backend settings
type SQLiteConfig struct {
	Path     string `json:"path" mapstructure:"path"`
	InMemory bool   `json:"inMemory" mapstructure:"inMemory"`
}

// PostgresConfig holds the connection settings shared with the db.* keys
type PostgresConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// FolderConfig locates the game installation
type FolderConfig struct {
	Path    string
	Workers int
}

// GraylogConfig holds remote log shipping settings
type GraylogConfig struct {
	Enabled bool
	Address string
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// SetDefaults registers every default value. Load calls it; the CLI calls it
// directly when no config file is present.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")

	viper.SetDefault("gameFolder", "")
	viper.SetDefault("workers", 4)

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("storage.type", "sqlite")
	viper.SetDefault("storage.sqlite.path", "./dragondata.db")
	viper.SetDefault("storage.sqlite.inMemory", false)

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "dragondata")
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetStorageConfig returns the storage backend configuration.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		SQLite: SQLiteConfig{
			Path:     viper.GetString("storage.sqlite.path"),
			InMemory: viper.GetBool("storage.sqlite.inMemory"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetString("db.port"),
			Username: viper.GetString("db.username"),
			Password: viper.GetString("db.password"),
			Database: viper.GetString("db.database"),
		},
	}
}

// GetFolderConfig returns the game folder location and load parallelism.
func GetFolderConfig() FolderConfig {
	return FolderConfig{
		Path:    util.TrimQuotes(viper.GetString("gameFolder")),
		Workers: viper.GetInt("workers"),
	}
}

// GetGraylogConfig returns the remote logging configuration.
func GetGraylogConfig() GraylogConfig {
	return GraylogConfig{
		Enabled: viper.GetBool("graylog.enabled"),
		Address: viper.GetString("graylog.address"),
	}
}
