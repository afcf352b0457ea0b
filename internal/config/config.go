package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Catalog
		Database
		Search
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Catalog struct {
		Path string
	}
	Database struct {
		Path     string
		StateKey string // namespace key of the user-state slot
	}
	Search struct {
		MinQueryLength  int
		SuggestionLimit int
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8288)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("catalog_path", DefaultCatalogPath)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("state_key", DefaultStateKey)
	v.SetDefault("search_min_query_length", 2)
	v.SetDefault("search_suggestion_limit", 5)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Catalog: Catalog{
			Path: v.GetString("CATALOG_PATH"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			StateKey: v.GetString("STATE_KEY"),
		},
		Search: Search{
			MinQueryLength:  v.GetInt("SEARCH_MIN_QUERY_LENGTH"),
			SuggestionLimit: v.GetInt("SEARCH_SUGGESTION_LIMIT"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
