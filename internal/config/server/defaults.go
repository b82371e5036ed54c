package server

import "github.com/spf13/viper"

func GetServerDefault() BaseServerConfig {
	return BaseServerConfig{
		ShutdownTimeout: "10s",

		Log: LogServerConfig{
			Level:      "INFO",
			TimeFormat: "2006-01-02 15:04:05",
			File:       "",
			NoColor:    false,
			JSON:       false,
			NoTerminal: false,
			Rotation: LogServerRotationConfig{
				MaxSize:    128,
				MaxBackups: 5,
				MaxAge:     16,
				Compress:   false,
			},
		},

		Database: DatabaseServerConfig{
			Type:     "sqlite",
			LogLevel: "silent",
			SQLite: DatabaseSQLiteConfig{
				Path: "taskfilter.db",
			},
			Postgres: DatabasePostgresConfig{
				DSN:          "",
				MaxOpenConns: 10,
				MaxIdleConns: 5,
			},
		},

		HTTP: HTTPServerConfig{
			Address:      ":8080",
			TenantHeader: "X-Organization-ID",
			Mode:         "release",
		},

		Filter: FilterServerConfig{
			Timezone:   "UTC",
			WeekStart:  "sunday",
			JSONColumn: "tracking",
			UTMPath:    []string{"utms"},
		},
	}
}

func setDefaults() {
	defaults := GetServerDefault()

	viper.SetDefault("shutdown_timeout", defaults.ShutdownTimeout)

	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.time_format", defaults.Log.TimeFormat)
	viper.SetDefault("log.file", defaults.Log.File)
	viper.SetDefault("log.no_color", defaults.Log.NoColor)
	viper.SetDefault("log.json", defaults.Log.JSON)
	viper.SetDefault("log.no_terminal", defaults.Log.NoTerminal)
	viper.SetDefault("log.rotation.max_size", defaults.Log.Rotation.MaxSize)
	viper.SetDefault("log.rotation.max_backups", defaults.Log.Rotation.MaxBackups)
	viper.SetDefault("log.rotation.max_age", defaults.Log.Rotation.MaxAge)
	viper.SetDefault("log.rotation.compress", defaults.Log.Rotation.Compress)

	viper.SetDefault("database.type", defaults.Database.Type)
	viper.SetDefault("database.log_level", defaults.Database.LogLevel)
	viper.SetDefault("database.sqlite.path", defaults.Database.SQLite.Path)
	viper.SetDefault("database.postgres.dsn", defaults.Database.Postgres.DSN)
	viper.SetDefault("database.postgres.max_open_conns", defaults.Database.Postgres.MaxOpenConns)
	viper.SetDefault("database.postgres.max_idle_conns", defaults.Database.Postgres.MaxIdleConns)

	viper.SetDefault("http.address", defaults.HTTP.Address)
	viper.SetDefault("http.tenant_header", defaults.HTTP.TenantHeader)
	viper.SetDefault("http.mode", defaults.HTTP.Mode)

	viper.SetDefault("filter.timezone", defaults.Filter.Timezone)
	viper.SetDefault("filter.week_start", defaults.Filter.WeekStart)
	viper.SetDefault("filter.json_column", defaults.Filter.JSONColumn)
	viper.SetDefault("filter.utm_path", defaults.Filter.UTMPath)
}
