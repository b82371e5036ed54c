package server

// DatabaseServerConfig holds todo store configuration
type DatabaseServerConfig struct {
	Type     string                 `mapstructure:"type"      yaml:"type"`
	LogLevel string                 `mapstructure:"log_level" yaml:"log_level"`
	SQLite   DatabaseSQLiteConfig   `mapstructure:"sqlite"    yaml:"sqlite"`
	Postgres DatabasePostgresConfig `mapstructure:"postgres"  yaml:"postgres"`
}

// DatabaseSQLiteConfig holds SQLite-specific configuration
type DatabaseSQLiteConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// DatabasePostgresConfig holds PostgreSQL-specific configuration
type DatabasePostgresConfig struct {
	DSN          string `mapstructure:"dsn"            yaml:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
}
