package config

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// Type is the backend: sqlite (default) or postgres
	Type string `mapstructure:"type" validate:"required,oneof=sqlite postgres"`

	// Path is the sqlite database file (or ":memory:")
	Path string `mapstructure:"path"`

	// URL is a full connection string for postgres; overrides the fields below
	URL string `mapstructure:"url"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}
