package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Store    StoreConfig    `mapstructure:"store"    validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Mail     MailConfig     `mapstructure:"mail"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                int      `mapstructure:"port"                  validate:"required,gt=0,lt=65536"`
	LogLevel            string   `mapstructure:"log_level"             validate:"required,oneof=debug info warn error"`
	ReadTimeoutSeconds  int      `mapstructure:"read_timeout_seconds"  validate:"gt=0"`
	WriteTimeoutSeconds int      `mapstructure:"write_timeout_seconds" validate:"gt=0"`
	IdleTimeoutSeconds  int      `mapstructure:"idle_timeout_seconds"  validate:"gt=0"`
	AllowedOrigins      []string `mapstructure:"allowed_origins"`
	DevMode             bool     `mapstructure:"dev_mode"`
}

// StoreConfig selects the persistence backend for user records.
type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres redis"`
}

// DatabaseConfig contains all database-related configuration settings.
// It is only required when the postgres store driver is selected.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"            validate:"gte=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"            validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
	AutoMigrate            bool   `mapstructure:"auto_migrate"`
}

// RedisConfig contains the connection settings for the redis store driver.
type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"         validate:"gte=0"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// AuthConfig contains all authentication and authorization settings.
// User and admin tokens are signed with distinct secrets.
type AuthConfig struct {
	UserJWTSecret             string `mapstructure:"user_jwt_secret"              validate:"required,min=32"`
	AdminJWTSecret            string `mapstructure:"admin_jwt_secret"             validate:"required,min=32,nefield=UserJWTSecret"`
	TokenLifetimeMinutes      int    `mapstructure:"token_lifetime_minutes"       validate:"required,gt=0"`
	ResetTokenLifetimeMinutes int    `mapstructure:"reset_token_lifetime_minutes" validate:"required,gt=0"`
	BCryptCost                int    `mapstructure:"bcrypt_cost"                  validate:"gte=4,lte=31"`
}

// MailConfig contains the outbound mail settings used by the password reset flow.
type MailConfig struct {
	Driver   string `mapstructure:"driver"    validate:"required,oneof=log smtp"`
	Host     string `mapstructure:"host"      validate:"required_if=Driver smtp"`
	Port     int    `mapstructure:"port"      validate:"gte=0,lt=65536"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"      validate:"required,email"`
	ResetURL string `mapstructure:"reset_url" validate:"required,url"`
}
