package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Study    StudyConfig    `mapstructure:"study" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes bounds access token validity.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`

	// RefreshTokenLifetimeMinutes bounds refresh token validity.
	RefreshTokenLifetimeMinutes int `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`

	// BcryptCost controls password hashing work factor.
	// bcrypt accepts 4 through 31; higher is slower and safer.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"omitempty,gte=4,lte=31"`
}

// StudyConfig contains the planning knobs exposed to operators: the daily
// hour budget per study profile and the windows and limits the planner uses.
type StudyConfig struct {
	// Daily study hours per profile, used when building study plans.
	IntensiveDailyHours float64 `mapstructure:"intensive_daily_hours" validate:"required,gt=0"`
	ModerateDailyHours  float64 `mapstructure:"moderate_daily_hours" validate:"required,gt=0"`
	LightDailyHours     float64 `mapstructure:"light_daily_hours" validate:"required,gt=0"`

	// UrgentWindowDays is how close a due date must be for a task to count
	// as urgent.
	UrgentWindowDays int `mapstructure:"urgent_window_days" validate:"required,gt=0"`

	// RecommendationLimit caps how many recommendations are returned by
	// default.
	RecommendationLimit int `mapstructure:"recommendation_limit" validate:"required,gt=0"`

	// CriticalLoadHours marks a course as critical in the weekly load report
	// when its pending hours exceed this threshold.
	CriticalLoadHours float64 `mapstructure:"critical_load_hours" validate:"required,gt=0"`
}
