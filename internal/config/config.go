package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Conf holds the application configuration, making it accessible globally.
var Conf *Config

// Config struct is the top-level configuration structure.
type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Web      WebConfig      `mapstructure:"web"`
	Limits   LimitsConfig   `mapstructure:"limits"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
}

// TelegramConfig holds bot credentials and the administrator identity.
type TelegramConfig struct {
	Token       string `mapstructure:"token"`
	AdminUserID int64  `mapstructure:"admin_user_id"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// LoggingConfig holds settings for the logger.
type LoggingConfig struct {
	Directory  string `mapstructure:"directory"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// WebConfig holds settings for the admin statistics dashboard.
type WebConfig struct {
	Port          string `mapstructure:"port"`
	SessionSecret string `mapstructure:"session_secret"`
	// AdminPasswordHash is a bcrypt hash; the plaintext never appears in
	// config files.
	AdminPasswordHash string `mapstructure:"admin_password_hash"`
}

// LimitsConfig holds per-user throttling knobs for bot features.
type LimitsConfig struct {
	TipIntervalSeconds  int `mapstructure:"tip_interval_seconds"`
	TestIntervalSeconds int `mapstructure:"test_interval_seconds"`
	AskIntervalSeconds  int `mapstructure:"ask_interval_seconds"`
	QuestionsPerDay     int `mapstructure:"questions_per_day"`
	MaxQuestionLength   int `mapstructure:"max_question_length"`
}

// CatalogConfig optionally points at a test catalog YAML overriding the
// embedded one.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// setDefaults sets the default values for the configuration.
func setDefaults(v *viper.Viper) {
	// Telegram: token and admin id have no sane defaults and must come
	// from the config file or environment.
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.admin_user_id", 0)

	// Database defaults
	v.SetDefault("database.host", "db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "botuser")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.dbname", "botdb")

	// Logging defaults
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.max_size", 10)   // 10 MB
	v.SetDefault("logging.max_backups", 3) // Keep 3 backups
	v.SetDefault("logging.max_age", 7)     // 7 days
	v.SetDefault("logging.compress", true) // Compress old logs

	// Admin dashboard defaults
	v.SetDefault("web.port", "5050")
	v.SetDefault("web.session_secret", "")
	v.SetDefault("web.admin_password_hash", "")

	// Throttling defaults
	v.SetDefault("limits.tip_interval_seconds", 3600)
	v.SetDefault("limits.test_interval_seconds", 300)
	v.SetDefault("limits.ask_interval_seconds", 600)
	v.SetDefault("limits.questions_per_day", 3)
	v.SetDefault("limits.max_question_length", 500)

	v.SetDefault("catalog.path", "")
}

// Init initializes the configuration with Viper.
func Init(projectRoot string, log *zap.Logger) error {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// --- File Configuration ---
	v.AddConfigPath(filepath.Join(projectRoot, "config"))
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// --- Environment Variable Binding ---
	v.SetEnvPrefix("PSYBOT") // e.g., PSYBOT_TELEGRAM_TOKEN
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read the initial configuration from the file.
	// It's okay if the file doesn't exist; defaults and env vars will be used.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Unmarshal the config into our global Conf variable
	if err := v.Unmarshal(&Conf); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Set up a watch for configuration changes for hot-reloading
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Info("Configuration file changed, reloading.", zap.String("file", e.Name))
		if err := v.Unmarshal(&Conf); err != nil {
			log.Error("Error reloading configuration", zap.Error(err))
		}
	})

	log.Info("Configuration loaded successfully")
	return nil
}
