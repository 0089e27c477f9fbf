package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from flags, environment
// variables, .env files, and the config file, in that order of precedence.
type Config struct {
	ConfigFile string

	// Store locations.
	LocalDir  string
	RemoteDir string

	// LinkagePath is the sqlite file holding cross-references. Empty
	// means in-memory, which forgets pairings between runs.
	LinkagePath string

	// Policy is the conflict policy: automatic, prefer-local, or
	// prefer-remote.
	Policy string

	IncludeContactsWithoutEmail bool
	SyncPhotos                  bool

	EventWindowPast   time.Duration
	EventWindowFuture time.Duration

	// Schedule is a cron expression for the serve command.
	Schedule string

	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from all sources.
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	viper.SetEnvPrefix("PIMSYNC")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".pimsync")
		}
	}

	// Missing config file is fine; everything has a default.
	_ = viper.ReadInConfig()

	cfg := &Config{
		ConfigFile: viper.ConfigFileUsed(),

		LocalDir:    viper.GetString("local_dir"),
		RemoteDir:   viper.GetString("remote_dir"),
		LinkagePath: viper.GetString("linkage_path"),
		Policy:      viper.GetString("policy"),

		IncludeContactsWithoutEmail: viper.GetBool("include_contacts_without_email"),
		SyncPhotos:                  true,

		EventWindowPast:   viper.GetDuration("event_window_past"),
		EventWindowFuture: viper.GetDuration("event_window_future"),

		Schedule: viper.GetString("schedule"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
	}

	if viper.IsSet("sync_photos") {
		cfg.SyncPhotos = viper.GetBool("sync_photos")
	}
	if cfg.EventWindowPast == 0 {
		cfg.EventWindowPast = 30 * 24 * time.Hour
	}
	if cfg.EventWindowFuture == 0 {
		cfg.EventWindowFuture = 365 * 24 * time.Hour
	}
	if cfg.Schedule == "" {
		cfg.Schedule = "@every 15m"
	}

	return cfg, nil
}

// loadEnvFiles loads .env files from the working directory.
func loadEnvFiles() {
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err == nil {
			_ = godotenv.Load(file)
		}
	}
}

// getEnvOrDefault returns an environment variable value or default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
