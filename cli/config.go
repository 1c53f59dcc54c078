package cli

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"pdfpress/api"
	"pdfpress/pdf"
)

const (
	// DefaultPort is the default server port
	DefaultPort = "8080"

	// DefaultTempDir is the default temporary directory
	DefaultTempDir = "./temp"
)

// loadServerConfig reads the server configuration from the environment (and an
// optional .env file). Flags set on the command line take precedence.
func loadServerConfig(flags *pflag.FlagSet) (*api.Config, error) {
	envFile, _ := flags.GetString("env-file")
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, pdf.UsageError("failed to load env file "+envFile, err)
		}
	} else {
		_ = godotenv.Load() // .env is optional
	}

	config := &api.Config{
		Port:          getEnv("PORT", DefaultPort),
		MaxFileSize:   getEnvInt64("MAX_FILE_SIZE", api.DefaultMaxFileSize),
		TempDir:       getEnv("TEMP_DIR", DefaultTempDir),
		EngineTimeout: getEnvDuration("ENGINE_TIMEOUT", api.DefaultEngineTimeout),
	}

	if flags.Changed("port") {
		config.Port, _ = flags.GetString("port")
	}
	if flags.Changed("max-file-size") {
		config.MaxFileSize, _ = flags.GetInt64("max-file-size")
	}
	if flags.Changed("temp-dir") {
		config.TempDir, _ = flags.GetString("temp-dir")
	}
	if flags.Changed("timeout") {
		config.EngineTimeout, _ = flags.GetDuration("timeout")
	}

	if config.MaxFileSize <= 0 {
		return nil, pdf.UsageError("max file size must be positive", nil)
	}
	if config.EngineTimeout <= 0 {
		return nil, pdf.UsageError("engine timeout must be positive", nil)
	}
	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
