package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the client's configuration values.
type Config struct {
	GeneratorHost string // Hostname or IP address of the maze generation service
	GeneratorPort int    // Port of the maze generation service
	SolverHost    string // Hostname or IP address of the maze solving service
	SolverPort    int    // Port of the maze solving service

	ExchangeTimeout time.Duration // Upper bound for one request/response exchange (0 disables it)
	EventBufferSize int           // Capacity of the runtime event channel
	SettingsFile    string        // Optional YAML file holding the game settings
}

const (
	defaultGeneratorPort     = 5400
	defaultSolverPort        = 5401
	defaultExchangeTimeoutMS = 30000
	defaultEventBufferSize   = 64
)

// Load initializes and returns the client configuration.
// It loads environment variables from a .env file when one is present.
func Load() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("%s[APP]%s [INFO] .env file not found or could not be loaded: %v", ColorGreen, ColorReset, err)
	}

	return Config{
		GeneratorHost: getEnvWithDefault("GENERATOR_HOST", "localhost"),
		GeneratorPort: getEnvAsIntWithDefault("GENERATOR_PORT", defaultGeneratorPort),
		SolverHost:    getEnvWithDefault("SOLVER_HOST", "localhost"),
		SolverPort:    getEnvAsIntWithDefault("SOLVER_PORT", defaultSolverPort),

		ExchangeTimeout: time.Duration(getEnvAsIntWithDefault("EXCHANGE_TIMEOUT_MS", defaultExchangeTimeoutMS)) * time.Millisecond,
		EventBufferSize: getEnvAsIntWithDefault("EVENT_BUFFER_SIZE", defaultEventBufferSize),
		SettingsFile:    getEnvWithDefault("SETTINGS_FILE", ""),
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves the value of an environment variable as a non-negative integer,
// or returns a default value if not set. It logs a fatal error if the value cannot be parsed.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil || value < 0 {
		log.Fatalf("%s[APP]%s %s[FATAL]%s Environment variable %s must be a non-negative integer: %q", ColorGreen, ColorReset, ColorRed, ColorReset, key, valueStr)
	}
	return value
}
