package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. The types reflect how the values are used
// in the application: strings for identifiers and secrets, ints for
// durations and limits.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	// Booking policy.
	DayStart         string  // daily operating window start ("HH:MM"), assistant path
	DayEnd           string  // daily operating window end ("HH:MM"), assistant path
	MaxBookingHours  float64 // maximum booking duration on the interactive path
	SearchHorizonDays int    // how many days ahead the next-availability search looks

	// Assistant / language model settings.
	OpenAIKey      string // API key for the chat-completions endpoint
	OpenAIBaseURL  string // endpoint base URL (OpenAI-compatible)
	AssistantModel string // model name used for intent extraction and chat
}

// Load reads configuration values from environment variables and
// returns a Config. Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
// Booking policy values have sensible defaults so only deployment
// specifics are mandatory.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),

		DayStart:          envStr("BOOKING_DAY_START", "08:00"),
		DayEnd:            envStr("BOOKING_DAY_END", "22:00"),
		MaxBookingHours:   envFloat("BOOKING_MAX_HOURS", 8),
		SearchHorizonDays: envInt("BOOKING_SEARCH_HORIZON_DAYS", 7),

		OpenAIKey:      os.Getenv("OPENAI_API_KEY"), // optional: assistant degrades without it
		OpenAIBaseURL:  envStr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		AssistantModel: envStr("ASSISTANT_MODEL", "gpt-4.1-mini"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return def
}
