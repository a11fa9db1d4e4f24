package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type AppConfig struct {
	Port           string
	MongoURL       string
	DBName         string
	CollectionName string
	JWTSecret      string
	AdminUsername  string
	AdminPassword  string
	// SchemaValidation controls whether the JSON schema validator is applied
	// to the employees collection on startup. Applying it is best-effort
	// either way; this only disables the attempt.
	SchemaValidation bool
}

func Load() AppConfig {
	_ = godotenv.Load() // load .env if present

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal().Msg("missing required env: JWT_SECRET")
	}

	return AppConfig{
		Port:             getEnv("PORT", "8080"),
		MongoURL:         getEnv("MONGO_URL", "mongodb://localhost:27017"),
		DBName:           getEnv("DB_NAME", "employees_db"),
		CollectionName:   getEnv("COLLECTION_NAME", "employees"),
		JWTSecret:        jwtSecret,
		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", "password"),
		SchemaValidation: getEnvBool("SCHEMA_VALIDATION", true),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
