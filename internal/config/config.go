// Package config loads application configuration from the environment,
// with optional .env file support for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// insecureDefaultSecret is the fallback session-signing key. main logs a
// warning when it is in use; set SESSION_SECRET in any real deployment.
const insecureDefaultSecret = "dev-only-insecure-session-secret"

type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string
	SessionSecret string
	TemplateDir   string
}

// Load reads configuration from the environment. A missing .env file is not
// an error — production deployments set real environment variables.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:          getEnv("PORT", "8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DB", "blog"),
		SessionSecret: getEnv("SESSION_SECRET", insecureDefaultSecret),
		TemplateDir:   getEnv("TEMPLATE_DIR", "web/templates"),
	}
}

// UsingDefaultSecret reports whether the session secret was left at the
// insecure built-in default.
func (c Config) UsingDefaultSecret() bool {
	return c.SessionSecret == insecureDefaultSecret
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
