package config

import "os"

type Config struct {
	HTTPAddr   string
	DBPath     string
	GelfAddr   string
	JWTSecret  string
	AdminEmail string
	AdminPass  string
}

func Load() *Config {
	return &Config{
		HTTPAddr:   getEnv("FROTA_ADDR", ":8080"),
		DBPath:     getEnv("FROTA_DB", "frotacheck.db"),
		GelfAddr:   getEnv("FROTA_GELF_ADDR", ""),
		JWTSecret:  getEnv("FROTA_JWT_SECRET", "frotacheck-dev-secret-change-me"),
		AdminEmail: getEnv("FROTA_ADMIN_EMAIL", "admin@frotacheck.local"),
		AdminPass:  getEnv("FROTA_ADMIN_PASS", "admin123"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
