package config

import (
	"log"

	"github.com/joho/godotenv"
)

// loadDotEnv loads a .env file if present. Missing files are fine; real
// deployments configure everything through the environment.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
}
