package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/comprasapp/purchase-list/rest"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment defaults")
	}

	a := rest.App{}
	a.Init(
		getEnv("DB_USER", "root"),
		getEnv("DB_PASSWORD", "1234"),
		getEnv("DB_NAME", "purchase_list"),
	)
	a.Run(":" + getEnv("APP_PORT", "8080"))
}
