package main

import (
	"log"

	"ume_backend/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as is")
	}
	app.Run()
}
