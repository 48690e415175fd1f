package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/sparkslearn/console/cmd/app"
)

// @title        Sparks Learn admin console API
// @version      1.0
// @BasePath     /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
