package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/gabadev/furduncinho047-api/cmd/app"
)

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	app.Start()
}
