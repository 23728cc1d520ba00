package main

import (
	"github.com/subratpandeyy/The-Wedding-Shades/commands"
)

// @title The Wedding Shades API
// @version 1.0
// @description Posts and image uploads for The Wedding Shades studio site
// @host localhost:5000
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Admin JWT with the Bearer prefix: Bearer <JWT>
func main() {
	commands.Execute()
}
