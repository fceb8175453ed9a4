package main

import "focusboard/internal/app"

// @title           Focusboard API
// @version         1.0
// @description     Personal productivity dashboard: recurring tasks, daily reset, consistency reports.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
