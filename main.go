package main

import "estatecrm/internal/app"

// @title EstateCRM Lead API
// @version 1.0
// @description Lead lifecycle, assignment and booking service for the EstateCRM admin panel.
// @BasePath /
func main() {
	app.Run()
}
