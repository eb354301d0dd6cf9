package main

import "taskmate/internal/app"

// @title        TaskMate API
// @version      1.0
// @description  Task management with notifications and AI reports.
// @BasePath     /api
func main() {
	app.Run()
}
