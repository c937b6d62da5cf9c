package main

import "recipehub_backend/internal/app"

func main() {
	app.Run()
}
