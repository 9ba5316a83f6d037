package main

import "kamau_backend/internal/app"

func main() {
	app.Run()
}
