package main

import "roster/internal/app/server"

func main() {
	server.Run()
}
