package main

import "hrcomp/internal/app/server"

func main() {
	server.Run()
}
