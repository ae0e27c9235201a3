package main

import "dialog-messenger-api/config"

func main() {
	config.RunServer()
}
