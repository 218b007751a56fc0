package main

import (
	"flag"
	"fmt"
	"os"

	"blog-service/server"
)

func main() {
	commandFlag := flag.String("command", "start", "Command to run modules")
	flag.Parse()

	switch *commandFlag {
	case "start":
		server.StartServer()
	default:
		fmt.Println("Usage: go run main.go --command start")
		os.Exit(1)
	}
}
