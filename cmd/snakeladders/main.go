package main

import "github.com/eventgames/snakeladders-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
