package main

import "github.com/devstefancho/claude-hook-logger/internal/cli"

func main() {
	cli.Execute()
}
