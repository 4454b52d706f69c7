// Package main is the entry point for the coach CLI and HTTP server.
package main

import "github.com/easeaico/chat-coach/internal/cli"

func main() {
	cli.Execute()
}
