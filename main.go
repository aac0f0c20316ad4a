package main

import "acad-mcp/internal/cli"

func main() {
	cli.Execute()
}
