package main

import "github.com/imprentacamiri/imprenta-api/internal/cli"

func main() {
	cli.Execute()
}
