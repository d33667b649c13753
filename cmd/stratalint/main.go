package main

import "github.com/stratalint/stratalint/internal/cli"

func main() {
	cli.Execute()
}
