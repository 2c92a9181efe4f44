package main

import "whlgen/internal/cli"

func main() {
	cli.Execute()
}
