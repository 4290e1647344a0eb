package main

import "github.com/mcoot/zonehunt/internal/cli"

func main() {
	cli.Execute()
}
