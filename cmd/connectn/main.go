package main

import "github.com/mcoot/connectn-go/internal/cli"

func main() {
	cli.Execute()
}
