package main

import "github.com/pfrederiksen/ufc-events/internal/cli"

var version = "dev"

func main() {
	cli.Version = version
	cli.Execute()
}
