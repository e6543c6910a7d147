package main

import "github.com/citypulse/eventbrite-etl/internal/cli"

func main() {
	cli.Execute()
}
