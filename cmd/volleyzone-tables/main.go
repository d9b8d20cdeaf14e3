package main

import "volleyzone-tables/internal/cli"

func main() {
	cli.Execute()
}
