package main

import "provision/internal/cli"

func main() {
	cli.Execute()
}
