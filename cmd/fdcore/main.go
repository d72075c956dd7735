package main

import "github.com/flightdyn/fdcore/pkg/cmd"

func main() {
	cmd.Execute()
}
