package main

import "github.com/nstehr/rampart/cmd"

func main() {
	cmd.Execute()
}
