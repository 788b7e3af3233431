package main

import "tunitour/cmd/tourctl/commands"

func main() {
	commands.Execute()
}
