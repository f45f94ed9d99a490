package main

import "github.com/panyam/pminus/cmd/pminus/commands"

func main() {
	commands.Execute()
}
