package main

import (
	"github.com/DrSkyle/hold/cmd/hold/commands"
)

func main() {
	commands.Execute()
}
