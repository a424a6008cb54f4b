// Command anttp stores and fetches primitives through the storage engine.
package main

import (
	"os"

	"github.com/willief/AntTP-tutorial/cmd/anttp/commands"
)

func main() {
	os.Exit(commands.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
