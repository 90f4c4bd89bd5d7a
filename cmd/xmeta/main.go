// Command xmeta reads and writes typed metadata in extended attributes.
package main

import (
	"os"

	"github.com/roach88/xmeta/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
