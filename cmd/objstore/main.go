// Command objstore inspects and exports object store files.
package main

import (
	"os"

	"github.com/roach88/objstore/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
