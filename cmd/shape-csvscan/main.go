// Command shape-csvscan prints the rows of a delimited text file tab-separated.
//
// Usage:
//
//	shape-csvscan <file.csv> [-d|--delimiter CHAR] [-q|--quote CHAR] [-c|--columns LIST]
//	              [--config FILE] [-v|--verbose] [-h|--help]
package main

import (
	"os"

	"github.com/shapestone/shape-csvscan/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
