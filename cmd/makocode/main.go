// Command makocode encodes arbitrary files into printable PPM pages and
// decodes them back.
package main

import (
	"flag"
	"fmt"
	"os"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: makocode COMMAND [OPTION]...")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "   encode     encode a file into one or more PPM pages")
	fmt.Fprintln(os.Stderr, "   decode     decode one or more PPM pages back into a file")
	fmt.Fprintln(os.Stderr, "   selftest   round-trip a deterministic payload at each color mode")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	args := flag.Args()
	command, rest := args[0], args[1:]

	var err error
	switch command {
	case "encode":
		err = encodeMain(rest)
	case "decode":
		err = decodeMain(rest)
	case "selftest":
		err = selfTestMain(rest)
	default:
		fmt.Fprintf(os.Stderr, "makocode: unknown command %q\n", command)
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "makocode: %+v\n", err)
		os.Exit(1)
	}
}
