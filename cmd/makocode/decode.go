package main

import (
	"flag"
	"os"
	"sort"

	"github.com/mewkiz/pkg/osutil"
	"github.com/mewkiz/pkg/pathutil"
	"github.com/pkg/errors"

	"github.com/justinbass/makocode"
	"github.com/justinbass/makocode/palette"
)

func decodeMain(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	var (
		mode   int
		output string
		force  bool
	)
	fs.IntVar(&mode, "mode", 0, "force color mode (0 lets each page's metadata decide)")
	fs.StringVar(&output, "o", "", "output file path (default: derived from the first page's name)")
	fs.BoolVar(&force, "f", false, "force overwrite of an existing output file")
	fs.Parse(args)

	if fs.NArg() == 0 {
		return errors.New("decode: expected one or more page file paths")
	}
	paths := append([]string(nil), fs.Args()...)
	sort.Strings(paths)

	pages := make([][]byte, len(paths))
	for i, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return errors.WithStack(err)
		}
		pages[i] = data
	}

	payload, err := makocode.Decode(pages, palette.Mode(mode))
	if err != nil {
		return errors.Wrap(err, "decode")
	}

	outPath := output
	if outPath == "" {
		outPath = pathutil.TrimExt(paths[0]) + ".out"
	}
	if !force && osutil.Exists(outPath) {
		return errors.Errorf("decode: %q already exists; use -f to force overwrite", outPath)
	}
	return errors.WithStack(os.WriteFile(outPath, payload, 0o644))
}
