package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mewkiz/pkg/osutil"
	"github.com/mewkiz/pkg/pathutil"
	"github.com/pkg/errors"

	"github.com/justinbass/makocode"
	"github.com/justinbass/makocode/page"
	"github.com/justinbass/makocode/palette"
)

func encodeMain(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	var (
		mode      int
		width     int
		height    int
		title     string
		fontScale int
		force     bool
	)
	fs.IntVar(&mode, "mode", 3, "color mode: 1 (gray), 2 (cmyw), or 3 (8-color)")
	fs.IntVar(&width, "width", page.DefaultWidth, "page width in pixels")
	fs.IntVar(&height, "height", page.DefaultHeight, "page height in pixels")
	fs.StringVar(&title, "title", "", "footer title text; empty disables the footer")
	fs.IntVar(&fontScale, "font-scale", 4, "footer glyph scale, in pixels per glyph cell unit")
	fs.BoolVar(&force, "f", false, "force overwrite of existing page files")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("encode: expected exactly one input file path")
	}
	inPath := fs.Arg(0)

	payload, err := os.ReadFile(inPath)
	if err != nil {
		return errors.WithStack(err)
	}

	opts := makocode.Options{
		Mode:       palette.Mode(mode),
		PageWidth:  width,
		PageHeight: height,
		Title:      title,
		FontScale:  fontScale,
	}
	pages, err := makocode.Encode(payload, opts)
	if err != nil {
		return errors.Wrap(err, "encode")
	}

	prefix := pathutil.TrimExt(inPath)
	stamp := time.Now().UTC().Format("20060102T150405Z")
	pad := digitWidth(len(pages))
	for i, p := range pages {
		outPath := fmt.Sprintf("%s_%s_p%0*dof%0*d.ppm", prefix, stamp, pad, i+1, pad, len(pages))
		if !force && osutil.Exists(outPath) {
			return errors.Errorf("encode: %q already exists; use -f to force overwrite", outPath)
		}
		if err := os.WriteFile(outPath, p, 0o644); err != nil {
			return errors.WithStack(err)
		}
		fmt.Println(outPath)
	}
	return nil
}

func digitWidth(n int) int {
	w := 1
	for n >= 10 {
		n /= 10
		w++
	}
	if w < 4 {
		w = 4
	}
	return w
}
