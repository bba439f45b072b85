package main

import (
	"flag"
	"fmt"

	"github.com/pkg/errors"

	"github.com/justinbass/makocode"
	"github.com/justinbass/makocode/palette"
)

func selfTestMain(args []string) error {
	fs := flag.NewFlagSet("selftest", flag.ExitOnError)
	fs.Parse(args)

	modes := []palette.Mode{palette.ModeGray, palette.ModeCMYW, palette.ModeRGBCMYWB}
	for _, mode := range modes {
		if err := makocode.SelfTest(mode); err != nil {
			return errors.Wrapf(err, "selftest: mode %d failed", mode)
		}
		fmt.Printf("mode %d: ok\n", mode)
	}
	return nil
}
