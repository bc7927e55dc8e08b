package main

import (
	"github.com/castaneai/skhook/internal/bridge"
	"github.com/pkg/errors"
	peparser "github.com/saferwall/pe"
)

// cheatExports are the cheat queries of the overlay module.
var cheatExports = []string{"IsCheatEnabled", "IsGodModeOn", "IsInfiniteGemsOn", "IsSpeedHackOn"}

func required(cheats bool) []string {
	names := append([]string{}, bridge.Exports...)
	if cheats {
		names = append(names, cheatExports...)
	}
	return names
}

// exportNames returns the named exports of the DLL at path.
func exportNames(path string) ([]string, error) {
	peFile, err := peparser.New(path, &peparser.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open PE file %s", path)
	}
	defer peFile.Close()
	if err := peFile.Parse(); err != nil {
		return nil, errors.Wrapf(err, "failed to parse PE file %s", path)
	}
	if !peFile.IsDLL() {
		return nil, errors.Errorf("%s is not a DLL", path)
	}
	var names []string
	for _, fn := range peFile.Export.Functions {
		if fn.Name != "" {
			names = append(names, fn.Name)
		}
	}
	return names, nil
}

// missing returns the names of want that are not in have, in want's order.
func missing(have, want []string) []string {
	set := make(map[string]bool, len(have))
	for _, n := range have {
		set[n] = true
	}
	var out []string
	for _, n := range want {
		if !set[n] {
			out = append(out, n)
		}
	}
	return out
}
