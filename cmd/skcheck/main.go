// Command skcheck verifies that built overlay DLLs export the functions
// the sound hook module and external tools resolve by name.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/castaneai/skhook/internal/logging"
)

func main() {
	cheats := flag.Bool("cheats", true, "also require the cheat query exports")
	level := flag.String("log-level", "info", "log level")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: skcheck [flags] skoverlay.dll...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	log := logging.Must("skcheck", *level)
	defer log.Sync()

	want := required(*cheats)
	failed := false
	for _, path := range flag.Args() {
		names, err := exportNames(path)
		if err != nil {
			log.Errorf("%+v", err)
			failed = true
			continue
		}
		if m := missing(names, want); len(m) > 0 {
			log.Errorw("missing exports", "dll", path, "missing", m)
			failed = true
			continue
		}
		log.Infow("exports ok", "dll", path, "exports", len(names))
	}
	if failed {
		os.Exit(1)
	}
}
