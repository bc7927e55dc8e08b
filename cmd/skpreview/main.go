// Command skpreview renders one overlay frame into a PNG without the game,
// for checking banner and menu layout against a track table.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/castaneai/skhook/internal/config"
	"github.com/castaneai/skhook/internal/logging"
	"github.com/castaneai/skhook/internal/overlay"
	"github.com/castaneai/skhook/internal/tracks"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

func main() {
	track := flag.String("track", "", "sound id of the playing track (0x134, 134h or decimal)")
	trackPath := flag.String("tracks", "bgm_database.yaml", "track table")
	menu := flag.Bool("menu", false, "open the mod menu")
	sel := flag.Int("select", 0, "menu item to select")
	cheats := flag.String("cheats", "", "comma separated cheats to enable")
	fps := flag.Bool("fps", false, "show the fps counter")
	width := flag.Int("width", 1280, "viewport width")
	height := flag.Int("height", 720, "viewport height")
	at := flag.Duration("at", 0, "time since the track started")
	bg := flag.String("bg", "darkslategray", "background color name (SVG 1.1 color keywords), empty for transparent")
	out := flag.String("out", "preview.png", "output file")
	level := flag.String("log-level", "warn", "log level")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: skpreview [flags]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logging.Must("skpreview", *level)
	defer log.Sync()

	sc := scene{
		Menu:   *menu,
		Select: *sel,
		FPS:    *fps,
		At:     *at,
		Width:  *width,
		Height: *height,
	}
	if *bg != "" {
		c, ok := colornames.Map[strings.ToLower(*bg)]
		if !ok {
			log.Fatalf("unknown -bg color %q", *bg)
		}
		sc.Background = c
	}
	if *at == 0 {
		sc.At = overlay.DefaultDisplayTime / 2
	}
	if *track != "" {
		id, err := tracks.ParseID(*track)
		if err != nil {
			log.Fatalf("invalid -track: %+v", err)
		}
		sc.Track, sc.HasTrack = id, true
	}
	for _, c := range strings.Split(*cheats, ",") {
		if c = strings.TrimSpace(c); c != "" {
			sc.Cheats = append(sc.Cheats, c)
		}
	}

	table, err := tracks.Load(*trackPath, log)
	if err != nil {
		log.Warnw("track table unavailable, no banner will be drawn", "error", err)
		table = tracks.NewTable()
	}

	dev, err := renderScene(sc, overlay.OptionsFromConfig(config.Default().Overlay), table, log)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	if err := writePNG(*out, dev.Image); err != nil {
		log.Fatalf("%+v", err)
	}
	log.Infow("preview written", "out", *out, "draws", dev.Draws())
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
