// Package tracks loads the table that names the game's music by sound id.
package tracks

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var ErrMalformedEntry = errors.New("tracks: malformed entry")

// Info describes one sound id.
type Info struct {
	ID          uint32 `yaml:"-"`
	Name        string `yaml:"name"`
	Composer    string `yaml:"composer"`
	Stage       string `yaml:"stage"`
	TrackNumber int    `yaml:"track_number"`
	Music       bool   `yaml:"is_music"`
	Boss        bool   `yaml:"is_boss"`
	Special     bool   `yaml:"is_special"`
}

func (i Info) String() string {
	return fmt.Sprintf("0x%X %s", i.ID, i.Name)
}

// Table is an immutable id -> Info lookup.
type Table struct {
	byID map[uint32]Info
}

func NewTable(infos ...Info) *Table {
	t := &Table{byID: make(map[uint32]Info, len(infos))}
	for _, i := range infos {
		t.byID[i.ID] = i
	}
	return t
}

func (t *Table) Lookup(id uint32) (Info, bool) {
	if t == nil {
		return Info{}, false
	}
	i, ok := t.byID[id]
	return i, ok
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byID)
}

// IDs returns the known ids in ascending order.
func (t *Table) IDs() []uint32 {
	ids := make([]uint32, 0, t.Len())
	if t != nil {
		for id := range t.byID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Load reads a track table file. See Parse for the format.
func Load(path string, log *zap.SugaredLogger) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open track table")
	}
	defer f.Close()
	t, err := Parse(f, log)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	log.Infow("track table loaded", "path", path, "tracks", t.Len())
	return t, nil
}

// Parse reads a YAML mapping from hex sound ids to track entries,
// optionally nested under a top-level "tracks" key:
//
//	0x100:
//	  name: Strike the Earth!
//	  composer: Jake Kaufman
//	  stage: Plains of Passage
//	  track_number: 2
//	  is_music: true
//
// Malformed entries are skipped with a warning; only an unreadable
// document is an error.
func Parse(r io.Reader, log *zap.SugaredLogger) (*Table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return NewTable(), nil
		}
		return nil, errors.Wrap(err, "decode yaml")
	}
	if len(doc.Content) == 0 {
		return NewTable(), nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.MappingNode && len(root.Content) == 2 && root.Content[0].Value == "tracks" {
		root = root.Content[1]
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.Errorf("line %d: expected a mapping of sound ids", root.Line)
	}

	t := NewTable()
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		info, err := parseEntry(key, value)
		if err != nil {
			log.Warnw("skipping track entry", "line", key.Line, "error", err)
			continue
		}
		if _, dup := t.byID[info.ID]; dup {
			log.Warnw("duplicate track id, keeping the last entry", "line", key.Line, "id", fmt.Sprintf("0x%X", info.ID))
		}
		t.byID[info.ID] = info
	}
	return t, nil
}

func parseEntry(key, value *yaml.Node) (Info, error) {
	id, err := ParseID(key.Value)
	if err != nil {
		return Info{}, errors.Wrapf(ErrMalformedEntry, "id %q: %v", key.Value, err)
	}
	if value.Kind != yaml.MappingNode {
		return Info{}, errors.Wrapf(ErrMalformedEntry, "id %q is not a mapping", key.Value)
	}
	var info Info
	if err := value.Decode(&info); err != nil {
		return Info{}, errors.Wrapf(ErrMalformedEntry, "id %q: %v", key.Value, err)
	}
	if strings.TrimSpace(info.Name) == "" {
		return Info{}, errors.Wrapf(ErrMalformedEntry, "id %q has no name", key.Value)
	}
	info.ID = id
	return info, nil
}

// ParseID accepts "0x1A2", "1A2h" style hex or plain decimal ids.
func ParseID(s string) (uint32, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	base := 10
	switch {
	case strings.HasPrefix(s, "0x"):
		s, base = s[2:], 16
	case strings.HasSuffix(s, "h"):
		s, base = s[:len(s)-1], 16
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
