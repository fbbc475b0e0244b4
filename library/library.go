// Package library loads the pattern, drill and scale catalogs. A built-in
// catalog is always present; YAML files in a directory extend or replace its
// entries by id.
package library

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/jsphweid/fretwork/model"
	"github.com/jsphweid/fretwork/util"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaults embed.FS

var ErrNotFound = errors.New("not found")

// File is the on-disk shape of one catalog file. Any section may be absent.
type File struct {
	Patterns []model.PatternDefinition `yaml:"patterns"`
	Drills   []model.DrillDefinition   `yaml:"drills"`
	Scales   []model.ScaleDefinition   `yaml:"scales"`
}

type Library struct {
	Patterns []model.PatternDefinition
	Drills   []model.DrillDefinition
	Scales   []model.ScaleDefinition

	patternIdx map[string]int
	drillIdx   map[string]int
	scaleIdx   map[string]int
}

func newLibrary() *Library {
	return &Library{
		patternIdx: make(map[string]int),
		drillIdx:   make(map[string]int),
		scaleIdx:   make(map[string]int),
	}
}

// Default returns the built-in catalog.
func Default() (*Library, error) {
	l := newLibrary()
	entries, err := fs.ReadDir(defaults, "defaults")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		name := path.Join("defaults", e.Name())
		dat, err := defaults.ReadFile(name)
		if err != nil {
			return nil, err
		}
		if err := l.merge(name, dat); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Load returns the built-in catalog merged with every YAML file under dir, in
// lexical path order. An empty dir loads the built-in catalog only.
func Load(dir string) (*Library, error) {
	l, err := Default()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return l, nil
	}
	paths, err := util.GatherDefinitionPaths(dir, 0)
	if err != nil {
		return nil, fmt.Errorf("scanning library dir: %w", err)
	}
	for _, p := range paths {
		dat, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		if err := l.merge(p, dat); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Decode reads one catalog file.
func Decode(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, err
	}
	return f, nil
}

func (l *Library) merge(name string, dat []byte) error {
	f, err := Decode(bytes.NewReader(dat))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	for _, p := range f.Patterns {
		if p.ID == "" {
			return fmt.Errorf("%s: pattern %q has no id", name, p.Name)
		}
		for i := range p.Steps {
			if p.Steps[i].Picking == "" {
				p.Steps[i].Picking = model.PickUnspecified
			}
		}
		l.Patterns = upsert(l.Patterns, l.patternIdx, p.ID, p)
	}
	for _, d := range f.Drills {
		if d.ID == "" {
			return fmt.Errorf("%s: drill %q has no id", name, d.Name)
		}
		l.Drills = upsert(l.Drills, l.drillIdx, d.ID, d)
	}
	for _, s := range f.Scales {
		if s.ID == "" {
			return fmt.Errorf("%s: scale %q has no id", name, s.Name)
		}
		l.Scales = upsert(l.Scales, l.scaleIdx, s.ID, s)
	}
	return nil
}

func upsert[T any](list []T, idx map[string]int, id string, v T) []T {
	if i, ok := idx[id]; ok {
		list[i] = v
		return list
	}
	idx[id] = len(list)
	return append(list, v)
}

func lookup[T any](list []T, idx map[string]int, kind, id string) (T, error) {
	if i, ok := idx[id]; ok {
		return list[i], nil
	}
	var zero T
	return zero, fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// find returns the entry for id, or the first entry when id is unknown. The
// bool reports whether id matched.
func find[T any](list []T, idx map[string]int, id string) (T, bool) {
	if i, ok := idx[id]; ok {
		return list[i], true
	}
	var zero T
	if len(list) > 0 {
		zero = list[0]
	}
	return zero, false
}

func (l *Library) Pattern(id string) (model.PatternDefinition, error) {
	return lookup(l.Patterns, l.patternIdx, "pattern", id)
}

func (l *Library) Drill(id string) (model.DrillDefinition, error) {
	return lookup(l.Drills, l.drillIdx, "drill", id)
}

func (l *Library) Scale(id string) (model.ScaleDefinition, error) {
	return lookup(l.Scales, l.scaleIdx, "scale", id)
}

// FindPattern is Pattern with a fallback to the first pattern in the
// catalog.
func (l *Library) FindPattern(id string) (model.PatternDefinition, bool) {
	return find(l.Patterns, l.patternIdx, id)
}

func (l *Library) FindDrill(id string) (model.DrillDefinition, bool) {
	return find(l.Drills, l.drillIdx, id)
}

func (l *Library) FindScale(id string) (model.ScaleDefinition, bool) {
	return find(l.Scales, l.scaleIdx, id)
}

// Summaries lists the patterns without their steps.
func (l *Library) Summaries() []model.PatternSummary {
	res := make([]model.PatternSummary, 0, len(l.Patterns))
	for _, p := range l.Patterns {
		res = append(res, model.PatternSummary{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Tags:     p.Tags,
			Steps:    len(p.Steps),
			Shifts:   len(p.ShiftEvents),
		})
	}
	return res
}
