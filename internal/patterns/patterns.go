// Package patterns is a library of named grid fragments stored as YAML.
package patterns

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"force-ca/internal/sims/forces"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownPattern is returned when a name is not in the library.
	ErrUnknownPattern = errors.New("unknown pattern")
	// ErrInvalidPattern is returned for entries that fail validation.
	ErrInvalidPattern = errors.New("invalid pattern")
)

//go:embed builtin.yaml
var builtinYAML []byte

// Pattern is an encoded region together with the size it was cut from.
type Pattern struct {
	// Name uniquely identifies the pattern within a library.
	Name string `yaml:"name"`

	// Description says what the pattern does.
	Description string `yaml:"description,omitempty"`

	// Rows and Cols bound the encoded data.
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`

	// Data is the region text as produced by Grid.Encode.
	Data string `yaml:"data"`
}

type document struct {
	Patterns []Pattern `yaml:"patterns"`
}

// Library keeps patterns in file order and indexes them by name.
type Library struct {
	patterns []Pattern
	byName   map[string]int
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{byName: map[string]int{}}
}

// Parse decodes a YAML library. Unknown fields are rejected and every
// entry is validated.
func Parse(data []byte) (*Library, error) {
	var doc document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse patterns: %w", err)
	}
	lib := NewLibrary()
	for i, p := range doc.Patterns {
		if err := lib.Add(p); err != nil {
			return nil, fmt.Errorf("patterns[%d]: %w", i, err)
		}
	}
	return lib, nil
}

// LoadFile reads and parses a library file.
func LoadFile(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read patterns: %w", err)
	}
	return Parse(data)
}

// Builtin returns the library shipped with the binary.
func Builtin() *Library {
	lib, err := Parse(builtinYAML)
	if err != nil {
		panic(fmt.Sprintf("builtin patterns: %v", err))
	}
	return lib
}

// Add validates p and appends it to the library.
func (l *Library) Add(p Pattern) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, dup := l.byName[p.Name]; dup {
		return fmt.Errorf("%w: duplicate name %q", ErrInvalidPattern, p.Name)
	}
	l.byName[p.Name] = len(l.patterns)
	l.patterns = append(l.patterns, p)
	return nil
}

// Len returns the number of patterns.
func (l *Library) Len() int { return len(l.patterns) }

// Names lists the pattern names in library order.
func (l *Library) Names() []string {
	names := make([]string, len(l.patterns))
	for i, p := range l.patterns {
		names[i] = p.Name
	}
	return names
}

// Get looks up a pattern by name.
func (l *Library) Get(name string) (Pattern, error) {
	i, ok := l.byName[name]
	if !ok {
		return Pattern{}, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
	return l.patterns[i], nil
}

// Place decodes the named pattern into g with its top-left corner at
// (row, col).
func (l *Library) Place(g *forces.Grid, name string, row, col int) error {
	p, err := l.Get(name)
	if err != nil {
		return err
	}
	p.Place(g, row, col)
	return nil
}

// Marshal encodes the library back to YAML.
func (l *Library) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(document{Patterns: l.patterns})
	if err != nil {
		return nil, fmt.Errorf("marshal patterns: %w", err)
	}
	return out, nil
}

// WriteFile stores the library at path.
func (l *Library) WriteFile(path string) error {
	data, err := l.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write patterns: %w", err)
	}
	return nil
}

// Capture cuts region r out of g as a named pattern.
func Capture(g *forces.Grid, r forces.Region, name, description string) Pattern {
	return Pattern{
		Name:        name,
		Description: description,
		Rows:        r.Rows(),
		Cols:        r.Cols(),
		Data:        g.Encode(r),
	}
}

// Place decodes p into g with its top-left corner at (row, col).
func (p Pattern) Place(g *forces.Grid, row, col int) {
	g.Decode(forces.Region{Top: row, Bottom: row + p.Rows - 1, Left: col, Right: col + p.Cols - 1}, p.Data)
}

// Grid returns a fresh grid holding just the pattern.
func (p Pattern) Grid() *forces.Grid {
	g := forces.New(p.Rows, p.Cols)
	p.Place(g, 0, 0)
	return g
}

// Validate checks the name, the dimensions and that Data is made of valid
// tokens fitting inside Rows x Cols.
func (p Pattern) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPattern)
	}
	if p.Rows <= 0 || p.Cols <= 0 {
		return fmt.Errorf("%w: %q has size %dx%d", ErrInvalidPattern, p.Name, p.Rows, p.Cols)
	}
	if err := checkData(p.Data, p.Rows, p.Cols); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidPattern, p.Name, err)
	}
	return nil
}

// checkData is the strict counterpart of Grid.Decode: it rejects anything
// Decode would silently skip.
func checkData(data string, rows, cols int) error {
	row, col := 0, 0
	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c < 0x80 && unicode.IsSpace(rune(c)):
			i++
			continue
		case c == ';':
			row++
			col = 0
			i++
			continue
		case c >= '0' && c <= '9':
			n := 0
			for i < len(data) && data[i] >= '0' && data[i] <= '9' {
				n = n*10 + int(data[i]-'0')
				if n > cols {
					return fmt.Errorf("row %d is wider than %d", row, cols)
				}
				i++
			}
			col += n
		default:
			_, n := forces.ParseCode(data[i:])
			if n == 0 {
				return fmt.Errorf("bad token at offset %d", i)
			}
			col++
			i += n
		}
		if row >= rows {
			return fmt.Errorf("more than %d rows", rows)
		}
		if col > cols {
			return fmt.Errorf("row %d is wider than %d", row, cols)
		}
	}
	return nil
}
