package xdgmenu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// DesktopEntrySection is the section of a descriptor holding the application keys.
const DesktopEntrySection = "Desktop Entry"

// Section maps keys to their raw string values.
type Section map[string]string

// Descriptor is a parsed desktop entry file: section name to its keys.
type Descriptor map[string]Section

// Entry returns the [Desktop Entry] section, or an empty section when
// the file has none.
func (d Descriptor) Entry() Section {
	if s, ok := d[DesktopEntrySection]; ok {
		return s
	}
	return Section{}
}

// Get reports the value of key and whether it was present.
func (s Section) Get(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

// Bool reports whether key is set to exactly "true".
func (s Section) Bool(key string) bool {
	return s[key] == "true"
}

// ParseError is returned when a descriptor cannot be read.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseFile reads and parses the descriptor at path.
func ParseFile(fs afero.Fs, path string) (Descriptor, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return d, nil
}

// Parse reads a descriptor from r.
//
// A line starting with '[' and ending with ']' opens a section. Inside a
// section, a line is split on its first '=' and both sides are trimmed.
// Every other line is ignored. Repeating a section header starts that
// section afresh; repeating a key overwrites it.
func Parse(r io.Reader) (Descriptor, error) {
	d := make(Descriptor)
	var current Section

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		line = strings.TrimSuffix(line, "\n")

		switch {
		case len(line) >= 2 && line[0] == '[' && line[len(line)-1] == ']':
			current = make(Section)
			d[line[1:len(line)-1]] = current
		case current != nil:
			if key, value, ok := strings.Cut(line, "="); ok {
				current[strings.TrimSpace(key)] = strings.TrimSpace(value)
			}
		}

		if err != nil {
			break
		}
	}

	return d, nil
}
