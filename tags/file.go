package tags

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry pairs an audio file path with its tags.
type Entry struct {
	Path string `yaml:"path"`
	Tags Map    `yaml:"tags"`
}

// LoadFile reads a list of entries from a YAML file. JSON files are accepted
// too, since JSON is a subset of YAML.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	entries, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Load reads a list of entries from r and validates them.
func Load(r io.Reader) ([]Entry, error) {
	var entries []Entry
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&entries); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	for i, e := range entries {
		if e.Path == "" {
			return nil, fmt.Errorf("entry %d: missing path", i+1)
		}
		for k := range e.Tags {
			if !IsKey(k) {
				return nil, fmt.Errorf("entry %d (%s): unknown tag %q", i+1, e.Path, k)
			}
		}
	}
	return entries, nil
}
