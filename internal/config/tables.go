package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/amritadottown/timetable-registry/internal/timetable"
)

// LoadTables returns the built-in lookup tables with the YAML file at path
// laid over them. Lists in the file replace the defaults; maps are merged key
// by key. An empty path means defaults only.
func LoadTables(path string) (*timetable.Tables, error) {
	tables := timetable.DefaultTables()
	if path == "" {
		return tables, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tables file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(tables); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode tables file %s: %w", path, err)
	}
	if len(tables.Weekdays) == 0 {
		return nil, fmt.Errorf("tables file %s: weekdays must not be empty", path)
	}
	return tables, nil
}
