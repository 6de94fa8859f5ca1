// Package config loads the optional TOML configuration file layered
// under CLI flags: a convenience for setting worker count and digest
// algorithm without a long flag line.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// File is the shape of an optional --config TOML file. Every field is
// optional; a zero value means "let the flag or built-in default
// decide".
type File struct {
	Workers   int    `toml:"workers"`
	Algorithm string `toml:"algorithm"`
	Verbose   bool   `toml:"verbose"`
}

// Load reads and decodes path. An empty path is not an error; it
// returns a zero File, meaning "no config file given".
func Load(path string) (File, error) {
	var f File
	if path == "" {
		return f, nil
	}
	if _, err := os.Stat(path); err != nil {
		return f, fmt.Errorf("config: %w", err)
	}
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return f, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return f, nil
}
