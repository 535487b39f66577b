package config

import (
	"path/filepath"
)

// CfgPath is a file path from the config. Relative paths are relative to
// the directory of the config file, not the working directory.
type CfgPath string

func (c CfgPath) resolve(base string) CfgPath {
	if c == "" || filepath.IsAbs(string(c)) {
		return c
	}
	return CfgPath(filepath.Join(base, string(c)))
}
