// Package file provides file-based configuration loading.
// Settings are read from a TOML file and feed the flag defaults of the
// command layer; the file is never written by the tool.
package file
