package tinymce

import (
	"github.com/goliatone/go-formgen-tinymce/pkg/config"
)

// LoadConfig reads editor definitions from a YAML or JSON file.
func LoadConfig(path string) (*config.Document, error) {
	return config.LoadFile(path)
}

// ParseConfig decodes editor definitions from raw bytes.
func ParseConfig(data []byte, source string) (*config.Document, error) {
	return config.Parse(data, source)
}
