package workflows

import (
	"fmt"
	"path/filepath"
	"strings"

	kerrors "github.com/pmanager/pm/internal/errors"
	"github.com/pmanager/pm/internal/store"
)

// Format is an import/export payload encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a user supplied name to a Format. Empty means unset.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return "", nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", kerrors.ErrUnsupportedFormat, name)
	}
}

// formatFor returns f, or the format implied by the extension of path.
func formatFor(f Format, path string) Format {
	if f != "" {
		return f
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func decodeStore(data []byte, f Format) (*store.Store, error) {
	if f == FormatYAML {
		s, err := store.ParseYAML(data)
		if err != nil {
			return nil, err
		}
		if err := store.Validate(s); err != nil {
			return nil, err
		}
		return s, nil
	}
	return store.ParseStrict(data)
}

func encodeStore(s *store.Store, f Format) ([]byte, error) {
	if f == FormatYAML {
		return store.MarshalYAML(s)
	}
	return store.MarshalIndent(s)
}
