package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Scheme files are JSON:
//
//	{
//	  "name": "midnight",
//	  "groups": {
//	    "Comment": {"fg": "#565f89"},
//	    "Search":  {"fg": "#e0af68"}
//	  }
//	}

// LoadFile reads a scheme from a JSON file and validates it.
func LoadFile(path string) (Scheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scheme{}, fmt.Errorf("reading scheme file: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes a scheme from JSON bytes. The source name appears in error
// messages only.
func Parse(data []byte, source string) (Scheme, error) {
	if !gjson.ValidBytes(data) {
		return Scheme{}, fmt.Errorf("%s: not valid JSON", source)
	}

	name := gjson.GetBytes(data, "name").String()
	if name == "" {
		// Fall back to the file name without extension.
		base := filepath.Base(source)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	s := Scheme{Name: name, Groups: make(map[string]string)}
	gjson.GetBytes(data, "groups").ForEach(func(key, value gjson.Result) bool {
		fg := value.Get("fg").String()
		if fg == "" {
			// Allow the shorthand "Group": "#rrggbb".
			fg = value.String()
		}
		if fg != "" {
			s.Groups[key.String()] = fg
		}
		return true
	})

	if err := s.Validate(); err != nil {
		return Scheme{}, fmt.Errorf("%s: %w", source, err)
	}
	return s, nil
}

// Marshal encodes a scheme to JSON in the file format LoadFile reads.
func Marshal(s Scheme) ([]byte, error) {
	data := []byte("{}")
	data, err := sjson.SetBytes(data, "name", s.Name)
	if err != nil {
		return nil, err
	}
	for _, group := range s.GroupNames() {
		data, err = sjson.SetBytes(data, "groups."+group+".fg", s.Groups[group])
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

// WriteFile writes a scheme to a JSON file.
func WriteFile(path string, s Scheme) error {
	data, err := Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding scheme %q: %w", s.Name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing scheme file: %w", err)
	}
	return nil
}

// LoadDir loads every *.json scheme in a directory into the registry.
// Files that fail to parse are skipped and reported together.
func LoadDir(r *Registry, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading scheme dir: %w", err)
	}

	var failures []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		s, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			failures = append(failures, err.Error())
			continue
		}
		if err := r.Add(s); err != nil {
			failures = append(failures, err.Error())
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("loading schemes: %s", strings.Join(failures, "; "))
	}
	return nil
}
