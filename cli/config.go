package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/alecthomas/kong"
)

// configJSON loads the configuration file for [kong.Configuration].
//
// Keys may be spelled like the flags they set ("log-level") or with
// underscores ("log_level"). Kong's JSON resolver only looks up the latter,
// so hyphens are rewritten before the document is handed to it.
func configJSON(r io.Reader) (kong.Resolver, error) {
	var values map[string]any
	if err := json.NewDecoder(r).Decode(&values); err != nil {
		return nil, err
	}

	data, err := json.Marshal(underscoreKeys(values))
	if err != nil {
		return nil, err
	}

	return kong.JSON(bytes.NewReader(data))
}

// underscoreKeys replaces hyphens with underscores in the keys of m and of
// every object nested in it. When both spellings of a key are present, the
// underscore one is kept.
func underscoreKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))

	for key, value := range m {
		if sub, ok := value.(map[string]any); ok {
			value = underscoreKeys(sub)
		}

		name := strings.ReplaceAll(key, "-", "_")
		if _, dup := m[name]; dup && name != key {
			continue
		}

		out[name] = value
	}

	return out
}
