package manifest

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/sjson"
)

var errNotObject = errors.New("expected a JSON object")

// SetPath sets the value at a dotted key path of the JSON object in data
// and returns the edited bytes. An existing value is replaced where it
// stands; a missing key is appended to its object, creating objects along
// the path. Comments and trailing commas are blanked before editing.
func SetPath(data []byte, path string, value any) ([]byte, error) {
	if path == "" {
		return nil, errors.New("empty key path")
	}

	clean := jsonc.ToJSON(data)
	if !gjson.ValidBytes(clean) {
		return nil, errors.New("invalid JSON")
	}
	if !gjson.ParseBytes(clean).IsObject() {
		return nil, errNotObject
	}

	out, err := sjson.SetBytes(clean, path, value)
	if err != nil {
		return nil, fmt.Errorf("setting %s: %w", path, err)
	}

	// Appending a key drops whatever followed the closing brace.
	if bytes.HasSuffix(data, []byte("\n")) && !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	return out, nil
}
