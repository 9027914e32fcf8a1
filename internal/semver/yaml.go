package semver

import "gopkg.in/yaml.v3"

// UnmarshalYAML implements yaml.Unmarshaler for IncrementKind.
func (k *IncrementKind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseIncrementKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for IncrementKind.
func (k IncrementKind) MarshalYAML() (any, error) {
	return k.String(), nil
}
