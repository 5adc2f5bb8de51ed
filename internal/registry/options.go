package registry

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// StringOption extracts a string-typed option value. Absent keys return
// ok == false; present values of the wrong type are an error.
func StringOption(options map[string]cty.Value, key string) (string, bool, error) {
	v, ok := options[key]
	if !ok || v.IsNull() {
		return "", false, nil
	}
	if v.Type() != cty.String {
		return "", false, fmt.Errorf("option %q: expected string, got %s", key, v.Type().FriendlyName())
	}
	return v.AsString(), true, nil
}

// StringListOption extracts a list-or-tuple-of-strings option value. Absent
// keys return ok == false.
func StringListOption(options map[string]cty.Value, key string) ([]string, bool, error) {
	v, ok := options[key]
	if !ok || v.IsNull() {
		return nil, false, nil
	}
	if !v.CanIterateElements() {
		return nil, false, fmt.Errorf("option %q: expected list of strings, got %s", key, v.Type().FriendlyName())
	}
	var out []string
	for it := v.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		if ev.Type() != cty.String {
			return nil, false, fmt.Errorf("option %q: expected string element, got %s", key, ev.Type().FriendlyName())
		}
		out = append(out, ev.AsString())
	}
	return out, true, nil
}
