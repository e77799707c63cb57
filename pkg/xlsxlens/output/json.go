// Package output serializes inspection results.
package output

import "encoding/json"

// ToJSON serializes a value to JSON, optionally indented.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
