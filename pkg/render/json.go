package render

import (
	"encoding/json"

	"github.com/matzehuels/chord2svg/pkg/layout"
)

// RenderJSON encodes l as indented JSON with a trailing newline.
func RenderJSON(l layout.Layout) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
