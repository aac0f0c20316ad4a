package mcpserver

import (
	"encoding/json"
	"fmt"

	"acad-mcp/internal/domain"
)

// parseJSON parses a JSON string into the target type.
func parseJSON(data string, target any) error {
	return json.Unmarshal([]byte(data), target)
}

// marshalJSON serializes a value to JSON bytes.
func marshalJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

// parsePoints decodes a points argument that may come as a string or raw JSON
// array of [x, y] pairs. A null coordinate is an error, not zero.
func parsePoints(raw any) ([]domain.Point, error) {
	if raw == nil {
		return nil, fmt.Errorf("points is required")
	}
	var pairs [][]*float64
	switch v := raw.(type) {
	case string:
		if err := parseJSON(v, &pairs); err != nil {
			return nil, fmt.Errorf("invalid points: %w", err)
		}
	default:
		b, err := marshalJSON(v)
		if err != nil {
			return nil, fmt.Errorf("invalid points: %w", err)
		}
		if err := parseJSON(string(b), &pairs); err != nil {
			return nil, fmt.Errorf("invalid points: %w", err)
		}
	}

	pts := make([]domain.Point, 0, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("invalid points: point %d has %d coordinates, want 2", i, len(p))
		}
		for j, c := range p {
			if c == nil {
				return nil, fmt.Errorf("invalid points: point %d coordinate %d is null", i, j)
			}
		}
		pts = append(pts, domain.Point{X: *p[0], Y: *p[1]})
	}
	return pts, nil
}
