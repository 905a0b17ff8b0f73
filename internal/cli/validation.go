package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// parseServiceID parses a positional service ID argument.
func parseServiceID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid service ID '%s'. Expected a positive integer, e.g. 1", raw)
	}
	return id, nil
}

// parseMetadata turns repeated key=value flags into a map.
func parseMetadata(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	metadata := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid metadata '%s'. Expected key=value", pair)
		}
		metadata[strings.TrimSpace(key)] = value
	}
	return metadata, nil
}
