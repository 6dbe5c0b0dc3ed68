// Package config loads the two configuration surfaces: the JSON
// rearrangement mapping file and the TOML tool defaults file.
package config

import (
	"encoding/json"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/arthur-debert/p8prep/pkg/errors"
	"github.com/arthur-debert/p8prep/pkg/rearrange"
)

// LoadRearrangeConfig reads and validates a rearrangement mapping file.
// The file is JSON with comments and trailing commas tolerated.
func LoadRearrangeConfig(path string) ([]rearrange.Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "reading config file %s", path).
			WithDetail("path", path)
	}

	mappings, err := ParseRearrangeConfig(data)
	if err != nil {
		if prepErr, ok := err.(*errors.PrepError); ok {
			prepErr.WithDetail("path", path)
		}
		return nil, err
	}
	return mappings, nil
}

// ParseRearrangeConfig parses and structurally validates rearrangement
// config bytes. Every defect names the offending index: missing key,
// wrong type, empty string, or wrong container type.
func ParseRearrangeConfig(data []byte) ([]rearrange.Mapping, error) {
	var raw interface{}
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid JSON in config file")
	}

	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errors.New(errors.ErrConfigValid, "configuration must be an object")
	}

	rearrangeRaw, present := obj["rearrange"]
	if !present {
		return nil, errors.New(errors.ErrConfigValid, "configuration must contain 'rearrange' key")
	}

	list, ok := rearrangeRaw.([]interface{})
	if !ok {
		return nil, errors.New(errors.ErrConfigValid, "'rearrange' must be a list")
	}

	mappings := make([]rearrange.Mapping, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, errors.Newf(errors.ErrConfigValid,
				"mapping at index %d must be an object", i)
		}

		from, err := requireString(m, "from", i)
		if err != nil {
			return nil, err
		}
		to, err := requireString(m, "to", i)
		if err != nil {
			return nil, err
		}

		mappings = append(mappings, rearrange.Mapping{From: from, To: to})
	}

	return mappings, nil
}

func requireString(m map[string]interface{}, key string, index int) (string, error) {
	raw, present := m[key]
	if !present {
		return "", errors.Newf(errors.ErrConfigValid,
			"mapping at index %d missing '%s' key", index, key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", errors.Newf(errors.ErrConfigValid,
			"mapping at index %d: '%s' must be a string", index, key)
	}
	if s == "" {
		return "", errors.Newf(errors.ErrConfigValid,
			"mapping at index %d: '%s' must not be empty", index, key)
	}
	return s, nil
}
