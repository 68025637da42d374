package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// HexColor is a linear RGBA color written as "#rrggbb" or "#rrggbbaa" in YAML.
type HexColor [4]float32

func (c *HexColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (float32, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return float32(v) / 255, err
	}

	var out HexColor
	out[3] = 1
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		out[i] = v
	}
	*c = out
	return nil
}

func (c HexColor) MarshalYAML() (any, error) {
	b := func(v float32) uint8 {
		return uint8(min(max(v, 0), 1)*255 + 0.5)
	}
	if c[3] >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", b(c[0]), b(c[1]), b(c[2])), nil
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", b(c[0]), b(c[1]), b(c[2]), b(c[3])), nil
}
