package main

import (
	"fmt"
	"strings"

	"github.com/gogpu/svgfx"
)

// parseAttribute maps an attribute name to its svgfx.Attributes bit.
func parseAttribute(s string) (svgfx.Attributes, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "opacity":
		return svgfx.Opacity, nil
	case "filter":
		return svgfx.Filter, nil
	case "clip-path", "clippath", "clip":
		return svgfx.ClipPath, nil
	case "mask":
		return svgfx.Mask, nil
	}
	return 0, fmt.Errorf("unknown attribute %q", s)
}
