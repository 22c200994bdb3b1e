package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/piwi3910/palletpack/internal/model"
)

// shapePattern matches "WxH" with optional "label=" prefix and ":qty" suffix.
// Accepted separators between width and height are x, X, ×, * and -.
var shapePattern = regexp.MustCompile(`^(?:([^=]+)=)?\s*(\d+(?:\.\d+)?)\s*[×xX*-]\s*(\d+(?:\.\d+)?)\s*(?:[:@]\s*(\d+))?$`)

// ParseShapeList reads a free-text list such as "10x20, 15x15, 5*5" or
// "crate=12x8:3; 4x4". Items are separated by commas, semicolons or newlines.
func ParseShapeList(text string) ImportResult {
	result := ImportResult{}

	items := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == '\r'
	})

	for i, raw := range items {
		item := strings.TrimSpace(raw)
		if item == "" || strings.HasPrefix(item, "#") {
			continue
		}

		rowLabel := fmt.Sprintf("Item %d", i+1)
		m := shapePattern.FindStringSubmatch(item)
		if m == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Cannot parse '%s'", rowLabel, item))
			continue
		}

		width, werr := parseCells(m[2])
		height, herr := parseCells(m[3])
		if werr != nil || herr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Size out of range in '%s'", rowLabel, item))
			continue
		}
		qty := 1
		if m[4] != "" {
			var err error
			if qty, err = strconv.Atoi(m[4]); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, m[4]))
				continue
			}
		}
		if width <= 0 || height <= 0 || qty <= 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Width, height, and quantity must be positive", rowLabel))
			continue
		}

		label := strings.TrimSpace(m[1])
		if label == "" {
			label = fmt.Sprintf("%dx%d", width, height)
		}
		result.Shapes = append(result.Shapes, model.ShapeRequest{
			Label:    label,
			Width:    width,
			Height:   height,
			Quantity: qty,
		})
	}

	if len(result.Shapes) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No shapes found")
	}
	return result
}
