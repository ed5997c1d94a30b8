package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/matst80/slask-browse/pkg/types"
)

// RawRecord is one product-shaped object as delivered by a Loader.
// Fields may be missing or wrongly typed; normalization never fails.
type RawRecord = map[string]any

const (
	DefaultTitle = "Untitled"
	DefaultType  = "Unknown"
)

// Normalize coerces an arbitrary record into a well-typed Product.
func Normalize(raw RawRecord) types.Product {
	return types.Product{
		Title:       stringOr(raw["productTitle"], DefaultTitle),
		Price:       finiteNumberOrZero(raw["productPrice"]),
		Type:        stringOr(raw["productType"], DefaultType),
		Description: stringOr(raw["productDescription"], ""),
	}
}

func stringOr(v any, def string) string {
	switch value := v.(type) {
	case nil:
		return def
	case string:
		if value == "" {
			return def
		}
		return value
	default:
		return fmt.Sprint(value)
	}
}

func finiteNumberOrZero(v any) float64 {
	var value float64
	switch n := v.(type) {
	case float64:
		value = n
	case float32:
		value = float64(n)
	case int:
		value = float64(n)
	case int64:
		value = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		value = parsed
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		value = parsed
	default:
		return 0
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
