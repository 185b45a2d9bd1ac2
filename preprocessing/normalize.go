package preprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ezoic/combustion/core/feature"
	scigoErrors "github.com/ezoic/combustion/pkg/errors"
)

// Oxide-to-element mass ratios derived from molar masses.
const (
	MgOToMg   = 0.603 // Mg / MgO
	Al2O3ToAl = 0.529 // Al2 / Al2O3
	SiO2ToSi  = 0.467 // Si / SiO2
)

// oxideRule derives an element from its oxide column, falling back to the
// elemental column.
type oxideRule struct {
	element feature.Element
	oxide   string
	ratio   float64
}

var oxideRules = []oxideRule{
	{feature.Mg, "mgo", MgOToMg},
	{feature.Al, "al2o3", Al2O3ToAl},
	{feature.Si, "sio2", SiO2ToSi},
}

// Normalize converts a raw CSV row into a canonical feature vector.
//
// Oxide columns (mgo, al2o3, sio2) take precedence over the elemental columns
// and are converted with the molar-mass ratios above. The remaining elements
// are copied from their lowercase symbol. Missing or non-numeric values become
// 0; extra columns are dropped. A "label" column is copied to Label without
// range checks.
//
// Normalize is pure and never fails.
//
// Example:
//
//	v := preprocessing.Normalize(feature.RawRow{"mgo": 10.0, "mg": 5.0, "ti": "1,5"})
//	v.Get(feature.Mg) // 6.03
//	v.Get(feature.Ti) // 1.5
func Normalize(raw feature.RawRow) feature.Vector {
	row := lowerKeys(raw)
	var v feature.Vector

	converted := make(map[feature.Element]bool, len(oxideRules))
	for _, r := range oxideRules {
		converted[r.element] = true
		if val, ok := row[r.oxide]; ok {
			v.Values[r.element] = toNumber(val) * r.ratio
		} else {
			v.Values[r.element] = toNumber(row[elementKey(r.element)])
		}
	}

	for _, e := range feature.Elements() {
		if converted[e] {
			continue
		}
		v.Values[e] = toNumber(row[elementKey(e)])
	}

	if label, ok := row["label"]; ok {
		v = v.WithLabel(toNumber(label))
	}
	return v
}

// NormalizeAll normalizes every row, preserving order.
func NormalizeAll(rows []feature.RawRow) feature.Dataset {
	ds := make(feature.Dataset, len(rows))
	for i, row := range rows {
		ds[i] = Normalize(row)
	}
	return ds
}

// NormalizeStrict behaves like Normalize but rejects rows in which a tracked
// column is present with a non-numeric value.
func NormalizeStrict(raw feature.RawRow) (feature.Vector, error) {
	row := lowerKeys(raw)
	keys := []string{"label"}
	for _, r := range oxideRules {
		keys = append(keys, r.oxide)
	}
	for _, e := range feature.Elements() {
		keys = append(keys, elementKey(e))
	}
	for _, key := range keys {
		val, ok := row[key]
		if !ok {
			continue
		}
		if _, numeric := parseNumber(val); !numeric {
			return feature.Vector{}, scigoErrors.NewModelError(
				"NormalizeStrict",
				fmt.Sprintf("column %q has non-numeric value %v", key, val),
				scigoErrors.ErrMalformedRow,
			)
		}
	}
	return Normalize(row), nil
}

func elementKey(e feature.Element) string {
	return strings.ToLower(e.String())
}

// lowerKeys returns a copy of raw keyed by trimmed, lowercased column names.
// When several columns fold to the same name, a column already written in
// that form wins; otherwise the lexicographically smallest original name wins.
func lowerKeys(raw feature.RawRow) feature.RawRow {
	out := make(feature.RawRow, len(raw))
	source := make(map[string]string, len(raw))
	for k, val := range raw {
		folded := strings.ToLower(strings.TrimSpace(k))
		if prev, seen := source[folded]; seen && !foldWins(k, prev, folded) {
			continue
		}
		out[folded] = val
		source[folded] = k
	}
	return out
}

// foldWins reports whether column k takes precedence over prev; both fold to folded.
func foldWins(k, prev, folded string) bool {
	if (k == folded) != (prev == folded) {
		return k == folded
	}
	return k < prev
}

func toNumber(val any) float64 {
	x, _ := parseNumber(val)
	return x
}

// parseNumber coerces val to a finite float. ok is false when val is absent,
// non-numeric or not finite; x is 0 in that case.
func parseNumber(val any) (x float64, ok bool) {
	switch n := val.(type) {
	case nil:
		return 0, false
	case float64:
		x = n
	case float32:
		x = float64(n)
	case int:
		x = float64(n)
	case int64:
		x = float64(n)
	case int32:
		x = float64(n)
	case uint:
		x = float64(n)
	case uint64:
		x = float64(n)
	case uint32:
		x = float64(n)
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		if err != nil {
			return 0, false
		}
		x = f
	default:
		return 0, false
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}
	return x, true
}
