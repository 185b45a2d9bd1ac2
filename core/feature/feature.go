// Package feature defines the canonical feature vector used by combustion.
//
// A material sample is described by the mass fractions of sixteen tracked
// elements. Raw CSV rows (RawRow) carry arbitrary, inconsistently named
// columns; preprocessing.Normalize turns them into a Vector in which every
// element is always present.
package feature

import (
	"encoding/json"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Element indexes one tracked chemical element.
type Element int

// Tracked elements in canonical order.
const (
	Mg Element = iota
	Al
	Si
	P
	S
	Cl
	K
	Ca
	Ti
	V
	Cr
	Mn
	Fe
	Ni
	Cu
	Zn

	// NumElements is the length of a feature vector.
	NumElements int = iota
)

var elementNames = [NumElements]string{
	"Mg", "Al", "Si", "P", "S", "Cl", "K", "Ca",
	"Ti", "V", "Cr", "Mn", "Fe", "Ni", "Cu", "Zn",
}

// String returns the element symbol, e.g. "Ti".
func (e Element) String() string {
	if e < 0 || int(e) >= NumElements {
		return "Element(?)"
	}
	return elementNames[e]
}

// MarshalText encodes the element as its symbol.
func (e Element) MarshalText() ([]byte, error) {
	if e < 0 || int(e) >= NumElements {
		return nil, fmt.Errorf("feature: invalid element %d", int(e))
	}
	return []byte(elementNames[e]), nil
}

// UnmarshalText decodes an element symbol.
func (e *Element) UnmarshalText(text []byte) error {
	el, ok := Lookup(string(text))
	if !ok {
		return fmt.Errorf("feature: unknown element %q", text)
	}
	*e = el
	return nil
}

// Elements returns all tracked elements in canonical order.
func Elements() []Element {
	out := make([]Element, NumElements)
	for i := range out {
		out[i] = Element(i)
	}
	return out
}

// Lookup returns the element with the given symbol. Matching is exact.
func Lookup(symbol string) (Element, bool) {
	for i, name := range elementNames {
		if name == symbol {
			return Element(i), true
		}
	}
	return 0, false
}

// LabelKey is the canonical name of the class label.
const LabelKey = "Label"

// RawRow is one parsed CSV row: lowercase column name to string or number.
type RawRow map[string]any

// Vector is a normalized sample. The zero value has every element at 0 and no label.
type Vector struct {
	Values [NumElements]float64
	Label  *float64
}

// Get returns the value of element e.
func (v *Vector) Get(e Element) float64 {
	return v.Values[e]
}

// HasLabel reports whether the vector came from a labeled row.
func (v *Vector) HasLabel() bool {
	return v.Label != nil
}

// WithLabel returns a copy of v carrying label.
func (v Vector) WithLabel(label float64) Vector {
	v.Label = &label
	return v
}

// Map returns the vector keyed by element symbol, plus "Label" when present.
func (v *Vector) Map() map[string]float64 {
	out := make(map[string]float64, NumElements+1)
	for i, name := range elementNames {
		out[name] = v.Values[i]
	}
	if v.Label != nil {
		out[LabelKey] = *v.Label
	}
	return out
}

// MarshalJSON encodes the vector as an object keyed by element symbol.
func (v Vector) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Map())
}

// UnmarshalJSON decodes an object produced by MarshalJSON. Unknown keys are ignored.
func (v *Vector) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*v = Vector{}
	for key, val := range m {
		if e, ok := Lookup(key); ok {
			v.Values[e] = val
		}
	}
	if label, ok := m[LabelKey]; ok {
		v.Label = &label
	}
	return nil
}

// Dataset is an ordered sequence of normalized samples.
type Dataset []Vector

// Mean returns the mean of element e over all finite values, or NaN for an
// empty dataset.
func (d Dataset) Mean(e Element) float64 {
	xs := make([]float64, 0, len(d))
	for i := range d {
		if x := d[i].Values[e]; !math.IsNaN(x) && !math.IsInf(x, 0) {
			xs = append(xs, x)
		}
	}
	if len(xs) == 0 {
		return math.NaN()
	}
	return stat.Mean(xs, nil)
}

// Labeled reports whether every sample carries a label.
func (d Dataset) Labeled() bool {
	for i := range d {
		if d[i].Label == nil {
			return false
		}
	}
	return len(d) > 0
}

// CountLabel returns the number of samples whose label equals class.
func (d Dataset) CountLabel(class float64) int {
	n := 0
	for i := range d {
		if d[i].Label != nil && *d[i].Label == class {
			n++
		}
	}
	return n
}

// Matrix returns the samples as an n×NumElements matrix, or nil when empty.
func (d Dataset) Matrix() *mat.Dense {
	if len(d) == 0 {
		return nil
	}
	data := make([]float64, 0, len(d)*NumElements)
	for i := range d {
		data = append(data, d[i].Values[:]...)
	}
	return mat.NewDense(len(d), NumElements, data)
}

// Labels returns the labels as a vector; unlabeled samples contribute 0.
// It returns nil when the dataset is empty.
func (d Dataset) Labels() *mat.VecDense {
	if len(d) == 0 {
		return nil
	}
	y := mat.NewVecDense(len(d), nil)
	for i := range d {
		if d[i].Label != nil {
			y.SetVec(i, *d[i].Label)
		}
	}
	return y
}
