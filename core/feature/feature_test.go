package feature_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezoic/combustion/core/feature"
)

func TestElementsOrderAndNames(t *testing.T) {
	want := []string{"Mg", "Al", "Si", "P", "S", "Cl", "K", "Ca", "Ti", "V", "Cr", "Mn", "Fe", "Ni", "Cu", "Zn"}
	elems := feature.Elements()
	require.Len(t, elems, feature.NumElements)
	for i, e := range elems {
		assert.Equal(t, want[i], e.String())
		got, ok := feature.Lookup(want[i])
		assert.True(t, ok)
		assert.Equal(t, e, got)
	}
	_, ok := feature.Lookup("ti")
	assert.False(t, ok, "lookup is exact")
}

func TestVectorJSON(t *testing.T) {
	var v feature.Vector
	v.Values[feature.Ti] = 2.5
	v = v.WithLabel(1)

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var m map[string]float64
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Len(t, m, feature.NumElements+1)
	assert.Equal(t, 2.5, m["Ti"])
	assert.Equal(t, 0.0, m["Zn"])
	assert.Equal(t, 1.0, m[feature.LabelKey])

	var back feature.Vector
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, v.Values, back.Values)
	require.True(t, back.HasLabel())
	assert.Equal(t, 1.0, *back.Label)
}

func TestUnlabeledVectorOmitsLabel(t *testing.T) {
	var v feature.Vector
	m := v.Map()
	assert.Len(t, m, feature.NumElements)
	_, ok := m[feature.LabelKey]
	assert.False(t, ok)
}

func TestDatasetHelpers(t *testing.T) {
	row := func(ti, label float64) feature.Vector {
		var v feature.Vector
		v.Values[feature.Ti] = ti
		return v.WithLabel(label)
	}
	ds := feature.Dataset{row(1, 1), row(2, 0), row(3, 1)}

	assert.InDelta(t, 2.0, ds.Mean(feature.Ti), 1e-12)
	assert.Equal(t, 0.0, ds.Mean(feature.Ca))
	assert.True(t, ds.Labeled())
	assert.Equal(t, 2, ds.CountLabel(1))

	X := ds.Matrix()
	r, c := X.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, feature.NumElements, c)
	assert.Equal(t, 3.0, X.At(2, int(feature.Ti)))

	y := ds.Labels()
	assert.Equal(t, []float64{1, 0, 1}, y.RawVector().Data)

	assert.True(t, math.IsNaN(feature.Dataset{}.Mean(feature.Ti)))
	assert.Nil(t, feature.Dataset{}.Matrix())
	assert.False(t, feature.Dataset{}.Labeled())
}

func TestElementText(t *testing.T) {
	data, err := json.Marshal(map[string]feature.Element{"e": feature.Fe})
	require.NoError(t, err)
	assert.JSONEq(t, `{"e":"Fe"}`, string(data))

	var e feature.Element
	require.NoError(t, e.UnmarshalText([]byte("Cu")))
	assert.Equal(t, feature.Cu, e)
	assert.Error(t, e.UnmarshalText([]byte("Xx")))
}
