package preprocessing_test

import (
	"errors"
	"math"
	"testing"

	"github.com/ezoic/combustion/core/feature"
	scigoErrors "github.com/ezoic/combustion/pkg/errors"
	"github.com/ezoic/combustion/preprocessing"
)

func TestNormalize_OxideConversion(t *testing.T) {
	tests := []struct {
		name    string
		row     feature.RawRow
		element feature.Element
		want    float64
	}{
		{"oxide wins over element", feature.RawRow{"mgo": 10.0, "mg": 5.0}, feature.Mg, 10 * 0.603},
		{"oxide only", feature.RawRow{"al2o3": 20.0}, feature.Al, 20 * 0.529},
		{"silica", feature.RawRow{"sio2": 50.0, "si": 1.0}, feature.Si, 50 * 0.467},
		{"element fallback", feature.RawRow{"mg": 5.0}, feature.Mg, 5},
		{"neither", feature.RawRow{"fe": 1.0}, feature.Al, 0},
		{"non-numeric oxide still wins", feature.RawRow{"mgo": "n/a", "mg": 5.0}, feature.Mg, 0},
		{"string oxide", feature.RawRow{"sio2": "10"}, feature.Si, 10 * 0.467},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := preprocessing.Normalize(tt.row)
			if got := v.Get(tt.element); math.Abs(got-tt.want) > epsilon {
				t.Errorf("%s: expected %f, got %f", tt.element, tt.want, got)
			}
		})
	}
}

func TestNormalize_DirectElements(t *testing.T) {
	row := feature.RawRow{
		"p": 0.1, "s": "0.2", "cl": 3, "k": float32(0.5), "ca": "1,25",
		"ti": 5.0, "v": int64(2), "cr": " 7 ", "mn": 0.0, "fe": 1.5,
		"ni": true, "cu": 0.01, "zn": 0.02,
	}
	want := map[feature.Element]float64{
		feature.P: 0.1, feature.S: 0.2, feature.Cl: 3, feature.K: 0.5, feature.Ca: 1.25,
		feature.Ti: 5, feature.V: 2, feature.Cr: 7, feature.Mn: 0, feature.Fe: 1.5,
		feature.Ni: 1, feature.Cu: 0.01, feature.Zn: 0.02,
	}

	v := preprocessing.Normalize(row)
	for e, expected := range want {
		if got := v.Get(e); math.Abs(got-expected) > 1e-6 {
			t.Errorf("%s: expected %f, got %f", e, expected, got)
		}
	}
}

func TestNormalize_GarbageBecomesZero(t *testing.T) {
	row := feature.RawRow{
		"ti": "abc", "ca": math.NaN(), "fe": math.Inf(1), "mg": nil,
		"zn": []int{1}, "cu": "",
	}
	v := preprocessing.Normalize(row)
	for _, e := range feature.Elements() {
		if got := v.Get(e); got != 0 {
			t.Errorf("%s: expected exactly 0, got %f", e, got)
		}
	}
}

func TestNormalize_AlwaysSixteenKeys(t *testing.T) {
	rows := []feature.RawRow{
		{},
		{"unknown": 1.0, "another": "x"},
		{"mgo": 1.0, "ti": 2.0, "label": 1},
	}
	for i, row := range rows {
		v := preprocessing.Normalize(row)
		m := v.Map()
		delete(m, feature.LabelKey)
		if len(m) != feature.NumElements {
			t.Errorf("row %d: expected %d keys, got %d", i, feature.NumElements, len(m))
		}
		if _, ok := m["unknown"]; ok {
			t.Errorf("row %d: unknown column leaked", i)
		}
	}
}

func TestNormalize_Label(t *testing.T) {
	v := preprocessing.Normalize(feature.RawRow{"label": 1.0})
	if !v.HasLabel() || *v.Label != 1 {
		t.Fatalf("expected label 1, got %v", v.Label)
	}

	// Out-of-range labels pass through unchanged.
	v = preprocessing.Normalize(feature.RawRow{"label": "7"})
	if !v.HasLabel() || *v.Label != 7 {
		t.Fatalf("expected label 7, got %v", v.Label)
	}

	v = preprocessing.Normalize(feature.RawRow{"ti": 1.0})
	if v.HasLabel() {
		t.Fatal("unexpected label")
	}
}

func TestNormalize_CaseInsensitiveKeys(t *testing.T) {
	v := preprocessing.Normalize(feature.RawRow{"MgO": 10.0, "Ti": 2.0, "Label": 0.0})
	if math.Abs(v.Get(feature.Mg)-6.03) > epsilon {
		t.Errorf("Mg: expected 6.03, got %f", v.Get(feature.Mg))
	}
	if v.Get(feature.Ti) != 2 {
		t.Errorf("Ti: expected 2, got %f", v.Get(feature.Ti))
	}
	if !v.HasLabel() {
		t.Error("expected label")
	}

	tests := []struct {
		name string
		row  feature.RawRow
		want float64
	}{
		{"padded key alone", feature.RawRow{" ti ": 5.0}, 5},
		{"padded key with uppercase neighbour", feature.RawRow{" ti": 5.0, "X": 1.0}, 5},
		{"lowercase beats mixed case", feature.RawRow{"Ti": 1.0, "ti": 5.0}, 5},
		{"lowercase beats padded", feature.RawRow{" ti": 1.0, "ti": 5.0}, 5},
		{"smallest original name among folded", feature.RawRow{"TI": 3.0, "Ti": 1.0}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := preprocessing.Normalize(tt.row)
			got := v.Get(feature.Ti)
			if got != tt.want {
				t.Errorf("Ti: expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNormalize_DuplicateKeysDeterministic(t *testing.T) {
	row := feature.RawRow{"Ti": 1.0, "ti": 5.0, "TI": 3.0, "MgO": 10.0, "mgo": 20.0}
	for i := 0; i < 200; i++ {
		v := preprocessing.Normalize(row)
		if v.Get(feature.Ti) != 5 {
			t.Fatalf("run %d: Ti expected 5, got %v", i, v.Get(feature.Ti))
		}
		if math.Abs(v.Get(feature.Mg)-20*preprocessing.MgOToMg) > epsilon {
			t.Fatalf("run %d: Mg expected %v, got %v", i, 20*preprocessing.MgOToMg, v.Get(feature.Mg))
		}
	}

	strict, err := preprocessing.NormalizeStrict(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strict.Get(feature.Ti) != 5 {
		t.Errorf("strict Ti: expected 5, got %v", strict.Get(feature.Ti))
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	row := feature.RawRow{"MgO": 10.0}
	preprocessing.Normalize(row)
	if _, ok := row["mgo"]; ok || len(row) != 1 {
		t.Errorf("input row was modified: %v", row)
	}
}

func TestNormalizeAll(t *testing.T) {
	ds := preprocessing.NormalizeAll([]feature.RawRow{{"ti": 1.0}, {"ti": 2.0}})
	if len(ds) != 2 || ds[0].Get(feature.Ti) != 1 || ds[1].Get(feature.Ti) != 2 {
		t.Errorf("unexpected dataset %+v", ds)
	}
}

func TestNormalizeStrict(t *testing.T) {
	if _, err := preprocessing.NormalizeStrict(feature.RawRow{"ti": "1.5", "comment": "text is fine"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := preprocessing.NormalizeStrict(feature.RawRow{"ti": "high"})
	if !errors.Is(err, scigoErrors.ErrMalformedRow) {
		t.Fatalf("expected ErrMalformedRow, got %v", err)
	}
}
