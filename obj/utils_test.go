package obj

import (
	"math"
	"testing"
)

func TestCanonicalFileName(t *testing.T) {
	for _, c := range []struct{ in, out string }{
		{"tex.png", "tex.png"},
		{"a b:c*?.png", "a_b_c__.png"},
		{`dir\tex.png`, "dir_tex.png"},
		{"dir/tex.png", "dir_tex.png"},
		{"ＡＢＣ.png", "ABC.png"},
		{"テクスチャ.png", "テクスチャ.png"},
		{"a\tb", "a_b"},
	} {
		if got := CanonicalFileName(c.in); got != c.out {
			t.Errorf("CanonicalFileName(%q) = %q; expected %q", c.in, got, c.out)
		}
	}
}

func TestMaterialName(t *testing.T) {
	for _, c := range []struct{ in, out string }{
		{"#mat", "mat"},
		{"★mat", "mat"},
		{"", ""},
	} {
		if got := materialName(c.in); got != c.out {
			t.Errorf("materialName(%q) = %q; expected %q", c.in, got, c.out)
		}
	}
}

func TestFtoa(t *testing.T) {
	for _, c := range []struct {
		in  float32
		out string
	}{
		{0, "0"},
		{float32(math.Copysign(0, -1)), "0"},
		{-1e-9, "0"},
		{0.5, "0.5"},
		{0.1, "0.1"},
		{1.25e-4, "0.000125"},
		{-2, "-2"},
		{100, "100"},
		{10000000, "10000000"},
	} {
		if got := ftoa(c.in); got != c.out {
			t.Errorf("ftoa(%v) = %q; expected %q", c.in, got, c.out)
		}
	}
}
