package numlit

import "testing"

func TestParseAcceptsValidNumbers(t *testing.T) {
	cases := []struct {
		in      string
		isInt   bool
		intVal  int64
		floatVal float64
	}{
		{"0", true, 0, 0},
		{"-0", true, 0, 0},
		{"42", true, 42, 0},
		{"-42", true, -42, 0},
		{"3.14", false, 0, 3.14},
		{"-3.14", false, 0, -3.14},
		{"1e10", false, 0, 1e10},
		{"1E+10", false, 0, 1e10},
		{"1.5e-3", false, 0, 1.5e-3},
	}
	for _, c := range cases {
		got, ok := Parse([]byte(c.in))
		if !ok {
			t.Errorf("Parse(%q) not ok", c.in)
			continue
		}
		if got.IsInt != c.isInt {
			t.Errorf("Parse(%q).IsInt = %v, want %v", c.in, got.IsInt, c.isInt)
		}
		if c.isInt && got.Int != c.intVal {
			t.Errorf("Parse(%q).Int = %d, want %d", c.in, got.Int, c.intVal)
		}
		if !c.isInt && got.Float != c.floatVal {
			t.Errorf("Parse(%q).Float = %v, want %v", c.in, got.Float, c.floatVal)
		}
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := []string{
		"", "-", "+1", "1.", ".1", "1e", "1e+", "abc", "1 ", " 1", "1.2.3", "--1",
	}
	for _, in := range cases {
		if _, ok := Parse([]byte(in)); ok {
			t.Errorf("Parse(%q) unexpectedly ok", in)
		}
	}
}

func TestParseFallsBackToFloatOnOverflow(t *testing.T) {
	got, ok := Parse([]byte("123456789012345678901234567890"))
	if !ok {
		t.Fatal("Parse of overflowing integer literal not ok")
	}
	if got.IsInt {
		t.Fatal("expected float fallback for overflowing integer literal")
	}
}

func TestLooksLikeNumber(t *testing.T) {
	if !LooksLikeNumber("42") {
		t.Error("LooksLikeNumber(42) = false")
	}
	if LooksLikeNumber("42abc") {
		t.Error("LooksLikeNumber(42abc) = true")
	}
}
