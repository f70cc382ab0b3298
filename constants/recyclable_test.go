package constants

import "testing"

func TestCanonicalRecyclable(t *testing.T) {
	cases := []struct {
		in   string
		want Recyclable
		ok   bool
	}{
		{"Yes", RecyclableYes, true},
		{"  no ", RecyclableNo, true},
		{"conditional", RecyclableConditional, true},
		{"Not recyclable", RecyclableNo, true},
		{"depends", RecyclableConditional, true},
		{"", "", false},
		{"compost", "", false},
	}
	for _, tc := range cases {
		got, ok := CanonicalRecyclable(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("CanonicalRecyclable(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNormalizeFormat(t *testing.T) {
	if got := NormalizeFormat(".JPG"); got != "jpeg" {
		t.Fatalf("NormalizeFormat(.JPG) = %q", got)
	}
	if got := NormalizeFormat(" PNG "); got != "png" {
		t.Fatalf("NormalizeFormat(PNG) = %q", got)
	}
}
