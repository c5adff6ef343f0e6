package palette

import "testing"

func TestCategory10_ReturnsCopy(t *testing.T) {
	a := Category10()
	if len(a) != 10 || a[0] != "#1f77b4" {
		t.Fatalf("Category10 = %v, want ten colors starting with #1f77b4", a)
	}
	a[0] = "#000000"
	if Category10()[0] != "#1f77b4" {
		t.Fatalf("Category10 should not share its backing array")
	}
}

func TestIsName(t *testing.T) {
	for _, name := range []string{"red", "DeepSkyBlue", "SteelBlue"} {
		if !IsName(name) {
			t.Fatalf("IsName(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"", "ultraviolet", "#ff0000", " red"} {
		if IsName(name) {
			t.Fatalf("IsName(%q) = true, want false", name)
		}
	}
}

func TestHex(t *testing.T) {
	tests := map[string]string{
		"red":         "#ff0000",
		"DeepSkyBlue": "#00bfff",
		"#1F77B4":     "#1f77b4",
	}
	for in, want := range tests {
		got, ok := Hex(in)
		if !ok || got != want {
			t.Fatalf("Hex(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	for _, in := range []string{"", "nope", "#12"} {
		if got, ok := Hex(in); ok {
			t.Fatalf("Hex(%q) = %q, want failure", in, got)
		}
	}
}
