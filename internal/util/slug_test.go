package util

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Fone XYZ", "fone-xyz"},
		{"Eletrônicos", "eletronicos"},
		{"iPhone 15 Pro Max - Review Completo", "iphone-15-pro-max-review-completo"},
		{"Casa & Cozinha", "casa-cozinha"},
		{"  --Áudio!!  ", "audio"},
		{"", ""},
		{"***", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Setenv("RN_TEST_BOOL", "yes")
	if !ParseBoolEnv("RN_TEST_BOOL", false) {
		t.Error("expected yes to parse as true")
	}
	t.Setenv("RN_TEST_BOOL", "off")
	if ParseBoolEnv("RN_TEST_BOOL", true) {
		t.Error("expected off to parse as false")
	}
	t.Setenv("RN_TEST_BOOL", "banana")
	if !ParseBoolEnv("RN_TEST_BOOL", true) {
		t.Error("expected invalid value to fall back to default")
	}
	if ParseBoolEnv("RN_TEST_BOOL_UNSET", false) {
		t.Error("expected unset variable to use default")
	}
}
