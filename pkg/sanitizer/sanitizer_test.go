package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Center Court  ", "Center Court"},
		{"Center\t\tCourt", "Center Court"},
		{"Center \n Court", "Center Court"},
		{"", ""},
		{"   ", ""},
		{"single", "single"},
	}

	for _, tt := range tests {
		if got := TrimAndNormalize(tt.input); got != tt.want {
			t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeSport(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Badminton", "badminton"},
		{"  TABLE  TENNIS ", "table tennis"},
		{"padel", "padel"},
	}

	for _, tt := range tests {
		if got := NormalizeSport(tt.input); got != tt.want {
			t.Errorf("NormalizeSport(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
