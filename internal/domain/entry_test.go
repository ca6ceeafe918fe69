package domain

import (
	"errors"
	"testing"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want int
	}{
		{name: "trailing slash", url: "https://x/pokemon/25/", want: 25},
		{name: "no trailing slash", url: "https://x/pokemon/25", want: 25},
		{name: "type url without digits", url: "https://x/type/fire/", want: 0},
		{name: "empty", url: "", want: 0},
		{name: "only slash", url: "/", want: 0},
		{name: "bare digits", url: "151", want: 151},
		{name: "digits not trailing", url: "https://x/pokemon/25/forms", want: 0},
		{name: "double trailing slash", url: "https://x/pokemon/25//", want: 0},
		{name: "overflow", url: "https://x/pokemon/99999999999999999999999/", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractID(tt.url); got != tt.want {
				t.Errorf("ExtractID(%q) = %d, want %d", tt.url, got, tt.want)
			}
		})
	}
}

func TestCanonicalURLRoundTrip(t *testing.T) {
	for _, id := range []int{1, 25, 1025} {
		if got := ExtractID(CanonicalURL(id)); got != id {
			t.Errorf("ExtractID(CanonicalURL(%d)) = %d", id, got)
		}
	}
}

func TestParseEntryID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "25", want: 25},
		{raw: " 7 ", want: 7},
		{raw: "0", wantErr: true},
		{raw: "-3", wantErr: true},
		{raw: "pikachu", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseEntryID(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedID) {
					t.Fatalf("ParseEntryID(%q) error = %v, want ErrMalformedID", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEntryID(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseEntryID(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"pikachu": "Pikachu",
		"mr-mime": "Mr Mime",
		"":        "",
	}
	for in, want := range tests {
		if got := DisplayName(in); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}
