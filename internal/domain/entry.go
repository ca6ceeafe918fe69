package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// CatalogBaseURL is the public catalog the canonical entry URLs point at.
const CatalogBaseURL = "https://pokeapi.co/api/v2"

// EntryRef is the lightweight reference the catalog returns in every listing.
// The numeric identifier lives in the final path segment of URL.
type EntryRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ID returns the identifier encoded in the reference URL (0 if absent).
func (e EntryRef) ID() int {
	return ExtractID(e.URL)
}

// ExtractID returns the trailing run of digits of rawURL, ignoring one
// optional trailing slash.
// Examples:
//   - "https://x/pokemon/25/" -> 25
//   - "https://x/pokemon/25"  -> 25
//   - "https://x/type/fire/"  -> 0
func ExtractID(rawURL string) int {
	s := strings.TrimSuffix(rawURL, "/")

	end := len(s)
	start := end
	for start > 0 && s[start-1] >= '0' && s[start-1] <= '9' {
		start--
	}
	if start == end {
		return 0
	}

	id, err := strconv.Atoi(s[start:end])
	if err != nil {
		// overflow on absurdly long digit runs
		return 0
	}
	return id
}

// CanonicalURL synthesizes the catalog URL for an entry id.
func CanonicalURL(id int) string {
	return fmt.Sprintf("%s/pokemon/%d/", CatalogBaseURL, id)
}
