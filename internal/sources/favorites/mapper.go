package favorites

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/pokedex/internal/domain"
)

// Map converts seed entries to favorite records. Entries without a
// positive id are reported in skipped; later duplicates of an id are
// dropped. Insertion order follows the file.
func Map(seed SeedFile) (records []domain.FavoriteRecord, skipped []string) {
	seen := make(map[int]struct{}, len(seed))
	records = make([]domain.FavoriteRecord, 0, len(seed))

	for i, e := range seed {
		if e.ID < 1 {
			skipped = append(skipped, fmt.Sprintf("entry %d (%q): id must be a positive integer", i+1, e.Name))
			continue
		}
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}

		records = append(records, domain.FavoriteRecord{
			ID:      e.ID,
			Name:    strings.ToLower(strings.TrimSpace(e.Name)),
			AddedAt: e.AddedAt,
		})
	}
	return records, skipped
}
