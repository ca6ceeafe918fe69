package favorites

import "time"

// SeedEntry is one favorite in the seed file.
//
//	- id: 25
//	  name: pikachu
//	- id: 1
//	  name: bulbasaur
//	  addedAt: 2024-03-09T13:05:07Z
type SeedEntry struct {
	ID      int       `yaml:"id"`
	Name    string    `yaml:"name"`
	AddedAt time.Time `yaml:"addedAt"`
}

// SeedFile is the root of the YAML document.
type SeedFile []SeedEntry
