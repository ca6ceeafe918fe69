package domain

import (
	"fmt"
	"strings"
)

// Pokemon is the detailed catalog entry shown on a detail page.
type Pokemon struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Height         int           `json:"height"` // decimetres
	Weight         int           `json:"weight"` // hectograms
	BaseExperience int           `json:"base_experience"`
	Sprites        Sprites       `json:"sprites"`
	Types          []TypeSlot    `json:"types"`
	Stats          []StatValue   `json:"stats"`
	Abilities      []AbilitySlot `json:"abilities"`
}

type Sprites struct {
	FrontDefault string       `json:"front_default"`
	FrontShiny   string       `json:"front_shiny"`
	Other        OtherSprites `json:"other"`
}

type OtherSprites struct {
	OfficialArtwork struct {
		FrontDefault string `json:"front_default"`
	} `json:"official-artwork"`
}

type TypeSlot struct {
	Slot int      `json:"slot"`
	Type EntryRef `json:"type"`
}

type StatValue struct {
	BaseStat int      `json:"base_stat"`
	Effort   int      `json:"effort"`
	Stat     EntryRef `json:"stat"`
}

type AbilitySlot struct {
	Ability  EntryRef `json:"ability"`
	IsHidden bool     `json:"is_hidden"`
	Slot     int      `json:"slot"`
}

// Number formats the id the way the catalog cards show it (#025).
func (p Pokemon) Number() string {
	return fmt.Sprintf("#%03d", p.ID)
}

// HeightMeters converts the catalog's decimetres.
func (p Pokemon) HeightMeters() float64 {
	return float64(p.Height) / 10
}

// WeightKilograms converts the catalog's hectograms.
func (p Pokemon) WeightKilograms() float64 {
	return float64(p.Weight) / 10
}

// Artwork returns the best available image URL.
func (p Pokemon) Artwork() string {
	if art := p.Sprites.Other.OfficialArtwork.FrontDefault; art != "" {
		return art
	}
	return p.Sprites.FrontDefault
}

// TypeNames returns type names ordered by slot as listed by the catalog.
func (p Pokemon) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		names = append(names, t.Type.Name)
	}
	return names
}

// StatTotal sums base stats.
func (p Pokemon) StatTotal() int {
	total := 0
	for _, s := range p.Stats {
		total += s.BaseStat
	}
	return total
}

// DisplayName capitalizes a catalog slug ("mr-mime" -> "Mr Mime").
func DisplayName(slug string) string {
	parts := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == ' ' })
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
