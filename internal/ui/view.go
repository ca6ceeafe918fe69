package ui

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/pokedex/internal/catalog"
	"github.com/MrSnakeDoc/pokedex/internal/domain"
)

func (a App) View() string {
	if a.screen == screenDetail {
		return a.detailView()
	}
	return a.listView()
}

func (a App) listView() string {
	var b strings.Builder

	b.WriteString(Title.Render("Pokédex"))
	for _, f := range a.filterBadges() {
		b.WriteString(FilterBadge.Render(f))
	}
	b.WriteString("\n\n")
	b.WriteString(a.search.View())
	b.WriteString("\n\n")

	if a.err != nil {
		b.WriteString(ErrorBar.Render(errorText(a.err) + " · press r to retry"))
		b.WriteString("\n\n")
	}

	switch {
	case a.loading && !a.listOK:
		b.WriteString(Muted.Render("Loading..."))
		b.WriteString("\n")
	case len(a.list.Items) == 0 && a.listOK:
		b.WriteString(Muted.Render(a.emptyText()))
		b.WriteString("\n")
	default:
		end := min(a.offset+a.rows(), len(a.list.Items))
		for i := a.offset; i < end; i++ {
			b.WriteString(a.row(i))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(a.statusBar())
	return b.String()
}

func (a App) row(i int) string {
	e := a.list.Items[i]
	star := "  "
	if a.list.IsFavorite(e.ID()) {
		star = Star.Render("★ ")
	}
	line := fmt.Sprintf("%s %s%s", Number.Render(fmt.Sprintf("#%03d", e.ID())), star, domain.DisplayName(e.Name))
	if i == a.cursor {
		return SelectedItem.Render("▸ " + line)
	}
	return NormalItem.Render("  " + line)
}

func (a App) filterBadges() []string {
	var out []string
	if a.state.Type != "" {
		out = append(out, "type: "+a.state.Type)
	}
	if a.state.Sort == domain.SortName {
		out = append(out, "sort: name")
	}
	if a.state.Favorites {
		out = append(out, "★ favorites")
	}
	if a.loading && a.listOK {
		out = append(out, "…")
	}
	return out
}

func (a App) emptyText() string {
	switch {
	case a.state.Favorites && !a.state.FiltersActive():
		return "No favorites yet. Press f on an entry to add it."
	case a.state.FiltersActive():
		return "No Pokémon match these filters."
	default:
		return "No Pokémon on this page."
	}
}

func (a App) statusBar() string {
	page := fmt.Sprintf("page %d/%d · %d entries · ★ %d",
		a.state.Page, max(a.list.PageCount, 1), a.list.TotalCount, a.list.FavoritesCount)

	hints := []struct{ key, text string }{
		{"/", "search"},
		{"t", "type"},
		{"s", "sort"},
		{"v", "favorites"},
		{"f", "star"},
		{"n/p", "page"},
		{"[/]", "history"},
		{"q", "quit"},
	}
	var parts []string
	for _, h := range hints {
		parts = append(parts, StatusBarKey.Render(h.key)+" "+StatusBarText.Render(h.text))
	}
	return StatusBar.Render(page) + "  " + strings.Join(parts, "  ")
}

func (a App) detailView() string {
	var b strings.Builder

	if a.notFound {
		b.WriteString(Title.Render("Pokédex"))
		b.WriteString("\n\n")
		b.WriteString(DetailPanel.Render("Pokémon not found."))
		b.WriteString("\n\n")
		b.WriteString(StatusBarKey.Render("esc") + " " + StatusBarText.Render("back"))
		return b.String()
	}

	p := a.detail.Pokemon
	title := "Pokédex"
	if p.ID != 0 {
		title = p.Number() + " " + domain.DisplayName(p.Name)
		if a.detail.Favorite {
			title += " ★"
		}
	}
	b.WriteString(Title.Render(title))
	b.WriteString("\n\n")

	if a.err != nil {
		b.WriteString(ErrorBar.Render(errorText(a.err) + " · press r to retry"))
		b.WriteString("\n\n")
	}

	switch {
	case a.loading:
		b.WriteString(Muted.Render("Loading..."))
		b.WriteString("\n")
	case p.ID != 0:
		b.WriteString(DetailPanel.Render(detailBody(p)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StatusBarKey.Render("esc") + " " + StatusBarText.Render("back") + "  " +
		StatusBarKey.Render("f") + " " + StatusBarText.Render("star") + "  " +
		StatusBarKey.Render("q") + " " + StatusBarText.Render("quit"))
	return b.String()
}

func detailBody(p domain.Pokemon) string {
	var b strings.Builder

	for _, t := range p.TypeNames() {
		b.WriteString(TypeBadge.Render(t))
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Height  %.1f m\n", p.HeightMeters())
	fmt.Fprintf(&b, "Weight  %.1f kg\n", p.WeightKilograms())
	fmt.Fprintf(&b, "Base XP %d\n", p.BaseExperience)

	if len(p.Abilities) > 0 {
		names := make([]string, 0, len(p.Abilities))
		for _, ab := range p.Abilities {
			n := domain.DisplayName(ab.Ability.Name)
			if ab.IsHidden {
				n += " (hidden)"
			}
			names = append(names, n)
		}
		b.WriteString("\nAbilities  " + strings.Join(names, ", ") + "\n")
	}

	if len(p.Stats) > 0 {
		b.WriteString("\n")
		for _, s := range p.Stats {
			fmt.Fprintf(&b, "%-16s %3d %s\n", domain.DisplayName(s.Stat.Name), s.BaseStat,
				StatBar.Render(strings.Repeat("█", s.BaseStat/10)))
		}
		fmt.Fprintf(&b, "%-16s %3d\n", "Total", p.StatTotal())
	}

	if art := p.Artwork(); art != "" {
		b.WriteString("\n" + Muted.Render(art))
	}
	return b.String()
}

func errorText(err error) string {
	if status, ok := catalog.StatusOf(err); ok {
		if status == 0 {
			return "Catalog unreachable"
		}
		return fmt.Sprintf("Catalog answered %d", status)
	}
	return err.Error()
}
