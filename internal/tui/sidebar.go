package tui

import "strings"

// Icon is a closed set of sidebar icon variants. Entries carry a
// variant tag; rendering goes through the glyph lookup, never through
// a caller-supplied renderable.
type Icon int

const (
	IconHome Icon = iota
	IconBooks
	IconLink
)

var iconGlyphs = map[Icon]string{
	IconHome:  "⌂",
	IconBooks: "▤",
	IconLink:  "↗",
}

// MenuEntry is one sidebar item.
type MenuEntry struct {
	Label string
	Icon  Icon
}

func defaultMenu() []MenuEntry {
	return []MenuEntry{
		{Label: "Home", Icon: IconHome},
		{Label: "Books", Icon: IconBooks},
		{Label: "Links", Icon: IconLink},
	}
}

func renderSidebar(theme Theme, entries []MenuEntry, active int) string {
	var b strings.Builder
	for i, entry := range entries {
		glyph := iconGlyphs[entry.Icon]
		line := glyph + " " + entry.Label
		if i == active {
			line = theme.SelectedRow.Render(line)
		} else {
			line = theme.Sidebar.Render(line)
		}
		b.WriteString(line)
		if i < len(entries)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
