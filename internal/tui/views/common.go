package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/xolan/nutritrack/internal/food"
	"github.com/xolan/nutritrack/internal/stats"
	"github.com/xolan/nutritrack/internal/tui/ui"
)

// EntryRenderOptions configures how entries are rendered
type EntryRenderOptions struct {
	Width  int // Available width for rendering
	Cursor int // Index of the selected entry (-1 for none)
	Offset int // First entry to render
	Limit  int // Maximum rows to render (0 = all)
}

// RenderEntryList renders entries as aligned rows of time, name, category,
// calories and macros
func RenderEntryList(entries []food.Entry, loc *time.Location, styles ui.Styles, opts EntryRenderOptions) string {
	if len(entries) == 0 {
		return ""
	}

	end := len(entries)
	if opts.Limit > 0 {
		end = min(end, opts.Offset+opts.Limit)
	}
	rows := entries[opts.Offset:end]

	nameWidth := 0
	calWidth := 0
	for _, e := range rows {
		nameWidth = max(nameWidth, len([]rune(e.Name)))
		calWidth = max(calWidth, len(formatCalories(e.Calories)))
	}

	// time (16) + category (11) + calories + macros (~24) + gaps
	maxName := opts.Width - 16 - 11 - calWidth - 30
	nameWidth = min(nameWidth, max(maxName, 12))

	var b strings.Builder
	for i, e := range rows {
		style := styles.EntryNormal
		if opts.Offset+i == opts.Cursor {
			style = styles.EntrySelected
		}

		line := fmt.Sprintf("%s  %s %s %s  %s",
			styles.EntryTime.Render(e.Timestamp.In(loc).Format("2006-01-02 15:04")),
			styles.EntryName.Render(fmt.Sprintf("%-*s", nameWidth, truncate(e.Name, nameWidth))),
			styles.EntryCategory.Render(fmt.Sprintf("%-10s", e.Category)),
			styles.EntryCalories.Render(fmt.Sprintf("%*s", calWidth, formatCalories(e.Calories))),
			styles.EntryMacros.Render(formatMacros(e.Macros())))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// formatCalories formats a calorie value, e.g. "350 kcal"
func formatCalories(v float64) string {
	return stats.Format(v) + " kcal"
}

// formatMacros formats protein, carbs and fat, e.g. "P 20g  C 40g  F 10g"
func formatMacros(m food.Macros) string {
	return fmt.Sprintf("P %sg  C %sg  F %sg",
		stats.Format(m.Protein), stats.Format(m.Carbs), stats.Format(m.Fat))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	if strings.HasSuffix(word, "y") {
		return strings.TrimSuffix(word, "y") + "ies"
	}
	return word + "s"
}

// followCursor returns the scroll offset that keeps cursor inside a
// window of height rows over a list of n items.
func followCursor(cursor, offset, height, n int) int {
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+height {
		offset = cursor - height + 1
	}
	return max(0, min(offset, n-1))
}
