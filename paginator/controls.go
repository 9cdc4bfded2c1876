package paginator

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
)

// Control identifiers carried by the navigation buttons.
const (
	ControlFirst = "first"
	ControlPrev  = "prev"
	ControlNext  = "next"
	ControlLast  = "last"

	// ControlPageLabel identifies the page counter. It is display only and
	// never acted upon.
	ControlPageLabel = "_show_page"
)

// Control is a single button of the navigation row.
type Control struct {
	ID       string
	CustomID string
	Label    string
	Style    discord.ButtonStyle
	Disabled bool
}

// Interactive reports whether pressing the control moves the paginator.
func (c Control) Interactive() bool {
	return isNavigation(c.ID)
}

func isNavigation(id string) bool {
	switch id {
	case ControlFirst, ControlPrev, ControlNext, ControlLast:
		return true
	}
	return false
}

// step returns the page reached by pressing control on page out of total.
func step(page int, total int, control string) int {
	switch control {
	case ControlFirst:
		return 1
	case ControlPrev:
		return max(page-1, 1)
	case ControlNext:
		return min(page+1, total)
	case ControlLast:
		return total
	}
	return page
}

func formatCustomID(prefix string, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + ":" + id
}

// Controls renders the navigation row for page out of total using cfg.
func Controls(cfg Config, page int, total int) []Control {
	atFirst := page == 1
	atLast := page == total
	buttons := cfg.ButtonsConfig

	newControl := func(id string, label string, style discord.ButtonStyle, disabled bool) Control {
		return Control{
			ID:       id,
			CustomID: formatCustomID(cfg.CustomIDPrefix, id),
			Label:    label,
			Style:    style,
			Disabled: disabled,
		}
	}

	row := make([]Control, 0, 5)
	if cfg.UseExtend {
		row = append(row, newControl(ControlFirst, buttons.First, cfg.LeftStyle, atFirst))
	}
	row = append(row,
		newControl(ControlPrev, buttons.Prev, cfg.LeftStyle, atFirst),
		newControl(ControlPageLabel, fmt.Sprintf("Page %d / %d", page, total), discord.ButtonStyleSecondary, true),
		newControl(ControlNext, buttons.Next, cfg.RightStyle, atLast),
	)
	if cfg.UseExtend {
		row = append(row, newControl(ControlLast, buttons.Last, cfg.RightStyle, atLast))
	}
	return row
}
