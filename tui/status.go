package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cfirth/fable/engine/effects"
)

// renderStatusBar produces a full-width inverted status line showing
// current room, visible exits, inventory, score, and turn count.
func (m Model) renderStatusBar() string {
	s := m.engine.State
	w := m.engine.World

	roomName := s.CurrentRoom
	room := w.Room(s.CurrentRoom)
	if room != nil && room.Name != "" {
		roomName = room.Name
	}

	var dirs []string
	if room != nil {
		for _, exit := range room.Exits {
			if exit.Hidden && !s.Flags[effects.RevealFlag(room.ID, exit.Direction)] {
				continue
			}
			dirs = append(dirs, string(exit.Direction))
		}
	}
	exitStr := strings.Join(dirs, ",")

	left := fmt.Sprintf(" %s | Exits: %s", roomName, exitStr)
	right := fmt.Sprintf("Score: %d | T:%d ", s.Score, s.Turns)

	// Show inventory items if they fit, otherwise just count.
	if len(s.Inventory) > 0 {
		var names []string
		for _, id := range s.Inventory {
			name := id
			if obj := w.Object(id); obj != nil {
				name = obj.Name
			}
			names = append(names, name)
		}
		invStr := strings.Join(names, ", ")
		candidate := fmt.Sprintf("Inv: %s | Score: %d | T:%d ", invStr, s.Score, s.Turns)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | Score: %d | T:%d ", len(s.Inventory), s.Score, s.Turns)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
