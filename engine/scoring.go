package engine

import (
	"fmt"
	"strings"

	"github.com/cfirth/fable/engine/state"
	"github.com/cfirth/fable/engine/world"
	"github.com/cfirth/fable/types"
)

// CheckTreasureScore awards points for treasures deposited in the trophy
// container. Each treasure scores at most once, tracked by a "scored_<id>"
// flag; "picked_up_<id>" records the first pickup. Returns the points
// awarded this turn and the announcement, if any.
func CheckTreasureScore(s *types.GameState, w *world.World) (int, string) {
	trophy := w.Config.TrophyContainer
	points := 0
	var messages []string

	for _, obj := range w.Objects() {
		if obj.ScoreValue <= 0 {
			continue
		}
		if s.Flags["scored_"+obj.ID] {
			continue
		}

		if state.HasItem(s, obj.ID) {
			s.Flags["picked_up_"+obj.ID] = true
		}

		if state.Placement(s, obj.ID).Container(trophy) {
			s.Flags["scored_"+obj.ID] = true
			points += obj.ScoreValue
			messages = append(messages,
				fmt.Sprintf("[Your score just went up by %d points.]", obj.ScoreValue))
		}
	}

	if points > 0 {
		s.Score += points
		return points, strings.Join(messages, "\n")
	}
	return 0, ""
}
