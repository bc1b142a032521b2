package domain

import "github.com/samber/lo"

// RoundMarker is the display state of one round dot
type RoundMarker string

const (
	MarkerPending   RoundMarker = "pending"
	MarkerActive    RoundMarker = "active"
	MarkerCompleted RoundMarker = "completed"
)

// RoundMarkers returns one marker per round. Round i is completed once the
// session has moved past it and active while it is the current round.
func RoundMarkers(currentRound, totalRounds int) []RoundMarker {
	if totalRounds <= 0 {
		return nil
	}
	return lo.Times(totalRounds, func(i int) RoundMarker {
		round := i + 1
		switch {
		case round < currentRound:
			return MarkerCompleted
		case round == currentRound:
			return MarkerActive
		default:
			return MarkerPending
		}
	})
}
