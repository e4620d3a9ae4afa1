package board

import "github.com/daystram/arbiter/position"

type State uint8

const (
	// StateUnknown is when game state is unknown.
	StateUnknown State = iota

	// StateRunning is when game is on progress.
	StateRunning

	// StateCheckmate is when the side to move is in check and cannot move.
	StateCheckmate

	// StateStalemate is when a side cannot move a piece and King is not in check.
	StateStalemate

	// StateInsufficientMaterial is when neither side can force a checkmate.
	StateInsufficientMaterial

	// StateThreefoldRepetition is when the same position occurred three times.
	StateThreefoldRepetition

	// StateFiftyMoveViolated is when the game has gone through 50 moves without any captures or pawn moves.
	StateFiftyMoveViolated
)

func (s State) IsRunning() bool {
	return s == StateRunning
}

func (s State) IsDraw() bool {
	switch s {
	case StateStalemate, StateInsufficientMaterial, StateThreefoldRepetition, StateFiftyMoveViolated:
		return true
	default:
		return false
	}
}

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "StateUnknown"
	case StateRunning:
		return "StateRunning"
	case StateCheckmate:
		return "StateCheckmate"
	case StateStalemate:
		return "StateStalemate"
	case StateInsufficientMaterial:
		return "StateInsufficientMaterial"
	case StateThreefoldRepetition:
		return "StateThreefoldRepetition"
	case StateFiftyMoveViolated:
		return "StateFiftyMoveViolated"
	default:
		return ""
	}
}

// message is the game over message for a terminal state; winner is only
// consulted for StateCheckmate.
func (s State) message(winner Side) string {
	switch s {
	case StateCheckmate:
		return winner.String() + " won by checkmate"
	case StateStalemate:
		return "Stalemate"
	case StateInsufficientMaterial:
		return "Draw due to insufficient material"
	case StateThreefoldRepetition:
		return "Draw due to threefold repetition"
	case StateFiftyMoveViolated:
		return "Draw due to fifty move rule"
	default:
		return ""
	}
}

// CheckState reflects the side to move.
type CheckState struct {
	InCheck bool
	// King is the attacked king's square; only valid when InCheck is set.
	King position.Pos
}
