// Package game implements the reversible chess state machine: GameState holds
// turn, rights, en-passant target, move counters and history; Executor is the
// sole mutator, applying, undoing and redoing moves against a board.Board.
package game

import (
	"github.com/herohde/chesspractice/pkg/board"
	"github.com/seekerror/stdlib/pkg/lang"
)

// GameState holds everything about a position beyond the board itself. Only an
// Executor mutates it; every other caller sees read-only views.
type GameState struct {
	active    board.Color
	rights    board.CastlingRights
	enPassant lang.Optional[board.Square]
	halfmove  int
	fullmove  int

	history []board.Move
	redo    []board.Move
}

// NewGameState returns the state for a standard starting position.
func NewGameState() *GameState {
	return &GameState{
		active:   board.White,
		rights:   board.FullCastlingRights,
		halfmove: 0,
		fullmove: 1,
	}
}

// ActiveColor returns the color to move.
func (s *GameState) ActiveColor() board.Color {
	return s.active
}

// CastlingRights returns the currently-held castling rights.
func (s *GameState) CastlingRights() board.CastlingRights {
	return s.rights
}

// EnPassantTarget returns the en-passant pawn square, if the previous move was
// a pawn double push.
func (s *GameState) EnPassantTarget() (board.Square, bool) {
	return s.enPassant.V()
}

// HalfmoveClock returns the number of halfmoves since the last pawn advance or capture.
func (s *GameState) HalfmoveClock() int {
	return s.halfmove
}

// FullmoveNumber returns the current full move number, starting at 1.
func (s *GameState) FullmoveNumber() int {
	return s.fullmove
}

// History returns the ordered sequence of executed moves. The returned slice
// must not be mutated by the caller.
func (s *GameState) History() []board.Move {
	return s.history
}

// RedoStack returns the ordered sequence of undone moves available for redo.
// The returned slice must not be mutated by the caller.
func (s *GameState) RedoStack() []board.Move {
	return s.redo
}

// CanUndo reports whether there is a move to undo.
func (s *GameState) CanUndo() bool {
	return len(s.history) > 0
}

// CanRedo reports whether there is a move to redo.
func (s *GameState) CanRedo() bool {
	return len(s.redo) > 0
}

// Clone returns an independent copy of the position fields (active color,
// rights, en-passant target, move counters), with empty history and redo.
// Used by callers that need to simulate a move without disturbing the
// original state, e.g. SAN check-suffix generation.
func (s *GameState) Clone() *GameState {
	return &GameState{
		active:    s.active,
		rights:    s.rights,
		enPassant: s.enPassant,
		halfmove:  s.halfmove,
		fullmove:  s.fullmove,
	}
}

// snapshot captures the fields a Move must restore on undo.
func (s *GameState) snapshot() board.Snapshot {
	return board.Snapshot{
		Active:    s.active,
		Rights:    s.rights,
		EnPassant: s.enPassant,
		Halfmove:  s.halfmove,
		Fullmove:  s.fullmove,
	}
}

// reset replaces every field, e.g. when loading a FEN. Clears history and redo:
// a freshly loaded position has no move history of its own.
func (s *GameState) reset(active board.Color, rights board.CastlingRights, ep lang.Optional[board.Square], halfmove, fullmove int) {
	s.active = active
	s.rights = rights
	s.enPassant = ep
	s.halfmove = halfmove
	s.fullmove = fullmove
	s.history = nil
	s.redo = nil
}

// record appends m to history and clears the redo stack (branch-truncating).
func (s *GameState) record(m board.Move) {
	s.redo = nil
	s.history = append(s.history, m)
}

// popLast removes and returns the most recently recorded move, if any.
func (s *GameState) popLast() (board.Move, bool) {
	if len(s.history) == 0 {
		return board.Move{}, false
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	return last, true
}

// pushRedo pushes m onto the redo stack.
func (s *GameState) pushRedo(m board.Move) {
	s.redo = append(s.redo, m)
}

// popRedo removes and returns the most recently pushed redo move, if any.
func (s *GameState) popRedo() (board.Move, bool) {
	if len(s.redo) == 0 {
		return board.Move{}, false
	}
	last := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	return last, true
}

// restore applies a pre-move Snapshot back onto the state, used by undo.
func (s *GameState) restore(snap board.Snapshot) {
	s.active = snap.Active
	s.rights = snap.Rights
	s.enPassant = snap.EnPassant
	s.halfmove = snap.Halfmove
	s.fullmove = snap.Fullmove
}
