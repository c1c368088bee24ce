package game

import (
	"github.com/herohde/chesspractice/pkg/board"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Executor is the sole mutator of a GameState: it applies, undoes and redoes
// moves against a paired Board, maintaining castling rights, the en-passant
// target and the move counters.
type Executor struct {
	Board *board.Board
	State *GameState
}

// NewExecutor pairs a board and state for move execution.
func NewExecutor(b *board.Board, s *GameState) *Executor {
	return &Executor{Board: b, State: s}
}

// IsPromotionMove reports whether moving the piece on from to the to-square
// would be a pawn promotion. A UI probe: executing a promoting move without a
// promotion kind is a contract violation (PromotionRequired).
func (e *Executor) IsPromotionMove(from, to board.Square) (bool, error) {
	p, err := e.Board.Get(from)
	if err != nil {
		return false, err
	}
	if p == nil || p.Kind != board.Pawn {
		return false, nil
	}
	promotionRank := board.Rank8
	if p.Color == board.Black {
		promotionRank = board.Rank1
	}
	return to.Rank == promotionRank, nil
}

// Execute classifies and applies a move from "from" to "to", appending a fully
// reversible record to history and clearing the redo stack. promotion must be
// provided (Some) iff the move is a promotion; see IsPromotionMove.
func (e *Executor) Execute(from, to board.Square, promotion lang.Optional[board.PieceKind]) (board.Move, error) {
	piece, err := e.Board.Get(from)
	if err != nil {
		return board.Move{}, err
	}
	if piece == nil {
		return board.Move{}, board.NewError(board.IllegalMove, "no piece on %v", from)
	}
	if piece.Color != e.State.active {
		return board.Move{}, board.NewError(board.IllegalMove, "%v to move, but %v belongs to %v", e.State.active, from, piece.Color)
	}

	isPromo, err := e.IsPromotionMove(from, to)
	if err != nil {
		return board.Move{}, err
	}
	if isPromo {
		if _, ok := promotion.V(); !ok {
			return board.Move{}, board.NewError(board.PromotionRequired, "promotion kind required for %v%v", from, to)
		}
	}

	m := board.Move{
		From:     from,
		To:       to,
		Piece:    piece,
		PreState: e.State.snapshot(),
	}

	switch {
	case piece.Kind == board.King && fileDistance(from, to) == 2:
		if err := e.classifyCastling(&m); err != nil {
			return board.Move{}, err
		}

	case piece.Kind == board.Pawn && e.isEnPassantLanding(piece.Color, to):
		ep, _ := e.State.enPassant.V()
		m.IsEnPassant = true
		m.CapturedOrigin = ep
		captured, err := e.Board.Get(ep)
		if err != nil {
			return board.Move{}, err
		}
		m.Captured = captured

	default:
		captured, err := e.Board.Get(to)
		if err != nil {
			return board.Move{}, err
		}
		if captured != nil {
			m.Captured = captured
			m.CapturedOrigin = to
		}
	}

	if piece.Kind == board.Pawn && rankDistance(from, to) == 2 {
		m.EnPassantTarget = lang.Some(to)
	}

	if isPromo {
		k, _ := promotion.V()
		m.IsPromotion = true
		m.PromotedTo = lang.Some(k)
	}

	if err := applyForward(e.Board, &m); err != nil {
		return board.Move{}, err
	}

	e.State.rights = nextRights(e.State.rights, m)
	e.State.record(m)
	e.State.active = e.State.active.Opponent()
	e.State.enPassant = m.EnPassantTarget
	if m.Piece.Kind == board.Pawn || m.Captured != nil {
		e.State.halfmove = 0
	} else {
		e.State.halfmove++
	}
	if m.PreState.Active == board.Black {
		e.State.fullmove++
	}

	return m, nil
}

// Undo reverses the most recently executed (or redone) move, pushing it onto
// the redo stack and restoring the pre-move GameState exactly from its snapshot.
func (e *Executor) Undo() (board.Move, bool) {
	m, ok := e.State.popLast()
	if !ok {
		return board.Move{}, false
	}
	if err := undoBackward(e.Board, &m); err != nil {
		// The state machine promises board and history stay in sync; a failure
		// here indicates a corrupted position.
		panic(err)
	}
	e.State.restore(m.PreState)
	e.State.pushRedo(m)
	return m, true
}

// Redo reapplies the most recently undone move exactly as Execute would.
func (e *Executor) Redo() (board.Move, bool) {
	m, ok := e.State.popRedo()
	if !ok {
		return board.Move{}, false
	}
	if err := applyForward(e.Board, &m); err != nil {
		panic(err)
	}
	e.State.rights = nextRights(e.State.rights, m)
	e.State.history = append(e.State.history, m)
	e.State.active = e.State.active.Opponent()
	e.State.enPassant = m.EnPassantTarget
	if m.Piece.Kind == board.Pawn || m.Captured != nil {
		e.State.halfmove = 0
	} else {
		e.State.halfmove++
	}
	if m.PreState.Active == board.Black {
		e.State.fullmove++
	}
	return m, true
}

// JumpToHistoryIndex issues the shortest sequence of undos/redos to reach
// position index i in [0, len(history)+len(redo)].
func (e *Executor) JumpToHistoryIndex(i int) error {
	total := len(e.State.history) + len(e.State.redo)
	if i < 0 || i > total {
		return board.NewError(board.RangeError, "history index %v out of range [0,%v]", i, total)
	}

	for len(e.State.history) > i {
		if _, ok := e.Undo(); !ok {
			return board.NewError(board.RangeError, "unable to undo to index %v", i)
		}
	}
	for len(e.State.history) < i {
		if _, ok := e.Redo(); !ok {
			return board.NewError(board.RangeError, "unable to redo to index %v", i)
		}
	}
	return nil
}

func fileDistance(from, to board.Square) int {
	d := int(to.File) - int(from.File)
	if d < 0 {
		d = -d
	}
	return d
}

func rankDistance(from, to board.Square) int {
	d := int(to.Rank) - int(from.Rank)
	if d < 0 {
		d = -d
	}
	return d
}

// classifyCastling fills in the castling-specific fields of m, given that the
// king moved two files. Verifies the corresponding rook is actually on its home
// corner: a mismatch between stored rights and board state is an implementation
// bug or a hand-crafted position, and is fatal.
func (e *Executor) classifyCastling(m *board.Move) error {
	homeRank := board.Rank1
	if m.Piece.Color == board.Black {
		homeRank = board.Rank8
	}

	kingside := m.To.File == board.FileG
	rookFromFile, rookToFile := board.FileA, board.FileD
	if kingside {
		rookFromFile, rookToFile = board.FileH, board.FileF
	}

	m.IsCastling = true
	m.CastlingRookFrom = board.NewSquare(rookFromFile, homeRank)
	m.CastlingRookTo = board.NewSquare(rookToFile, homeRank)

	rook, err := e.Board.Get(m.CastlingRookFrom)
	if err != nil {
		return err
	}
	if rook == nil || rook.Kind != board.Rook || rook.Color != m.Piece.Color {
		return board.NewError(board.InvalidState, "no %v rook on %v for castling", m.Piece.Color, m.CastlingRookFrom)
	}
	return nil
}

// isEnPassantLanding reports whether to is the en-passant taking square implied
// by the current state's en-passant target, for a pawn of color mover.
func (e *Executor) isEnPassantLanding(mover board.Color, to board.Square) bool {
	ep, ok := e.State.enPassant.V()
	if !ok {
		return false
	}
	return to == board.EnPassantLandingSquare(ep, mover.Opponent())
}

// applyForward mutates the board to reflect m, in either the execute or redo direction.
func applyForward(b *board.Board, m *board.Move) error {
	if m.Captured != nil {
		if err := b.Set(m.CapturedOrigin, nil); err != nil {
			return err
		}
	}

	var rook *board.Piece
	if m.IsCastling {
		r, err := b.Get(m.CastlingRookFrom)
		if err != nil {
			return err
		}
		rook = r
		if err := b.Set(m.CastlingRookFrom, nil); err != nil {
			return err
		}
	}

	if err := b.Set(m.From, nil); err != nil {
		return err
	}

	landing := m.Piece
	if m.IsPromotion {
		k, _ := m.PromotedTo.V()
		landing = board.NewPiece(m.Piece.Color, k)
	}
	if err := b.Set(m.To, landing); err != nil {
		return err
	}

	if m.IsCastling {
		if err := b.Set(m.CastlingRookTo, rook); err != nil {
			return err
		}
	}
	return nil
}

// undoBackward reverses applyForward exactly.
func undoBackward(b *board.Board, m *board.Move) error {
	if err := b.Set(m.To, nil); err != nil {
		return err
	}
	if err := b.Set(m.From, m.Piece); err != nil {
		return err
	}

	if m.IsCastling {
		rook, err := b.Get(m.CastlingRookTo)
		if err != nil {
			return err
		}
		if err := b.Set(m.CastlingRookTo, nil); err != nil {
			return err
		}
		if err := b.Set(m.CastlingRookFrom, rook); err != nil {
			return err
		}
	}

	if m.Captured != nil {
		if err := b.Set(m.CapturedOrigin, m.Captured); err != nil {
			return err
		}
	}
	return nil
}

// nextRights computes castling rights after m is applied, per the rule that
// rights only ever transition from held to cleared during play.
func nextRights(rights board.CastlingRights, m board.Move) board.CastlingRights {
	if m.Piece.Kind == board.King {
		ks, qs := board.RightsFor(m.Piece.Color)
		rights = rights.Without(ks | qs)
	}
	if m.Piece.Kind == board.Rook {
		rights = clearRookRight(rights, m.Piece.Color, m.From)
	}
	if m.Captured != nil && m.Captured.Kind == board.Rook {
		rights = clearRookRight(rights, m.Captured.Color, m.CapturedOrigin)
	}
	return rights
}

func clearRookRight(rights board.CastlingRights, c board.Color, sq board.Square) board.CastlingRights {
	homeRank := board.Rank1
	if c == board.Black {
		homeRank = board.Rank8
	}
	if sq.Rank != homeRank {
		return rights
	}
	ks, qs := board.RightsFor(c)
	switch sq.File {
	case board.FileH:
		return rights.Without(ks)
	case board.FileA:
		return rights.Without(qs)
	default:
		return rights
	}
}

// LoadPosition resets board and state to an explicit position, e.g. from FEN.
// Clears history and redo since a loaded position has no prior moves of its own.
func (e *Executor) LoadPosition(b *board.Board, active board.Color, rights board.CastlingRights, ep lang.Optional[board.Square], halfmove, fullmove int) {
	e.Board = b
	e.State.reset(active, rights, ep, halfmove, fullmove)
}
