package board

import (
	"strings"

	"github.com/seekerror/stdlib/pkg/lang"
)

// Snapshot captures every piece of GameState that a move must restore on undo:
// active color, castling rights, en-passant target, halfmove clock and fullmove
// number, all as they stood immediately BEFORE the move was applied. Move records
// this at execute time so undo is total and never needs to replay history.
type Snapshot struct {
	Active    Color
	Rights    CastlingRights
	EnPassant lang.Optional[Square]
	Halfmove  int
	Fullmove  int
}

// Move records a single applied move with enough information to reverse it
// exactly: the moving piece, any captured piece and its true origin square
// (differs from To on en passant), the en-passant target the move establishes,
// castling rook travel, promotion, and a full pre-move Snapshot.
type Move struct {
	From, To Square
	Piece    *Piece // the moving piece reference

	Captured       *Piece // nil if no capture
	CapturedOrigin Square // meaningful only if Captured != nil

	EnPassantTarget lang.Optional[Square] // Some iff this move is a pawn double push
	IsEnPassant     bool

	IsCastling                       bool
	CastlingRookFrom, CastlingRookTo Square

	IsPromotion bool
	PromotedTo  lang.Optional[PieceKind]

	PreState Snapshot
}

// String renders the move in long algebraic coordinate notation, e.g. "e2e4" or
// "e7e8q". Used for diagnostics and as the wire format to an external AI collaborator.
func (m Move) String() string {
	var sb strings.Builder
	sb.WriteString(m.From.String())
	sb.WriteString(m.To.String())
	if k, ok := m.PromotedTo.V(); ok {
		sb.WriteString(strings.ToLower(k.String()))
	}
	return sb.String()
}
