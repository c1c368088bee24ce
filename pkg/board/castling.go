package board

import "strings"

// CastlingRights tracks the four independent castling rights as a bitmask.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside
)

// FullCastlingRights is the starting-position value: all four rights held.
const FullCastlingRights = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside

// Has returns true iff all of the given rights are currently held.
func (c CastlingRights) Has(right CastlingRights) bool {
	return c&right == right
}

// Without returns the rights with the given right(s) cleared. A castling right can
// only transition from true to false during play; it is restored only by loading a
// FEN or by undoing a move.
func (c CastlingRights) Without(right CastlingRights) CastlingRights {
	return c &^ right
}

// RightsFor returns the kingside/queenside rights belonging to the given color.
func RightsFor(c Color) (kingside, queenside CastlingRights) {
	if c == White {
		return WhiteKingside, WhiteQueenside
	}
	return BlackKingside, BlackQueenside
}

// String renders rights in canonical "KQkq" order, "-" if none remain.
func (c CastlingRights) String() string {
	if c == 0 {
		return "-"
	}
	var sb strings.Builder
	if c.Has(WhiteKingside) {
		sb.WriteByte('K')
	}
	if c.Has(WhiteQueenside) {
		sb.WriteByte('Q')
	}
	if c.Has(BlackKingside) {
		sb.WriteByte('k')
	}
	if c.Has(BlackQueenside) {
		sb.WriteByte('q')
	}
	return sb.String()
}

// ParseCastlingRights parses the FEN castling field: "-" or a non-repeating
// subset of "KQkq" in any order.
func ParseCastlingRights(str string) (CastlingRights, bool) {
	var ret CastlingRights
	if str == "-" {
		return ret, true
	}
	seen := map[rune]bool{}
	for _, r := range str {
		if seen[r] {
			return 0, false
		}
		seen[r] = true
		switch r {
		case 'K':
			ret |= WhiteKingside
		case 'Q':
			ret |= WhiteQueenside
		case 'k':
			ret |= BlackKingside
		case 'q':
			ret |= BlackQueenside
		default:
			return 0, false
		}
	}
	return ret, true
}
