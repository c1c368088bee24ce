// Package fen reads and writes chess positions in Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/herohde/chesspractice/pkg/board"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Initial is the FEN for the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Error reports which of the six FEN fields failed to parse.
type Error struct {
	Field string
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("fen: %v: %v", e.Field, e.Msg)
}

func newError(field, format string, args ...interface{}) *Error {
	return &Error{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// Position is the decoded result of a FEN string: a populated board plus
// everything GameState needs to resume play.
type Position struct {
	Board     *board.Board
	Active    board.Color
	Rights    board.CastlingRights
	EnPassant lang.Optional[board.Square]
	Halfmove  int
	Fullmove  int
}

// Decode parses a complete six-field FEN record.
func Decode(fen string) (Position, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) != 6 {
		return Position{}, newError("record", "expected 6 space-separated fields, got %v in %q", len(fields), fen)
	}

	b, err := decodePlacement(fields[0])
	if err != nil {
		return Position{}, err
	}

	active, ok := board.ParseColor(fields[1])
	if !ok {
		return Position{}, newError("active color", "expected 'w' or 'b', got %q", fields[1])
	}

	rights, ok := board.ParseCastlingRights(fields[2])
	if !ok {
		return Position{}, newError("castling", "invalid castling availability %q", fields[2])
	}

	var ep lang.Optional[board.Square]
	if fields[3] != "-" {
		landing, err := board.ParseSquareStr(fields[3])
		if err != nil {
			return Position{}, newError("en passant", "invalid square %q", fields[3])
		}
		pawnSq, ok := board.ParseEnPassantLanding(landing)
		if !ok {
			return Position{}, newError("en passant", "square %v is not on rank 3 or 6", landing)
		}
		ep = lang.Some(pawnSq)
	}

	halfmove, err := strconv.Atoi(fields[4])
	if err != nil || halfmove < 0 {
		return Position{}, newError("halfmove clock", "expected a non-negative integer, got %q", fields[4])
	}

	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove <= 0 {
		return Position{}, newError("fullmove number", "expected a positive integer, got %q", fields[5])
	}

	return Position{Board: b, Active: active, Rights: rights, EnPassant: ep, Halfmove: halfmove, Fullmove: fullmove}, nil
}

func decodePlacement(field string) (*board.Board, error) {
	b := board.NewBoard()
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return nil, newError("placement", "expected 8 ranks separated by '/', got %v in %q", len(ranks), field)
	}

	// FEN lists rank 8 first.
	for i, rankStr := range ranks {
		r := board.Rank8 - board.Rank(i)
		f := board.FileA
		for _, ch := range rankStr {
			switch {
			case unicode.IsDigit(ch):
				n := int(ch - '0')
				if n < 1 || n > 8 {
					return nil, newError("placement", "invalid empty-square count %q in rank %q", ch, rankStr)
				}
				f += board.File(n)
			case unicode.IsLetter(ch):
				color, kind, ok := board.ParsePieceLetter(ch)
				if !ok {
					return nil, newError("placement", "invalid piece letter %q in rank %q", ch, rankStr)
				}
				if !f.IsValid() {
					return nil, newError("placement", "rank %q has more than 8 files", rankStr)
				}
				if err := b.Set(board.NewSquare(f, r), board.NewPiece(color, kind)); err != nil {
					return nil, newError("placement", "%v", err)
				}
				f++
			default:
				return nil, newError("placement", "unexpected character %q in rank %q", ch, rankStr)
			}
		}
		if f != board.NumFiles {
			return nil, newError("placement", "rank %q does not sum to 8 files", rankStr)
		}
	}

	return b, nil
}

// Encode renders a full position to its canonical FEN string: castling
// letters in KQkq order, en-passant as the landing square, no extraneous
// whitespace.
func Encode(b *board.Board, active board.Color, rights board.CastlingRights, ep lang.Optional[board.Square], halfmove, fullmove int) string {
	var sb strings.Builder
	for i := 0; i < board.NumRanks; i++ {
		r := board.Rank8 - board.Rank(i)
		blanks := 0
		for f := board.FileA; f <= board.FileH; f++ {
			p, _ := b.Get(board.NewSquare(f, r))
			if p == nil {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(p.Kind.FENLetter(p.Color))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r != board.Rank1 {
			sb.WriteByte('/')
		}
	}

	epStr := "-"
	if pawnSq, ok := ep.V(); ok {
		if landing, ok := board.EnPassantLandingFromPawnSquare(pawnSq); ok {
			epStr = landing.String()
		}
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), active, rights.String(), epStr, halfmove, fullmove)
}
