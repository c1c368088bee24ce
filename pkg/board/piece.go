package board

import "github.com/seekerror/stdlib/pkg/lang"

// PieceKind identifies a piece's movement class, independent of color.
type PieceKind uint8

const (
	King PieceKind = iota
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

func (k PieceKind) IsValid() bool {
	return k >= King && k <= Pawn
}

// String returns the upper-case SAN piece letter; pawns print empty.
func (k PieceKind) String() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	default:
		return "?"
	}
}

// FENLetter returns the FEN piece letter for the given color, e.g. 'P'/'p'.
func (k PieceKind) FENLetter(c Color) rune {
	var r rune
	switch k {
	case King:
		r = 'k'
	case Queen:
		r = 'q'
	case Rook:
		r = 'r'
	case Bishop:
		r = 'b'
	case Knight:
		r = 'n'
	case Pawn:
		r = 'p'
	default:
		r = '?'
	}
	if c == White {
		r -= 'a' - 'A'
	}
	return r
}

// ParsePieceLetter parses a FEN/SAN piece letter into its color and kind.
func ParsePieceLetter(r rune) (Color, PieceKind, bool) {
	c := Black
	lower := r
	if r >= 'A' && r <= 'Z' {
		c = White
		lower = r + ('a' - 'A')
	}
	switch lower {
	case 'k':
		return c, King, true
	case 'q':
		return c, Queen, true
	case 'r':
		return c, Rook, true
	case 'b':
		return c, Bishop, true
	case 'n':
		return c, Knight, true
	case 'p':
		return c, Pawn, true
	default:
		return 0, 0, false
	}
}

// Value is the conventional point value of a kind: used only for captured-material
// display and sort ordering, never for rules decisions.
func (k PieceKind) Value() int {
	switch k {
	case Pawn:
		return 1
	case Knight:
		return 3
	case Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	case King:
		return 0
	default:
		return 0
	}
}

// Offset is a (file, rank) step vector used by a movement descriptor.
type Offset struct {
	DF, DR int
}

// Descriptor is the static movement pattern shared by every piece of a kind.
// Pawn motion is special-cased by the move generator and carries no offsets here.
type Descriptor struct {
	Offsets []Offset
	Sliding bool
}

var descriptors = map[PieceKind]Descriptor{
	King: {Offsets: []Offset{{0, 1}, {0, -1}, {1, 0}, {-1, 0}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}},
	Queen: {Sliding: true, Offsets: []Offset{
		{0, 1}, {0, -1}, {1, 0}, {-1, 0}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}},
	Rook: {Sliding: true, Offsets: []Offset{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}},
	Bishop: {Sliding: true, Offsets: []Offset{
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}},
	Knight: {Offsets: []Offset{
		{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}},
	Pawn: {},
}

// DescriptorFor returns the static movement descriptor for a piece kind.
func DescriptorFor(k PieceKind) Descriptor {
	return descriptors[k]
}

// Piece is a placed chess piece. Identity is not semantically significant across
// moves: a promoted pawn becomes a new Piece of the chosen kind.
type Piece struct {
	Color Color
	Kind  PieceKind
	Sq    lang.Optional[Square] // populated by Board while placed
}

func NewPiece(c Color, k PieceKind) *Piece {
	return &Piece{Color: c, Kind: k}
}

func (p *Piece) String() string {
	return string(p.Kind.FENLetter(p.Color))
}
