// Package board contains the chess board and piece data model: coordinates,
// colors, piece kinds and their static movement descriptors, castling rights,
// the move record, and the 8x8 board itself. No rule knowledge lives here;
// that belongs to pkg/movegen and pkg/game.
package board

import "github.com/seekerror/stdlib/pkg/lang"

// Board is an 8x8 grid mapping Square to an optional Piece. At most one piece
// occupies a square; a piece's own Sq field always equals its square on the
// board while placed.
type Board struct {
	cells [NumFiles][NumRanks]*Piece
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Get returns the piece on sq, or nil if the square is empty. Returns OutOfBounds
// if sq is not on the board.
func (b *Board) Get(sq Square) (*Piece, error) {
	if !sq.IsValid() {
		return nil, NewError(OutOfBounds, "square out of bounds: %v", sq)
	}
	return b.cells[sq.File][sq.Rank], nil
}

// Set places p on sq, or clears the square if p is nil. On placement, p's Sq
// field is updated to sq. Returns OutOfBounds if sq is not on the board.
func (b *Board) Set(sq Square, p *Piece) error {
	if !sq.IsValid() {
		return NewError(OutOfBounds, "square out of bounds: %v", sq)
	}
	if p != nil {
		p.Sq = lang.Some(sq)
	}
	b.cells[sq.File][sq.Rank] = p
	return nil
}

// Clear empties every square.
func (b *Board) Clear() {
	b.cells = [NumFiles][NumRanks]*Piece{}
}

// ForEach visits every square in rank-major, file-minor order: a1, b1, ..., h1,
// a2, ..., h8.
func (b *Board) ForEach(fn func(sq Square, p *Piece)) {
	for r := Rank1; r <= Rank8; r++ {
		for f := FileA; f <= FileH; f++ {
			sq := NewSquare(f, r)
			fn(sq, b.cells[f][r])
		}
	}
}

// Clone returns an independent copy of the board: mutating the clone (or its
// pieces) never affects the original.
func (b *Board) Clone() *Board {
	out := NewBoard()
	b.ForEach(func(sq Square, p *Piece) {
		if p != nil {
			_ = out.Set(sq, NewPiece(p.Color, p.Kind))
		}
	})
	return out
}

// KingSquare returns the square of color's king, if present on the board.
func (b *Board) KingSquare(c Color) (Square, bool) {
	var found Square
	var ok bool
	b.ForEach(func(sq Square, p *Piece) {
		if p != nil && p.Color == c && p.Kind == King {
			found, ok = sq, true
		}
	})
	return found, ok
}
