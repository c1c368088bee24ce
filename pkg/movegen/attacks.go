// Package movegen implements pseudo-legal and legal move generation, attack
// queries, castling generation and check/checkmate/stalemate detection. It
// treats sliding and leaping pieces uniformly by consulting their static
// movement descriptors from pkg/board, rather than hardcoding per-piece attack
// tables; pawns and knights are the only special cases.
package movegen

import "github.com/herohde/chesspractice/pkg/board"

// rayDirections are the 8 unit step vectors shared by king, queen, rook and
// bishop descriptors; used to walk outward from a target square.
var rayDirections = board.DescriptorFor(board.Queen).Offsets

// IsAttacked reports whether sq is attacked by a piece of color by. Walks each
// of the 8 directions from the target outward; the first piece encountered
// along a ray either attacks (if it belongs to by and its descriptor contains
// the reversed direction, honoring sliding distance) or blocks the ray.
// Knights and pawns are handled separately, since their attack pattern is not
// a straight ray from the target.
func IsAttacked(b *board.Board, sq board.Square, by board.Color) bool {
	for _, dir := range rayDirections {
		cur := sq
		dist := 0
		for {
			next, ok := cur.Add(dir.DF, dir.DR)
			if !ok {
				break
			}
			dist++
			p, _ := b.Get(next)
			if p == nil {
				cur = next
				continue
			}
			if p.Color == by {
				reversed := board.Offset{DF: -dir.DF, DR: -dir.DR}
				desc := board.DescriptorFor(p.Kind)
				if hasOffset(desc.Offsets, reversed) && (desc.Sliding || dist == 1) {
					return true
				}
			}
			break
		}
	}

	for _, off := range board.DescriptorFor(board.Knight).Offsets {
		next, ok := sq.Add(off.DF, off.DR)
		if !ok {
			continue
		}
		p, _ := b.Get(next)
		if p != nil && p.Color == by && p.Kind == board.Knight {
			return true
		}
	}

	pawnDR := -1
	if by == board.Black {
		pawnDR = 1
	}
	for _, df := range [2]int{-1, 1} {
		src, ok := sq.Add(df, pawnDR)
		if !ok {
			continue
		}
		p, _ := b.Get(src)
		if p != nil && p.Color == by && p.Kind == board.Pawn {
			return true
		}
	}

	return false
}

func hasOffset(offsets []board.Offset, o board.Offset) bool {
	for _, x := range offsets {
		if x == o {
			return true
		}
	}
	return false
}

// IsInCheck reports whether color's king is attacked. A color with no king on
// the board is reported as not in check, a defensive default for pedagogical
// setups rather than a real chess position.
func IsInCheck(b *board.Board, color board.Color) bool {
	sq, ok := b.KingSquare(color)
	if !ok {
		return false
	}
	return IsAttacked(b, sq, color.Opponent())
}
