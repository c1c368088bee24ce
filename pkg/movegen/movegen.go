package movegen

import (
	"github.com/herohde/chesspractice/pkg/board"
	"github.com/herohde/chesspractice/pkg/game"
)

// PseudoLegalDestinations returns every square reachable from "from" respecting
// piece movement rules, without regard to whether the mover's own king would be
// left in check. Castling is never included here; it is generated separately
// and added to LegalMoves after the king-safety filter.
func PseudoLegalDestinations(b *board.Board, s *game.GameState, from board.Square) ([]board.Square, error) {
	p, err := b.Get(from)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}

	if p.Kind == board.Pawn {
		return pawnDestinations(b, s, from, p.Color), nil
	}

	desc := board.DescriptorFor(p.Kind)
	var out []board.Square
	for _, off := range desc.Offsets {
		cur := from
		for {
			next, ok := cur.Add(off.DF, off.DR)
			if !ok {
				break
			}
			occ, _ := b.Get(next)
			if occ == nil {
				out = append(out, next)
			} else {
				if occ.Color != p.Color {
					out = append(out, next)
				}
				break
			}
			if !desc.Sliding {
				break
			}
			cur = next
		}
	}
	return out, nil
}

func pawnDestinations(b *board.Board, s *game.GameState, from board.Square, color board.Color) []board.Square {
	dir := 1
	homeRank := board.Rank2
	if color == board.Black {
		dir = -1
		homeRank = board.Rank7
	}

	var out []board.Square

	if one, ok := from.Add(0, dir); ok {
		if occ, _ := b.Get(one); occ == nil {
			out = append(out, one)

			if from.Rank == homeRank {
				if two, ok := from.Add(0, 2*dir); ok {
					if occ2, _ := b.Get(two); occ2 == nil {
						out = append(out, two)
					}
				}
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		diag, ok := from.Add(df, dir)
		if !ok {
			continue
		}
		if occ, _ := b.Get(diag); occ != nil && occ.Color != color {
			out = append(out, diag)
			continue
		}
		if ep, ok := s.EnPassantTarget(); ok {
			if diag == board.EnPassantLandingSquare(ep, color.Opponent()) {
				out = append(out, diag)
			}
		}
	}

	return out
}

// LegalMoves returns every destination reachable from "from" that does not
// leave the mover's own king in check, plus any castling destinations for a king.
func LegalMoves(b *board.Board, s *game.GameState, from board.Square) ([]board.Square, error) {
	p, err := b.Get(from)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}

	pseudo, err := PseudoLegalDestinations(b, s, from)
	if err != nil {
		return nil, err
	}

	var out []board.Square
	for _, to := range pseudo {
		safe, err := staysSafe(b, s, from, to, p.Color)
		if err != nil {
			return nil, err
		}
		if safe {
			out = append(out, to)
		}
	}

	if p.Kind == board.King && from == homeKingSquare(p.Color) {
		castling, err := castlingDestinations(b, s, p.Color)
		if err != nil {
			return nil, err
		}
		out = append(out, castling...)
	}

	return out, nil
}

func homeKingSquare(c board.Color) board.Square {
	homeRank := board.Rank1
	if c == board.Black {
		homeRank = board.Rank8
	}
	return board.NewSquare(board.FileE, homeRank)
}

// staysSafe simulates moving from->to on the board (handling the en-passant
// capture square correctly), checks whether mover is left in check, then
// restores the board exactly.
func staysSafe(b *board.Board, s *game.GameState, from, to board.Square, mover board.Color) (bool, error) {
	piece, err := b.Get(from)
	if err != nil {
		return false, err
	}
	landing, err := b.Get(to)
	if err != nil {
		return false, err
	}

	isEP := piece.Kind == board.Pawn && landing == nil && from.File != to.File
	var epSq board.Square
	var epCaptured *board.Piece
	if isEP {
		if ep, ok := s.EnPassantTarget(); ok && to == board.EnPassantLandingSquare(ep, mover.Opponent()) {
			epSq = ep
			epCaptured, _ = b.Get(epSq)
			if err := b.Set(epSq, nil); err != nil {
				return false, err
			}
		} else {
			isEP = false
		}
	}

	if err := b.Set(from, nil); err != nil {
		return false, err
	}
	if err := b.Set(to, piece); err != nil {
		return false, err
	}

	inCheck := IsInCheck(b, mover)

	if err := b.Set(to, landing); err != nil {
		return false, err
	}
	if err := b.Set(from, piece); err != nil {
		return false, err
	}
	if isEP {
		if err := b.Set(epSq, epCaptured); err != nil {
			return false, err
		}
	}

	return !inCheck, nil
}

// castlingDestinations returns the king's destination square(s) for any
// castling move legal in the current position: the right must still be held,
// the path between king and rook must be empty, the matching rook must be on
// its home corner (a mismatch is fatal InvalidState), the king must not be in
// check, and it must not pass through or land on an attacked square.
func castlingDestinations(b *board.Board, s *game.GameState, color board.Color) ([]board.Square, error) {
	homeRank := board.Rank1
	if color == board.Black {
		homeRank = board.Rank8
	}
	opponent := color.Opponent()

	if IsInCheck(b, color) {
		return nil, nil
	}

	var out []board.Square
	ks, qs := board.RightsFor(color)

	if s.CastlingRights().Has(ks) {
		h := board.NewSquare(board.FileH, homeRank)
		f := board.NewSquare(board.FileF, homeRank)
		g := board.NewSquare(board.FileG, homeRank)

		rook, err := b.Get(h)
		if err != nil {
			return nil, err
		}
		if rook == nil || rook.Kind != board.Rook || rook.Color != color {
			return nil, board.NewError(board.InvalidState, "no %v rook on %v for kingside castling", color, h)
		}

		fp, _ := b.Get(f)
		gp, _ := b.Get(g)
		if fp == nil && gp == nil && !IsAttacked(b, f, opponent) && !IsAttacked(b, g, opponent) {
			out = append(out, g)
		}
	}

	if s.CastlingRights().Has(qs) {
		a := board.NewSquare(board.FileA, homeRank)
		b1 := board.NewSquare(board.FileB, homeRank)
		c := board.NewSquare(board.FileC, homeRank)
		d := board.NewSquare(board.FileD, homeRank)

		rook, err := b.Get(a)
		if err != nil {
			return nil, err
		}
		if rook == nil || rook.Kind != board.Rook || rook.Color != color {
			return nil, board.NewError(board.InvalidState, "no %v rook on %v for queenside castling", color, a)
		}

		bp, _ := b.Get(b1)
		cp, _ := b.Get(c)
		dp, _ := b.Get(d)
		if bp == nil && cp == nil && dp == nil && !IsAttacked(b, d, opponent) && !IsAttacked(b, c, opponent) {
			out = append(out, c)
		}
	}

	return out, nil
}

// LegalMovesForColor returns legal destinations for every piece of color on
// the board, keyed by origin square. Used for checkmate/stalemate detection
// and by the SAN translator for disambiguation.
func LegalMovesForColor(b *board.Board, s *game.GameState, color board.Color) (map[board.Square][]board.Square, error) {
	out := map[board.Square][]board.Square{}
	var failure error
	b.ForEach(func(sq board.Square, p *board.Piece) {
		if failure != nil || p == nil || p.Color != color {
			return
		}
		moves, err := LegalMoves(b, s, sq)
		if err != nil {
			failure = err
			return
		}
		if len(moves) > 0 {
			out[sq] = moves
		}
	})
	if failure != nil {
		return nil, failure
	}
	return out, nil
}

// IsCheckmate reports whether color is in check with no legal moves.
func IsCheckmate(b *board.Board, s *game.GameState, color board.Color) (bool, error) {
	if !IsInCheck(b, color) {
		return false, nil
	}
	moves, err := LegalMovesForColor(b, s, color)
	if err != nil {
		return false, err
	}
	return len(moves) == 0, nil
}

// IsStalemate reports whether color is not in check but has no legal moves.
func IsStalemate(b *board.Board, s *game.GameState, color board.Color) (bool, error) {
	if IsInCheck(b, color) {
		return false, nil
	}
	moves, err := LegalMovesForColor(b, s, color)
	if err != nil {
		return false, err
	}
	return len(moves) == 0, nil
}
