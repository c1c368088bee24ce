// Package san translates between board.Move values and Standard Algebraic
// Notation, in both directions: move_to_san for display/recording, san_to_move
// for PGN loading and interactive input.
package san

import (
	"strings"

	"github.com/herohde/chesspractice/pkg/board"
	"github.com/herohde/chesspractice/pkg/game"
	"github.com/herohde/chesspractice/pkg/movegen"
	"github.com/seekerror/stdlib/pkg/lang"
)

// MoveToSAN renders m in Standard Algebraic Notation. preBoard and preState
// are the position immediately before m was played; m itself carries enough
// detail (capture, castling, promotion) to avoid re-deriving it. When
// includeCheck is set, the move is replayed on a scratch copy of the position
// to determine the trailing "+"/"#" marker.
func MoveToSAN(m board.Move, preBoard *board.Board, preState *game.GameState, includeCheck bool) (string, error) {
	if m.IsCastling {
		if m.To.File == board.FileG {
			return appendCheckSuffix("O-O", m, preBoard, preState, includeCheck)
		}
		return appendCheckSuffix("O-O-O", m, preBoard, preState, includeCheck)
	}

	var sb strings.Builder

	isCapture := m.Captured != nil

	if m.Piece.Kind == board.Pawn {
		if isCapture {
			sb.WriteString(m.From.File.String())
			sb.WriteString("x")
		}
	} else {
		sb.WriteString(m.Piece.Kind.String())
		disambig, err := disambiguate(preBoard, preState, m)
		if err != nil {
			return "", err
		}
		sb.WriteString(disambig)
		if isCapture {
			sb.WriteString("x")
		}
	}

	sb.WriteString(m.To.String())

	if m.IsPromotion {
		k, _ := m.PromotedTo.V()
		sb.WriteString("=")
		sb.WriteString(k.String())
	}

	return appendCheckSuffix(sb.String(), m, preBoard, preState, includeCheck)
}

// disambiguate returns the minimal file/rank/both prefix needed to distinguish
// m.From from every other friendly piece of the same kind that can also
// legally reach m.To, per the standard SAN rule.
func disambiguate(preBoard *board.Board, preState *game.GameState, m board.Move) (string, error) {
	var sameFile, sameRank, any bool

	var failure error
	preBoard.ForEach(func(sq board.Square, p *board.Piece) {
		if failure != nil || p == nil || sq == m.From {
			return
		}
		if p.Color != m.Piece.Color || p.Kind != m.Piece.Kind {
			return
		}
		dest, err := movegen.LegalMoves(preBoard, preState, sq)
		if err != nil {
			failure = err
			return
		}
		for _, d := range dest {
			if d == m.To {
				any = true
				if sq.File == m.From.File {
					sameFile = true
				}
				if sq.Rank == m.From.Rank {
					sameRank = true
				}
			}
		}
	})
	if failure != nil {
		return "", failure
	}
	if !any {
		return "", nil
	}
	if !sameFile {
		return m.From.File.String(), nil
	}
	if !sameRank {
		return m.From.Rank.String(), nil
	}
	return m.From.String(), nil
}

// appendCheckSuffix replays m on a scratch copy of the pre-move position to
// determine whether it delivers check or checkmate.
func appendCheckSuffix(san string, m board.Move, preBoard *board.Board, preState *game.GameState, includeCheck bool) (string, error) {
	if !includeCheck {
		return san, nil
	}

	b := preBoard.Clone()
	s := preState.Clone()
	e := game.NewExecutor(b, s)

	if _, err := e.Execute(m.From, m.To, m.PromotedTo); err != nil {
		return "", err
	}

	mover := m.Piece.Color
	opponent := mover.Opponent()

	mate, err := movegen.IsCheckmate(b, s, opponent)
	if err != nil {
		return "", err
	}
	if mate {
		return san + "#", nil
	}
	if movegen.IsInCheck(b, opponent) {
		return san + "+", nil
	}
	return san, nil
}

// SANToMove resolves a SAN token against the current board and state,
// returning the from/to squares and an optional promotion kind. Accepts the
// alternative castling spelling "0-0"/"0-0-0", and tolerant of a trailing
// "+"/"#"/"!"/"?" annotation.
func SANToMove(s string, b *board.Board, state *game.GameState) (from, to board.Square, promotion lang.Optional[board.PieceKind], err error) {
	token := strings.TrimRight(s, "+#!?")

	if token == "O-O" || token == "0-0" {
		return resolveCastling(s, b, state, board.FileG)
	}
	if token == "O-O-O" || token == "0-0-0" {
		return resolveCastling(s, b, state, board.FileC)
	}

	return resolveMove(s, token, b, state, promotion)
}

// resolveCastling finds the active king and verifies that the castling
// destination on kingFile is actually among its legal moves.
func resolveCastling(s string, b *board.Board, state *game.GameState, kingFile board.File) (board.Square, board.Square, lang.Optional[board.PieceKind], error) {
	var promotion lang.Optional[board.PieceKind]
	active := state.ActiveColor()

	kingSq, ok := b.KingSquare(active)
	if !ok {
		return board.Square{}, board.Square{}, promotion, board.NewError(board.IllegalMove, "no %v king on board", active)
	}
	if kingSq.File != board.FileE {
		return board.Square{}, board.Square{}, promotion, board.NewError(board.IllegalMove, "%v king is not on its home square in %q", active, s)
	}
	dest := board.NewSquare(kingFile, kingSq.Rank)

	dests, err := movegen.LegalMoves(b, state, kingSq)
	if err != nil {
		return board.Square{}, board.Square{}, promotion, err
	}
	for _, d := range dests {
		if d == dest {
			return kingSq, dest, promotion, nil
		}
	}
	return board.Square{}, board.Square{}, promotion, board.NewError(board.IllegalMove, "%v cannot castle in %q", active, s)
}

func resolveMove(s, token string, b *board.Board, state *game.GameState, promotion lang.Optional[board.PieceKind]) (board.Square, board.Square, lang.Optional[board.PieceKind], error) {
	active := state.ActiveColor()

	body := token
	if idx := strings.IndexByte(body, '='); idx >= 0 {
		if idx+2 > len(body) {
			return board.Square{}, board.Square{}, promotion, board.NewError(board.BadSanSyntax, "malformed promotion suffix in %q", s)
		}
		_, kind, ok := board.ParsePieceLetter(rune(body[idx+1]))
		if !ok || kind == board.Pawn || kind == board.King {
			return board.Square{}, board.Square{}, promotion, board.NewError(board.BadSanSyntax, "invalid promotion piece in %q", s)
		}
		promotion = lang.Some(kind)
		body = body[:idx]
	}

	kind := board.Pawn
	if len(body) > 0 && body[0] >= 'A' && body[0] <= 'Z' {
		_, k, ok := board.ParsePieceLetter(rune(body[0]))
		if !ok {
			return board.Square{}, board.Square{}, promotion, board.NewError(board.BadSanSyntax, "unknown piece letter in %q", s)
		}
		kind = k
		body = body[1:]
	}

	body = strings.ReplaceAll(body, "x", "")

	if len(body) < 2 {
		return board.Square{}, board.Square{}, promotion, board.NewError(board.BadSanSyntax, "no destination square in %q", s)
	}
	destStr := body[len(body)-2:]
	dest, perr := board.ParseSquareStr(destStr)
	if perr != nil {
		return board.Square{}, board.Square{}, promotion, board.NewError(board.BadSanSyntax, "invalid destination square in %q", s)
	}
	disambig := body[:len(body)-2]

	var wantFile *board.File
	var wantRank *board.Rank
	switch len(disambig) {
	case 0:
	case 1:
		if f, ok := board.ParseFile(rune(disambig[0])); ok {
			wantFile = &f
		} else if r, ok := board.ParseRank(rune(disambig[0])); ok {
			wantRank = &r
		} else {
			return board.Square{}, board.Square{}, promotion, board.NewError(board.BadSanSyntax, "invalid disambiguator in %q", s)
		}
	case 2:
		f, fok := board.ParseFile(rune(disambig[0]))
		r, rok := board.ParseRank(rune(disambig[1]))
		if !fok || !rok {
			return board.Square{}, board.Square{}, promotion, board.NewError(board.BadSanSyntax, "invalid disambiguator in %q", s)
		}
		wantFile, wantRank = &f, &r
	default:
		return board.Square{}, board.Square{}, promotion, board.NewError(board.BadSanSyntax, "malformed SAN %q", s)
	}

	var candidates []board.Square
	var failure error
	b.ForEach(func(sq board.Square, p *board.Piece) {
		if failure != nil || p == nil || p.Color != active || p.Kind != kind {
			return
		}
		if wantFile != nil && sq.File != *wantFile {
			return
		}
		if wantRank != nil && sq.Rank != *wantRank {
			return
		}
		dests, err := movegen.LegalMoves(b, state, sq)
		if err != nil {
			failure = err
			return
		}
		for _, d := range dests {
			if d == dest {
				candidates = append(candidates, sq)
				break
			}
		}
	})
	if failure != nil {
		return board.Square{}, board.Square{}, promotion, failure
	}

	switch len(candidates) {
	case 0:
		return board.Square{}, board.Square{}, promotion, board.NewError(board.IllegalMove, "no legal %v move to %v in %q", kind, dest, s)
	case 1:
		return candidates[0], dest, promotion, nil
	default:
		return board.Square{}, board.Square{}, promotion, board.NewError(board.AmbiguousMove, "%v candidates for %q", len(candidates), s)
	}
}
