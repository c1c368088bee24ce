package pgn

import (
	"github.com/herohde/chesspractice/pkg/board"
	"github.com/herohde/chesspractice/pkg/board/fen"
	"github.com/herohde/chesspractice/pkg/game"
	"github.com/herohde/chesspractice/pkg/movegen"
	"github.com/herohde/chesspractice/pkg/san"
)

// Load parses pgnText and replays every move through the executor, starting
// from the tagged FEN if present, else the standard starting position. The
// executor's Board is replaced by the freshly decoded starting board; read
// the resulting position from e.Board afterwards. Returns the SAN tokens that
// were applied. Move errors are returned as *Error carrying the failing
// move's 0-based MoveIndex and original SAN; its message prints the index
// 1-based.
func Load(pgnText string, e *game.Executor) ([]string, error) {
	data, err := Parse(pgnText)
	if err != nil {
		return nil, err
	}
	return LoadFromData(data, e)
}

// LoadFromData applies already-parsed PGN data, as Load does.
func LoadFromData(data Data, e *game.Executor) ([]string, error) {
	if data.FEN != "" {
		pos, err := fen.Decode(data.FEN)
		if err != nil {
			return nil, newError("invalid FEN tag %q: %v", data.FEN, err)
		}
		e.LoadPosition(pos.Board, pos.Active, pos.Rights, pos.EnPassant, pos.Halfmove, pos.Fullmove)
	} else {
		pos, err := fen.Decode(fen.Initial)
		if err != nil {
			// Unreachable: fen.Initial is a constant, known-valid FEN.
			return nil, err
		}
		e.LoadPosition(pos.Board, pos.Active, pos.Rights, pos.EnPassant, pos.Halfmove, pos.Fullmove)
	}

	for i, token := range data.Moves {
		from, to, promotion, err := san.SANToMove(token, e.Board, e.State)
		if err != nil {
			return nil, &Error{MoveIndex: i, SAN: token, Msg: err.Error()}
		}
		if _, err := e.Execute(from, to, promotion); err != nil {
			return nil, &Error{MoveIndex: i, SAN: token, Msg: err.Error()}
		}
	}

	return data.Moves, nil
}

// GeneratePGN renders a game in progress: the standard tag block plus
// movetext built from sanMoves, terminated by a result derived from the
// current position (checkmate, stalemate, or the in-progress marker "*").
func GeneratePGN(tags Data, b *board.Board, s *game.GameState, sanMoves []string) (string, error) {
	data := tags
	data.Moves = sanMoves

	mate, err := movegen.IsCheckmate(b, s, s.ActiveColor())
	if err != nil {
		return "", err
	}
	if mate {
		if s.ActiveColor() == board.White {
			data.Result = "0-1"
		} else {
			data.Result = "1-0"
		}
	} else {
		stalemate, err := movegen.IsStalemate(b, s, s.ActiveColor())
		if err != nil {
			return "", err
		}
		if stalemate {
			data.Result = "1/2-1/2"
		} else {
			data.Result = "*"
		}
	}

	return Generate(data), nil
}
