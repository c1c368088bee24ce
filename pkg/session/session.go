// Package session provides the single facade a UI or AI-integration
// collaborator drives: it combines board, game, movegen, fen, san, pgn and
// opening into the operations listed in the core's external interface —
// reset, legal-move queries, execute/undo/redo, history jumps, FEN/PGN I/O
// and opening-book lookups — behind one mutex-guarded entry point.
package session

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/herohde/chesspractice/pkg/board"
	"github.com/herohde/chesspractice/pkg/board/fen"
	"github.com/herohde/chesspractice/pkg/game"
	"github.com/herohde/chesspractice/pkg/movegen"
	"github.com/herohde/chesspractice/pkg/opening"
	"github.com/herohde/chesspractice/pkg/pgn"
	"github.com/herohde/chesspractice/pkg/san"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// Session holds a single position plus its played SAN history and, when
// loaded, an opening book to classify it against. It is the only type in
// this module that mutates board/game state on behalf of an external caller;
// every method is safe for concurrent use.
type Session struct {
	name string

	board *board.Board
	state *game.GameState
	exec  *game.Executor

	tags pgn.Data

	sanHistory []string
	sanRedo    []string

	book *opening.Node

	mu sync.Mutex
}

// New returns a session at the standard starting position.
func New(ctx context.Context, name string) *Session {
	s := &Session{name: name}
	if err := s.Reset(ctx, fen.Initial); err != nil {
		// fen.Initial is a constant, known-valid FEN; unreachable.
		panic(err)
	}
	logw.Infof(ctx, "Initialized session: %v", s.Name())
	return s
}

// Name returns the session name and version.
func (s *Session) Name() string {
	return fmt.Sprintf("%v %v", s.name, version)
}

// Reset replaces the current position with the one encoded by position,
// clearing history, redo and opening classification.
func (s *Session) Reset(ctx context.Context, position string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, err := fen.Decode(position)
	if err != nil {
		logw.Errorf(ctx, "Invalid FEN: %v", err)
		return err
	}

	logw.Infof(ctx, "Reset %v", position)

	s.board = pos.Board
	s.state = game.NewGameState()
	s.exec = game.NewExecutor(s.board, s.state)
	s.exec.LoadPosition(pos.Board, pos.Active, pos.Rights, pos.EnPassant, pos.Halfmove, pos.Fullmove)
	s.sanHistory = nil
	s.sanRedo = nil
	s.tags = pgn.Data{Event: "?", Site: "?", Date: "????.??.??", Round: "?", White: "?", Black: "?", Result: "*", ExtraTags: map[string]string{}}
	return nil
}

// Position returns the current position in FEN.
func (s *Session) Position() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ep lang.Optional[board.Square]
	if sq, ok := s.state.EnPassantTarget(); ok {
		ep = lang.Some(sq)
	}
	return fen.Encode(s.board, s.state.ActiveColor(), s.state.CastlingRights(), ep, s.state.HalfmoveClock(), s.state.FullmoveNumber())
}

// Board returns a clone of the current board, safe for the caller to read or
// mutate without affecting the session.
func (s *Session) Board() *board.Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.board.Clone()
}

// LegalMoves returns every legal destination square from from.
func (s *Session) LegalMoves(from board.Square) ([]board.Square, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return movegen.LegalMoves(s.board, s.state, from)
}

// IsPromotion reports whether moving from->to is a pawn promotion, a probe a
// caller must make before Execute to decide whether a promotion kind is
// required.
func (s *Session) IsPromotion(from, to board.Square) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.exec.IsPromotionMove(from, to)
}

// Execute applies the move from->to, returning the executed Move and its SAN
// rendering (with check/mate suffix). Clears the redo stack.
func (s *Session) Execute(ctx context.Context, from, to board.Square, promotion lang.Optional[board.PieceKind]) (board.Move, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	preBoard := s.board.Clone()
	preState := s.state.Clone()

	m, err := s.exec.Execute(from, to, promotion)
	if err != nil {
		return board.Move{}, "", err
	}

	sanStr, err := san.MoveToSAN(m, preBoard, preState, true)
	if err != nil {
		return board.Move{}, "", err
	}

	s.sanHistory = append(s.sanHistory, sanStr)
	s.sanRedo = nil

	logw.Infof(ctx, "Execute %v: %v", sanStr, m)
	return m, sanStr, nil
}

// Undo reverses the most recently executed move, pushing it onto the redo
// stack.
func (s *Session) Undo(ctx context.Context) (board.Move, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.exec.Undo()
	if !ok {
		return board.Move{}, false
	}

	last := s.sanHistory[len(s.sanHistory)-1]
	s.sanHistory = s.sanHistory[:len(s.sanHistory)-1]
	s.sanRedo = append(s.sanRedo, last)

	logw.Infof(ctx, "Undo %v", last)
	return m, true
}

// Redo reapplies the most recently undone move.
func (s *Session) Redo(ctx context.Context) (board.Move, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.exec.Redo()
	if !ok {
		return board.Move{}, false
	}

	last := s.sanRedo[len(s.sanRedo)-1]
	s.sanRedo = s.sanRedo[:len(s.sanRedo)-1]
	s.sanHistory = append(s.sanHistory, last)

	logw.Infof(ctx, "Redo %v", last)
	return m, true
}

// JumpToHistoryIndex issues the shortest sequence of undos/redos to reach
// history index i, keeping the SAN history in lockstep with the board.
func (s *Session) JumpToHistoryIndex(ctx context.Context, i int) error {
	s.mu.Lock()
	total := len(s.sanHistory) + len(s.sanRedo)
	s.mu.Unlock()

	if i < 0 || i > total {
		return board.NewError(board.RangeError, "history index %v out of range [0,%v]", i, total)
	}

	for {
		s.mu.Lock()
		cur := len(s.sanHistory)
		s.mu.Unlock()
		if cur == i {
			return nil
		}
		if cur > i {
			if _, ok := s.Undo(ctx); !ok {
				return board.NewError(board.RangeError, "unable to undo to index %v", i)
			}
			continue
		}
		if _, ok := s.Redo(ctx); !ok {
			return board.NewError(board.RangeError, "unable to redo to index %v", i)
		}
	}
}

// SANHistory returns a copy of the SAN tokens played so far.
func (s *Session) SANHistory() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.sanHistory))
	copy(out, s.sanHistory)
	return out
}

// LoadPGN parses and replays a full PGN document, starting from its FEN tag
// if present, else the standard starting position. Returns the applied SAN
// tokens.
func (s *Session) LoadPGN(ctx context.Context, pgnText string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := pgn.Parse(pgnText)
	if err != nil {
		logw.Errorf(ctx, "Invalid PGN: %v", err)
		return nil, err
	}

	state := game.NewGameState()
	exec := game.NewExecutor(board.NewBoard(), state)

	moves, err := pgn.LoadFromData(data, exec)
	if err != nil {
		logw.Errorf(ctx, "Invalid PGN movetext: %v", err)
		return nil, err
	}

	// LoadFromData replaces exec.Board wholesale via LoadPosition when
	// applying the tagged (or standard) starting FEN.
	s.board, s.state, s.exec = exec.Board, state, exec
	s.tags = data
	s.tags.Moves = nil
	s.sanHistory = moves
	s.sanRedo = nil

	logw.Infof(ctx, "Loaded PGN: %v moves", len(moves))
	return moves, nil
}

// GeneratePGN renders the current game as a PGN document: tags, movetext and
// a result derived from the current position.
func (s *Session) GeneratePGN(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return pgn.GeneratePGN(s.tags, s.board, s.state, s.sanHistory)
}

// LoadOpeningCatalog builds the opening book from a CSV catalog, replacing
// any previously loaded book.
func (s *Session) LoadOpeningCatalog(ctx context.Context, r io.Reader) error {
	entries, err := opening.LoadCatalog(r)
	if err != nil {
		logw.Errorf(ctx, "Invalid opening catalog: %v", err)
		return err
	}

	s.mu.Lock()
	s.book = opening.Build(entries)
	s.mu.Unlock()

	logw.Infof(ctx, "Loaded opening catalog: %v entries", len(entries))
	return nil
}

// CurrentOpening classifies the current position against the loaded opening
// book, per the roll-up resolution rule. Returns ok=false if no book is
// loaded or the position is not on any cataloged line.
func (s *Session) CurrentOpening() (opening.Opening, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.book == nil {
		return opening.Opening{}, false
	}
	return s.book.Lookup(s.sanHistory)
}

// Continuations returns the book's child moves from the current position.
func (s *Session) Continuations() ([]opening.Continuation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.book == nil {
		return nil, false
	}
	return s.book.Continuations(s.sanHistory)
}

// AvailableMoves returns book continuations from the position at
// currentMoveCount along the played line, excluding the move actually played
// next (if any) — alternatives a focus-mode UI overlay can offer.
func (s *Session) AvailableMoves(currentMoveCount int) ([]opening.Continuation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.book == nil {
		return nil, false
	}
	return s.book.AvailableMoves(s.sanHistory, currentMoveCount)
}
