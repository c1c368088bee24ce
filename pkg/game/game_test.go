package game_test

import (
	"testing"

	"github.com/herohde/chesspractice/pkg/board"
	"github.com/herohde/chesspractice/pkg/game"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStartBoard() *board.Board {
	b := board.NewBoard()
	place := func(f board.File, r board.Rank, c board.Color, k board.PieceKind) {
		_ = b.Set(board.NewSquare(f, r), board.NewPiece(c, k))
	}
	back := []board.PieceKind{board.Rook, board.Knight, board.Bishop, board.Queen, board.King, board.Bishop, board.Knight, board.Rook}
	for i, k := range back {
		place(board.File(i), board.Rank1, board.White, k)
		place(board.File(i), board.Rank8, board.Black, k)
	}
	for f := board.FileA; f <= board.FileH; f++ {
		place(f, board.Rank2, board.White, board.Pawn)
		place(f, board.Rank7, board.Black, board.Pawn)
	}
	return b
}

func noPromo() lang.Optional[board.PieceKind] {
	return lang.Optional[board.PieceKind]{}
}

func TestDoublePushSetsEnPassantTarget(t *testing.T) {
	b := newStartBoard()
	s := game.NewGameState()
	e := game.NewExecutor(b, s)

	m, err := e.Execute(board.NewSquare(board.FileE, board.Rank2), board.NewSquare(board.FileE, board.Rank4), noPromo())
	require.NoError(t, err)

	ep, ok := m.EnPassantTarget.V()
	require.True(t, ok)
	assert.Equal(t, board.NewSquare(board.FileE, board.Rank4), ep)

	target, ok := s.EnPassantTarget()
	require.True(t, ok)
	assert.Equal(t, board.NewSquare(board.FileE, board.Rank4), target)
}

func TestEnPassantCapture(t *testing.T) {
	b := board.NewBoard()
	_ = b.Set(board.NewSquare(board.FileE, board.Rank1), board.NewPiece(board.White, board.King))
	_ = b.Set(board.NewSquare(board.FileE, board.Rank8), board.NewPiece(board.Black, board.King))
	_ = b.Set(board.NewSquare(board.FileE, board.Rank5), board.NewPiece(board.White, board.Pawn))
	blackPawn := board.NewPiece(board.Black, board.Pawn)
	_ = b.Set(board.NewSquare(board.FileD, board.Rank5), blackPawn)

	// Simulate that black just played d7-d5: the en-passant target is the black
	// pawn's own square, and it is White to move.
	exec := game.NewExecutor(b, game.NewGameState())
	exec.LoadPosition(b, board.White, board.FullCastlingRights, lang.Some(board.NewSquare(board.FileD, board.Rank5)), 0, 3)

	m, err := exec.Execute(board.NewSquare(board.FileE, board.Rank5), board.NewSquare(board.FileD, board.Rank6), noPromo())
	require.NoError(t, err)
	assert.True(t, m.IsEnPassant)
	assert.Same(t, blackPawn, m.Captured)

	p, err := b.Get(board.NewSquare(board.FileD, board.Rank6))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, board.White, p.Color)

	p, err = b.Get(board.NewSquare(board.FileD, board.Rank5))
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = b.Get(board.NewSquare(board.FileE, board.Rank5))
	require.NoError(t, err)
	assert.Nil(t, p)

	undone, ok := exec.Undo()
	require.True(t, ok)
	assert.Equal(t, m, undone)

	p, err = b.Get(board.NewSquare(board.FileD, board.Rank5))
	require.NoError(t, err)
	assert.Same(t, blackPawn, p)
}

func TestKingsideCastling(t *testing.T) {
	b := board.NewBoard()
	king := board.NewPiece(board.White, board.King)
	rook := board.NewPiece(board.White, board.Rook)
	_ = b.Set(board.NewSquare(board.FileE, board.Rank1), king)
	_ = b.Set(board.NewSquare(board.FileH, board.Rank1), rook)
	_ = b.Set(board.NewSquare(board.FileE, board.Rank8), board.NewPiece(board.Black, board.King))

	s := game.NewGameState()
	e := game.NewExecutor(b, s)

	m, err := e.Execute(board.NewSquare(board.FileE, board.Rank1), board.NewSquare(board.FileG, board.Rank1), noPromo())
	require.NoError(t, err)
	assert.True(t, m.IsCastling)

	p, err := b.Get(board.NewSquare(board.FileG, board.Rank1))
	require.NoError(t, err)
	assert.Same(t, king, p)

	p, err = b.Get(board.NewSquare(board.FileF, board.Rank1))
	require.NoError(t, err)
	assert.Same(t, rook, p)

	assert.False(t, s.CastlingRights().Has(board.WhiteKingside))
	assert.False(t, s.CastlingRights().Has(board.WhiteQueenside))

	_, ok := e.Undo()
	require.True(t, ok)
	assert.True(t, s.CastlingRights().Has(board.WhiteKingside))

	p, err = b.Get(board.NewSquare(board.FileE, board.Rank1))
	require.NoError(t, err)
	assert.Same(t, king, p)
}

func TestCastlingRequiresRookInPlace(t *testing.T) {
	b := board.NewBoard()
	_ = b.Set(board.NewSquare(board.FileE, board.Rank1), board.NewPiece(board.White, board.King))
	// No rook on h1: stored rights disagree with the board.
	s := game.NewGameState()
	e := game.NewExecutor(b, s)

	_, err := e.Execute(board.NewSquare(board.FileE, board.Rank1), board.NewSquare(board.FileG, board.Rank1), noPromo())
	require.Error(t, err)
	assert.True(t, board.IsKind(err, board.InvalidState))
}

func TestPromotionRequiresKind(t *testing.T) {
	b := board.NewBoard()
	pawn := board.NewPiece(board.White, board.Pawn)
	_ = b.Set(board.NewSquare(board.FileE, board.Rank7), pawn)
	_ = b.Set(board.NewSquare(board.FileE, board.Rank1), board.NewPiece(board.White, board.King))
	_ = b.Set(board.NewSquare(board.FileH, board.Rank8), board.NewPiece(board.Black, board.King))

	s := game.NewGameState()
	e := game.NewExecutor(b, s)
	ok, err := e.IsPromotionMove(board.NewSquare(board.FileE, board.Rank7), board.NewSquare(board.FileE, board.Rank8))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = e.Execute(board.NewSquare(board.FileE, board.Rank7), board.NewSquare(board.FileE, board.Rank8), noPromo())
	require.Error(t, err)
	assert.True(t, board.IsKind(err, board.PromotionRequired))

	m, err := e.Execute(board.NewSquare(board.FileE, board.Rank7), board.NewSquare(board.FileE, board.Rank8), lang.Some(board.Queen))
	require.NoError(t, err)
	assert.True(t, m.IsPromotion)

	p, err := b.Get(board.NewSquare(board.FileE, board.Rank8))
	require.NoError(t, err)
	assert.Equal(t, board.Queen, p.Kind)
	assert.Equal(t, board.White, p.Color)

	_, ok2 := e.Undo()
	require.True(t, ok2)

	p, err = b.Get(board.NewSquare(board.FileE, board.Rank7))
	require.NoError(t, err)
	assert.Same(t, pawn, p)
	assert.Equal(t, board.Pawn, p.Kind)

	p, err = b.Get(board.NewSquare(board.FileE, board.Rank8))
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestUndoRestoresExactState(t *testing.T) {
	b := newStartBoard()
	s := game.NewGameState()
	e := game.NewExecutor(b, s)

	preActive := s.ActiveColor()
	preRights := s.CastlingRights()
	preHalfmove := s.HalfmoveClock()
	preFullmove := s.FullmoveNumber()

	_, err := e.Execute(board.NewSquare(board.FileG, board.Rank1), board.NewSquare(board.FileF, board.Rank3), noPromo())
	require.NoError(t, err)

	_, ok := e.Undo()
	require.True(t, ok)

	assert.Equal(t, preActive, s.ActiveColor())
	assert.Equal(t, preRights, s.CastlingRights())
	assert.Equal(t, preHalfmove, s.HalfmoveClock())
	assert.Equal(t, preFullmove, s.FullmoveNumber())
	assert.False(t, s.CanUndo())
	assert.True(t, s.CanRedo())
}

func TestRedoReappliesMove(t *testing.T) {
	b := newStartBoard()
	s := game.NewGameState()
	e := game.NewExecutor(b, s)

	from := board.NewSquare(board.FileE, board.Rank2)
	to := board.NewSquare(board.FileE, board.Rank4)
	executed, err := e.Execute(from, to, noPromo())
	require.NoError(t, err)

	_, ok := e.Undo()
	require.True(t, ok)

	redone, ok := e.Redo()
	require.True(t, ok)
	assert.Equal(t, executed, redone)
	assert.False(t, s.CanRedo())
	assert.True(t, s.CanUndo())

	p, err := b.Get(to)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, board.Pawn, p.Kind)
}

func TestHalfmoveClockResetsOnPawnMoveOrCapture(t *testing.T) {
	b := newStartBoard()
	s := game.NewGameState()
	e := game.NewExecutor(b, s)

	_, err := e.Execute(board.NewSquare(board.FileG, board.Rank1), board.NewSquare(board.FileF, board.Rank3), noPromo())
	require.NoError(t, err)
	assert.Equal(t, 1, s.HalfmoveClock())

	_, err = e.Execute(board.NewSquare(board.FileG, board.Rank8), board.NewSquare(board.FileF, board.Rank6), noPromo())
	require.NoError(t, err)
	assert.Equal(t, 2, s.HalfmoveClock())

	_, err = e.Execute(board.NewSquare(board.FileE, board.Rank2), board.NewSquare(board.FileE, board.Rank4), noPromo())
	require.NoError(t, err)
	assert.Equal(t, 0, s.HalfmoveClock())
}

func TestFullmoveIncrementsAfterBlack(t *testing.T) {
	b := newStartBoard()
	s := game.NewGameState()
	e := game.NewExecutor(b, s)

	_, err := e.Execute(board.NewSquare(board.FileE, board.Rank2), board.NewSquare(board.FileE, board.Rank4), noPromo())
	require.NoError(t, err)
	assert.Equal(t, 1, s.FullmoveNumber())

	_, err = e.Execute(board.NewSquare(board.FileE, board.Rank7), board.NewSquare(board.FileE, board.Rank5), noPromo())
	require.NoError(t, err)
	assert.Equal(t, 2, s.FullmoveNumber())
}

func TestJumpToHistoryIndex(t *testing.T) {
	b := newStartBoard()
	s := game.NewGameState()
	e := game.NewExecutor(b, s)

	moves := [][2]board.Square{
		{board.NewSquare(board.FileE, board.Rank2), board.NewSquare(board.FileE, board.Rank4)},
		{board.NewSquare(board.FileE, board.Rank7), board.NewSquare(board.FileE, board.Rank5)},
		{board.NewSquare(board.FileG, board.Rank1), board.NewSquare(board.FileF, board.Rank3)},
	}
	for _, mv := range moves {
		_, err := e.Execute(mv[0], mv[1], noPromo())
		require.NoError(t, err)
	}

	require.NoError(t, e.JumpToHistoryIndex(1))
	assert.Equal(t, 1, len(s.History()))
	assert.Equal(t, 2, len(s.RedoStack()))

	require.NoError(t, e.JumpToHistoryIndex(3))
	assert.Equal(t, 3, len(s.History()))
	assert.Equal(t, 0, len(s.RedoStack()))

	err := e.JumpToHistoryIndex(10)
	require.Error(t, err)
	assert.True(t, board.IsKind(err, board.RangeError))

	err = e.JumpToHistoryIndex(-1)
	require.Error(t, err)
	assert.True(t, board.IsKind(err, board.RangeError))
}
