package board_test

import (
	"testing"

	"github.com/herohde/chesspractice/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardGetSetClear(t *testing.T) {
	b := board.NewBoard()

	sq := board.NewSquare(board.FileE, board.Rank4)
	p, err := b.Get(sq)
	require.NoError(t, err)
	assert.Nil(t, p)

	queen := board.NewPiece(board.White, board.Queen)
	require.NoError(t, b.Set(sq, queen))

	got, err := b.Get(sq)
	require.NoError(t, err)
	assert.Same(t, queen, got)

	placed, ok := queen.Sq.V()
	assert.True(t, ok)
	assert.Equal(t, sq, placed)

	b.Clear()
	got, err = b.Get(sq)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBoardOutOfBounds(t *testing.T) {
	b := board.NewBoard()
	bad := board.Square{File: board.File(8), Rank: board.Rank1}

	_, err := b.Get(bad)
	require.Error(t, err)
	assert.True(t, board.IsKind(err, board.OutOfBounds))

	err = b.Set(bad, board.NewPiece(board.White, board.Pawn))
	require.Error(t, err)
	assert.True(t, board.IsKind(err, board.OutOfBounds))
}

func TestKingSquare(t *testing.T) {
	b := board.NewBoard()
	sq := board.NewSquare(board.FileE, board.Rank1)
	require.NoError(t, b.Set(sq, board.NewPiece(board.White, board.King)))

	found, ok := b.KingSquare(board.White)
	assert.True(t, ok)
	assert.Equal(t, sq, found)

	_, ok = b.KingSquare(board.Black)
	assert.False(t, ok)
}
