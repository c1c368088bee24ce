package fen_test

import (
	"testing"

	"github.com/herohde/chesspractice/pkg/board"
	"github.com/herohde/chesspractice/pkg/board/fen"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInitialPosition(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	assert.Equal(t, board.White, pos.Active)
	assert.Equal(t, board.FullCastlingRights, pos.Rights)
	assert.Equal(t, 0, pos.Halfmove)
	assert.Equal(t, 1, pos.Fullmove)
	_, ok := pos.EnPassant.V()
	assert.False(t, ok)

	p, err := pos.Board.Get(board.NewSquare(board.FileE, board.Rank1))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, board.King, p.Kind)
	assert.Equal(t, board.White, p.Color)

	p, err = pos.Board.Get(board.NewSquare(board.FileA, board.Rank8))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, board.Rook, p.Kind)
	assert.Equal(t, board.Black, p.Color)
}

func TestRoundTripInitialPosition(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	got := fen.Encode(pos.Board, pos.Active, pos.Rights, pos.EnPassant, pos.Halfmove, pos.Fullmove)
	assert.Equal(t, fen.Initial, got)
}

func TestDecodeEnPassantField(t *testing.T) {
	pos, err := fen.Decode("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	require.NoError(t, err)
	ep, ok := pos.EnPassant.V()
	require.True(t, ok)
	assert.Equal(t, board.NewSquare(board.FileD, board.Rank5), ep)

	got := fen.Encode(pos.Board, pos.Active, pos.Rights, pos.EnPassant, pos.Halfmove, pos.Fullmove)
	assert.Equal(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3", got)
}

func TestDecodeRejectsWrongFieldCount(t *testing.T) {
	_, err := fen.Decode("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record")
}

func TestDecodeRejectsBadRankSum(t *testing.T) {
	_, err := fen.Decode("rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "placement")
}

func TestDecodeRejectsBadActiveColor(t *testing.T) {
	_, err := fen.Decode("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "active color")
}

func TestDecodeRejectsBadCastling(t *testing.T) {
	_, err := fen.Decode("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkqx - 0 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "castling")
}

func TestDecodeRejectsBadEnPassantRank(t *testing.T) {
	_, err := fen.Decode("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e4 0 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "en passant")
}

func TestDecodeRejectsNegativeHalfmove(t *testing.T) {
	_, err := fen.Decode("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "halfmove")
}

func TestDecodeRejectsZeroFullmove(t *testing.T) {
	_, err := fen.Decode("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fullmove")
}

func TestEncodeCastlingNone(t *testing.T) {
	b := board.NewBoard()
	_ = b.Set(board.NewSquare(board.FileE, board.Rank1), board.NewPiece(board.White, board.King))
	_ = b.Set(board.NewSquare(board.FileE, board.Rank8), board.NewPiece(board.Black, board.King))
	got := fen.Encode(b, board.White, board.CastlingRights(0), lang.Optional[board.Square]{}, 0, 1)
	assert.Equal(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1", got)
}
