package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qnkhuat/gestris/pkg/event"
	"github.com/qnkhuat/gestris/pkg/game"
	"github.com/qnkhuat/gestris/pkg/mino"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap/zaptest"
)

func newTestGame(t *testing.T) *game.Game {
	return game.NewGame(game.Options{
		Generator: mino.NewGenerator(7),
		Logger:    zaptest.NewLogger(t),
	})
}

func midGame(t *testing.T) *game.Game {
	g := newTestGame(t)
	g.Tick()
	for _, c := range []event.Command{event.CommandHardDrop, event.CommandRotate, event.CommandMoveLeft, event.CommandMoveLeft, event.CommandHardDrop} {
		require.NoError(t, g.Apply(c))
		g.Tick()
	}
	require.NoError(t, g.Apply(event.CommandRotate))

	return g
}

func assertRoundTrip(t *testing.T, st game.State) {
	data, err := Save(st)
	require.NoError(t, err)

	got, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, st, got)

	g, err := game.Restore(got, game.Options{Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)
	assert.Equal(t, st, g.State())
}

func TestRoundTripMidGame(t *testing.T) {
	st := midGame(t).State()
	require.NotNil(t, st.Current)
	assert.NotEqual(t, make([]mino.Block, st.Board.W*st.Board.H), st.Board.Cells())

	assertRoundTrip(t, st)
}

func TestRoundTripFresh(t *testing.T) {
	st := newTestGame(t).State()
	assert.Nil(t, st.Current)

	assertRoundTrip(t, st)
}

func TestRoundTripPaused(t *testing.T) {
	g := midGame(t)
	require.NoError(t, g.Apply(event.CommandPause))
	require.True(t, g.Paused())

	assertRoundTrip(t, g.State())
}

func TestRoundTripGameOver(t *testing.T) {
	g := newTestGame(t)
	for i := 0; i < 500 && !g.GameOver(); i++ {
		g.Tick()
		g.HardDrop()
	}
	require.True(t, g.GameOver())

	assertRoundTrip(t, g.State())
}

func TestSaveIncomplete(t *testing.T) {
	_, err := Save(game.State{})
	assert.Error(t, err)
}

func TestLoadMalformed(t *testing.T) {
	data, err := Save(midGame(t).State())
	require.NoError(t, err)

	inputs := map[string][]byte{
		"empty":     nil,
		"truncated": data[:len(data)/2],
		"garbage":   {0xc1, 0xc1, 0xc1},
		"trailing":  append(append([]byte{}, data...), 0xc1, 0xff, 0x00, 'x'),
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := Load(in)
			var de *DecodeError
			assert.ErrorAs(t, err, &de)
		})
	}
}

func TestLoadOutOfRange(t *testing.T) {
	valid := func() saveRecord {
		return saveRecord{
			Width:  4,
			Height: 2,
			Cells:  make([]int, 8),
			Next:   &pieceRecord{Shape: int(mino.ShapeT), Color: 3},
			Level:  1,
		}
	}

	tests := []struct {
		name   string
		mutate func(r *saveRecord)
	}{
		{"shape", func(r *saveRecord) { r.Next.Shape = 7 }},
		{"negative shape", func(r *saveRecord) { r.Next.Shape = -1 }},
		{"rotation", func(r *saveRecord) { r.Next.Rotation = 4 }},
		{"color", func(r *saveRecord) { r.Next.Color = mino.PaletteSize }},
		{"empty color", func(r *saveRecord) { r.Next.Color = 0 }},
		{"cell id", func(r *saveRecord) { r.Cells[3] = 9 }},
		{"cell count", func(r *saveRecord) { r.Cells = r.Cells[:7] }},
		{"dimensions", func(r *saveRecord) { r.Width = 0 }},
		{"phase", func(r *saveRecord) { r.Phase = 5 }},
		{"score", func(r *saveRecord) { r.Score = -10 }},
		{"missing next", func(r *saveRecord) { r.Next = nil }},
		{"current shape", func(r *saveRecord) { r.Current = &pieceRecord{Shape: 12, Color: 1} }},
		{"current far above", func(r *saveRecord) { r.Current = &pieceRecord{Shape: int(mino.ShapeT), Color: 1, Y: -2000000000} }},
		{"current far below", func(r *saveRecord) { r.Current = &pieceRecord{Shape: int(mino.ShapeT), Color: 1, Y: 3} }},
		{"current far left", func(r *saveRecord) { r.Current = &pieceRecord{Shape: int(mino.ShapeT), Color: 1, X: -5} }},
		{"next far right", func(r *saveRecord) { r.Next.X = 5 }},
		{"current overlaps", func(r *saveRecord) {
			r.Cells = []int{2, 2, 2, 2, 2, 2, 2, 2}
			r.Current = &pieceRecord{Shape: int(mino.ShapeT), Color: 1, Y: -1}
		}},
	}

	rec := valid()
	data, err := msgpack.Marshal(&rec)
	require.NoError(t, err)
	_, err = Load(data)
	require.NoError(t, err)

	// A piece resting against the edge of the frame is fine while the game
	// is over.
	over := valid()
	over.Phase = int(game.PhaseGameOver)
	over.Cells = []int{2, 2, 2, 2, 2, 2, 2, 2}
	over.Current = &pieceRecord{Shape: int(mino.ShapeT), Color: 1, X: -mino.FrameSize, Y: -1}
	data, err = msgpack.Marshal(&over)
	require.NoError(t, err)
	_, err = Load(data)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid()
			tt.mutate(&rec)
			data, err := msgpack.Marshal(&rec)
			require.NoError(t, err)

			_, err = Load(data)
			var de *DecodeError
			assert.ErrorAs(t, err, &de)
		})
	}
}

func TestWriteReadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.bin")

	_, err := ReadSave(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	st := midGame(t).State()
	require.NoError(t, WriteSave(path, st))

	got, err := ReadSave(path)
	require.NoError(t, err)
	assert.Equal(t, st, got)

	require.NoError(t, os.WriteFile(path, []byte("corrupt"), 0o644))
	_, err = ReadSave(path)
	var de *DecodeError
	assert.ErrorAs(t, err, &de)
}
