// Package store persists game state and the high score ledger.
package store

import (
	"bytes"
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"github.com/qnkhuat/gestris/pkg/game"
	"github.com/qnkhuat/gestris/pkg/mino"
	"github.com/vmihailenco/msgpack/v5"
)

// Boards larger than this are treated as corrupt rather than allocated.
const maxDimension = 1024

type pieceRecord struct {
	Shape    int `msgpack:"s"`
	Rotation int `msgpack:"r"`
	Color    int `msgpack:"c"`
	X        int `msgpack:"x"`
	Y        int `msgpack:"y"`
}

type saveRecord struct {
	Width   int          `msgpack:"w"`
	Height  int          `msgpack:"h"`
	Cells   []int        `msgpack:"cells"`
	Current *pieceRecord `msgpack:"cur"`
	Next    *pieceRecord `msgpack:"next"`
	Score   int          `msgpack:"score"`
	Level   int          `msgpack:"level"`
	Phase   int          `msgpack:"phase"`
	Paused  bool         `msgpack:"paused"`
}

func toPieceRecord(p *mino.Piece) *pieceRecord {
	if p == nil {
		return nil
	}

	return &pieceRecord{
		Shape:    int(p.Shape),
		Rotation: p.Rotation,
		Color:    int(p.Color),
		X:        p.X,
		Y:        p.Y,
	}
}

// piece rebuilds a piece on a board of w by h cells. Anchors may sit at most
// one frame outside the board.
func (r *pieceRecord) piece(name string, w, h int) (*mino.Piece, error) {
	shape := mino.Shape(r.Shape)
	if !shape.Valid() {
		return nil, decodeErr(nil, "%s piece: unknown shape %d", name, r.Shape)
	}

	if n := len(shape.Variants()); r.Rotation < 0 || r.Rotation >= n {
		return nil, decodeErr(nil, "%s piece: rotation %d out of range for %s", name, r.Rotation, shape)
	}

	color := mino.Block(r.Color)
	if !color.Solid() {
		return nil, decodeErr(nil, "%s piece: color %d out of palette", name, r.Color)
	}

	if r.X < -mino.FrameSize || r.X > w || r.Y < -mino.FrameSize || r.Y > h {
		return nil, decodeErr(nil, "%s piece: anchor (%d,%d) off the board", name, r.X, r.Y)
	}

	return &mino.Piece{
		Point:    mino.Point{X: r.X, Y: r.Y},
		Shape:    shape,
		Color:    color,
		Rotation: r.Rotation,
	}, nil
}

// Save encodes the whole state. It fails rather than write a partial blob.
func Save(st game.State) ([]byte, error) {
	if st.Board == nil || st.Next == nil {
		return nil, fmt.Errorf("save: incomplete state")
	}

	cells := st.Board.Cells()
	rec := saveRecord{
		Width:   st.Board.W,
		Height:  st.Board.H,
		Cells:   make([]int, len(cells)),
		Current: toPieceRecord(st.Current),
		Next:    toPieceRecord(st.Next),
		Score:   st.Score,
		Level:   st.Level,
		Phase:   int(st.Phase),
		Paused:  st.Paused,
	}
	for i, c := range cells {
		rec.Cells[i] = int(c)
	}

	return msgpack.Marshal(&rec)
}

// Load decodes a blob produced by Save. Any failure is a *DecodeError.
func Load(data []byte) (game.State, error) {
	var (
		st  game.State
		rec saveRecord
	)

	if len(data) == 0 {
		return st, decodeErr(nil, "empty input")
	}

	r := bytes.NewReader(data)
	dec := msgpack.NewDecoder(r)
	dec.DisallowUnknownFields(true)
	if err := dec.Decode(&rec); err != nil {
		return st, decodeErr(err, "malformed blob")
	}
	if r.Len() != 0 {
		return st, decodeErr(nil, "trailing data")
	}

	if rec.Width <= 0 || rec.Height <= 0 || rec.Width > maxDimension || rec.Height > maxDimension {
		return st, decodeErr(nil, "bad dimensions %dx%d", rec.Width, rec.Height)
	}

	cells := make([]mino.Block, len(rec.Cells))
	for i, c := range rec.Cells {
		cells[i] = mino.Block(c)
	}

	board, err := mino.BoardFromCells(rec.Width, rec.Height, cells)
	if err != nil {
		return st, decodeErr(err, "board")
	}

	if rec.Next == nil {
		return st, decodeErr(nil, "missing next piece")
	}
	next, err := rec.Next.piece("next", rec.Width, rec.Height)
	if err != nil {
		return st, err
	}

	var current *mino.Piece
	if rec.Current != nil {
		if current, err = rec.Current.piece("current", rec.Width, rec.Height); err != nil {
			return st, err
		}
	}

	phase := game.Phase(rec.Phase)
	if !phase.Valid() {
		return st, decodeErr(nil, "unknown phase %d", rec.Phase)
	} else if rec.Score < 0 {
		return st, decodeErr(nil, "negative score %d", rec.Score)
	} else if rec.Level < 0 {
		return st, decodeErr(nil, "negative level %d", rec.Level)
	}

	if phase == game.PhaseRunning && current != nil && board.WouldCollide(current) {
		return st, decodeErr(nil, "current piece overlaps the board")
	}

	return game.State{
		Board:   board,
		Current: current,
		Next:    next,
		Score:   rec.Score,
		Level:   rec.Level,
		Phase:   phase,
		Paused:  rec.Paused,
	}, nil
}

// WriteSave atomically replaces the save slot at path.
func WriteSave(path string, st game.State) error {
	data, err := Save(st)
	if err != nil {
		return err
	}

	return renameio.WriteFile(path, data, 0o644)
}

// ReadSave loads the save slot at path. A missing file is reported as
// os.ErrNotExist.
func ReadSave(path string) (game.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return game.State{}, err
	}

	return Load(data)
}
