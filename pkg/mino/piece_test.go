package mino

import (
	"testing"
)

func TestCatalog(t *testing.T) {
	expected := map[Shape]int{ShapeI: 2, ShapeZ: 2, ShapeS: 2, ShapeJ: 4, ShapeL: 4, ShapeT: 4, ShapeO: 1}

	for s := Shape(0); s < ShapeCount; s++ {
		variants := s.Variants()
		if len(variants) != expected[s] {
			t.Errorf("shape %s: expected %d variants, got %d", s, expected[s], len(variants))
		}

		for i, v := range variants {
			if len(v) != 4 {
				t.Errorf("shape %s variant %d has %d cells", s, i, len(v))
			}
			for _, index := range v {
				if index < 0 || index >= FrameSize*FrameSize {
					t.Errorf("shape %s variant %d has index %d outside the frame", s, i, index)
				}
			}
		}
	}

	if Shape(7).Variants() != nil {
		t.Error("unknown shape returned variants")
	}
}

func TestPieceRotate(t *testing.T) {
	for s := Shape(0); s < ShapeCount; s++ {
		p := NewPiece(s, 1, 10)
		n := len(s.Variants())

		for i := 1; i <= 2*n; i++ {
			p.Rotate()
			if p.Rotation != i%n {
				t.Fatalf("shape %s: rotation %d after %d turns", s, p.Rotation, i)
			}
		}
	}

	p := &Piece{Shape: ShapeT, Rotation: 6}
	if p.Image().String() != ShapeT.Variants()[2].String() {
		t.Error("image does not wrap the rotation index")
	}

	bad := &Piece{Shape: ShapeCount, Rotation: 1}
	bad.Rotate()
	if bad.Rotation != 1 || bad.Image() != nil {
		t.Errorf("invalid shape changed on rotate: %s", bad)
	}
}

func TestPieceSpawn(t *testing.T) {
	p := NewPiece(ShapeO, 3, 10)
	if p.X != 3 || p.Y != 0 {
		t.Errorf("expected anchor (3,0), got %s", p.Point)
	}

	p = NewPiece(ShapeO, 3, 7)
	if p.X != 1 {
		t.Errorf("expected floor-divided anchor 1, got %d", p.X)
	}

	want := []Point{{4, 0}, {5, 0}, {4, 1}, {5, 1}}
	got := NewPiece(ShapeO, 3, 10).Cells()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestGenerator(t *testing.T) {
	a, b := NewGenerator(42), NewGenerator(42)

	seen := make(map[Shape]bool)
	for i := 0; i < 200; i++ {
		pa, pb := a.Spawn(10), b.Spawn(10)
		if *pa != *pb {
			t.Fatalf("generators with equal seeds diverged at %d: %s != %s", i, pa, pb)
		}

		if !pa.Color.Solid() {
			t.Fatalf("drew color %d outside the palette", pa.Color)
		}
		if pa.Rotation != 0 || pa.Point != SpawnPoint(10) {
			t.Fatalf("unexpected spawn placement %s", pa)
		}

		seen[pa.Shape] = true
	}

	if len(seen) != ShapeCount {
		t.Errorf("expected all %d shapes in 200 draws, saw %d", ShapeCount, len(seen))
	}
}
