package mino

import (
	"sort"
	"strconv"
	"strings"
)

// FrameSize is the edge of the local frame every rotation variant lives in.
const FrameSize = 4

type Shape int

const (
	ShapeI Shape = iota
	ShapeZ
	ShapeS
	ShapeJ
	ShapeL
	ShapeT
	ShapeO

	ShapeCount = 7
)

// Variant is one rotation layout: occupied indices of the 4x4 local frame,
// index = row*4 + col.
type Variant []int

var catalog = [ShapeCount][]Variant{
	ShapeI: {{1, 5, 9, 13}, {4, 5, 6, 7}},
	ShapeZ: {{4, 5, 9, 10}, {2, 6, 5, 9}},
	ShapeS: {{6, 7, 9, 10}, {1, 5, 6, 10}},
	ShapeJ: {{1, 2, 5, 9}, {0, 4, 5, 6}, {1, 5, 9, 8}, {4, 5, 6, 10}},
	ShapeL: {{1, 2, 6, 10}, {5, 6, 7, 9}, {2, 6, 10, 11}, {3, 5, 6, 7}},
	ShapeT: {{1, 4, 5, 6}, {1, 4, 5, 9}, {4, 5, 6, 9}, {1, 5, 6, 9}},
	ShapeO: {{1, 2, 5, 6}},
}

func (s Shape) Valid() bool {
	return s >= 0 && s < ShapeCount
}

// Variants returns the rotation variants of s. The slice is shared and must
// not be modified.
func (s Shape) Variants() []Variant {
	if !s.Valid() {
		return nil
	}

	return catalog[s]
}

func (s Shape) String() string {
	switch s {
	case ShapeI:
		return "I"
	case ShapeZ:
		return "Z"
	case ShapeS:
		return "S"
	case ShapeJ:
		return "J"
	case ShapeL:
		return "L"
	case ShapeT:
		return "T"
	case ShapeO:
		return "O"
	default:
		return "Shape(" + strconv.Itoa(int(s)) + ")"
	}
}

func (v Variant) Has(index int) bool {
	for _, i := range v {
		if i == index {
			return true
		}
	}

	return false
}

// Points returns the occupied local cells as points, top-left first.
func (v Variant) Points() []Point {
	points := make([]Point, len(v))
	for i, index := range v {
		points[i] = Point{index % FrameSize, index / FrameSize}
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Y < points[j].Y || (points[i].Y == points[j].Y && points[i].X < points[j].X)
	})

	return points
}

// String draws the variant inside its local frame.
func (v Variant) String() string {
	var b strings.Builder
	for row := 0; row < FrameSize; row++ {
		for col := 0; col < FrameSize; col++ {
			if v.Has(row*FrameSize + col) {
				b.WriteRune('#')
			} else {
				b.WriteRune('.')
			}
		}

		if row < FrameSize-1 {
			b.WriteRune('\n')
		}
	}

	return b.String()
}
