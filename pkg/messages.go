package pkg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/qnkhuat/gestris/pkg/gesture"
)

// MessageFrame is one hand tracker sample on the wire:
//
//	{"hand":true,"fingers":[0,1,0,0,1]}
//
// Fingers are thumb first. Each entry may be 0/1 or false/true.
type MessageFrame struct {
	Hand    bool         `json:"hand"`
	Fingers []fingerFlag `json:"fingers"`
}

type fingerFlag bool

func (f *fingerFlag) UnmarshalJSON(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "1", "true":
		*f = true
	case "0", "false":
		*f = false
	default:
		return fmt.Errorf("finger value %s is not 0, 1, true or false", b)
	}

	return nil
}

// TimedFrame is a decoded frame stamped with its arrival time.
type TimedFrame struct {
	At    time.Time
	Frame gesture.Frame
}

// DecodeFrame parses one tracker message. A message without a hand may omit
// the fingers; otherwise exactly five are required.
func DecodeFrame(data []byte) (gesture.Frame, error) {
	var (
		msg   MessageFrame
		frame gesture.Frame
	)

	if err := json.Unmarshal(data, &msg); err != nil {
		return frame, fmt.Errorf("%w: %v", gesture.ErrMalformedFrame, err)
	}

	if !msg.Hand && len(msg.Fingers) == 0 {
		return frame, nil
	}

	flags := make([]bool, len(msg.Fingers))
	for i, f := range msg.Fingers {
		flags[i] = bool(f)
	}

	fingers, err := gesture.FingersFromSlice(flags)
	if err != nil {
		return frame, err
	}

	frame.Hand = msg.Hand
	frame.Fingers = fingers
	return frame, nil
}

// EncodeFrame is the inverse of DecodeFrame, using 0/1 fingers.
func EncodeFrame(frame gesture.Frame) []byte {
	fingers := make([]int, len(frame.Fingers))
	for i, up := range frame.Fingers {
		if up {
			fingers[i] = 1
		}
	}

	data, _ := json.Marshal(struct {
		Hand    bool  `json:"hand"`
		Fingers []int `json:"fingers"`
	}{frame.Hand, fingers})

	return data
}
