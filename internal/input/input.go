// Package input turns the raw byte stream of a terminal into per-frame
// input: quit and fire keys plus the mouse pointer reported through SGR
// mouse mode.
package input

import (
	"bufio"
)

// maxSequence bounds how far we scan for the end of an SGR mouse report.
const maxSequence = 32

// Pointer is a 0-based terminal cell. OK stays false until the terminal has
// reported the mouse at least once.
type Pointer struct {
	Col, Row int
	OK       bool
}

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Fire    bool    // Left button press or space, once per press
	Pointer Pointer // Last known mouse cell
	Pressed []byte  // Raw bytes read this frame
}

// Stream delivers input bytes via a channel and keeps the state that spans
// frames: the last pointer cell and any half-read escape sequence.
type Stream struct {
	ch      chan byte
	closed  bool
	pointer Pointer
	pending []byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has hit EOF or an error.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// parses them into an Input.
func ReadInput(s *Stream) Input {
	buf := append([]byte(nil), s.pending...)
	s.pending = s.pending[:0]

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := Input{Pressed: buf}
	s.parse(buf, &in)
	in.Pointer = s.pointer
	return in
}

// parse applies buf to in and the stream state. A trailing incomplete
// escape sequence is kept for the next call.
func (s *Stream) parse(buf []byte, in *Input) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == '\033' {
			n, complete := s.parseEscape(buf[i:], in)
			if !complete {
				s.pending = append(s.pending, buf[i:]...)
				return
			}
			i += n - 1
			continue
		}
		applyByte(in, b)
	}
}

// parseEscape handles a sequence starting with ESC. It returns the number of
// bytes consumed, or complete=false when the buffer ends mid-sequence.
func (s *Stream) parseEscape(data []byte, in *Input) (n int, complete bool) {
	if len(data) < 3 {
		if len(data) == 1 || data[1] == '[' {
			return 0, false
		}
		return 1, true
	}
	if data[1] != '[' {
		return 1, true
	}
	if data[2] != '<' {
		// Other CSI sequences (arrows, focus) are skipped up to their final byte.
		for j := 2; j < len(data) && j < maxSequence; j++ {
			if data[j] >= 0x40 && data[j] <= 0x7e {
				return j + 1, true
			}
		}
		if len(data) < maxSequence {
			return 0, false
		}
		return 1, true
	}

	end := 3
	for end < len(data) && end < maxSequence && data[end] != 'M' && data[end] != 'm' {
		end++
	}
	if end >= len(data) {
		if len(data) < maxSequence {
			return 0, false
		}
		return 1, true
	}
	if data[end] != 'M' && data[end] != 'm' {
		return 1, true
	}

	ev, ok := parseSGRMouse(data[3:end], data[end] == 'M')
	if !ok {
		return end + 1, true
	}
	s.pointer = Pointer{Col: ev.col, Row: ev.row, OK: true}
	if ev.leftPress {
		in.Fire = true
	}
	return end + 1, true
}

type mouseEvent struct {
	col, row  int
	leftPress bool
}

// parseSGRMouse decodes "Btn;X;Y". press is true for the 'M' terminator.
func parseSGRMouse(params []byte, press bool) (mouseEvent, bool) {
	var vals [3]int
	idx := 0
	digits := 0
	for _, c := range params {
		switch {
		case c >= '0' && c <= '9':
			vals[idx] = vals[idx]*10 + int(c-'0')
			digits++
		case c == ';':
			if digits == 0 || idx == 2 {
				return mouseEvent{}, false
			}
			idx++
			digits = 0
		default:
			return mouseEvent{}, false
		}
	}
	if idx != 2 || digits == 0 {
		return mouseEvent{}, false
	}

	btn, x, y := vals[0], vals[1], vals[2]
	// Bits 0-1: button (0=left). Bit 5: motion. Bit 6: wheel.
	buttonID := btn & 0x03
	isMotion := btn&32 != 0
	isScroll := btn&64 != 0

	return mouseEvent{
		col:       x - 1,
		row:       y - 1,
		leftPress: press && buttonID == 0 && !isMotion && !isScroll,
	}, true
}

// applyByte handles single-byte keys.
func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', 0x03: // Ctrl-C arrives as a byte in raw mode
		in.Quit = true
	case ' ':
		in.Fire = true
	}
}
