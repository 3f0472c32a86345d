package main

import (
	"io"
)

// keyEvent is one decoded keyboard input from the raw terminal.
type keyEvent int

const (
	keyNone keyEvent = iota
	keyEscape
	keyArrowLeft
	keyArrowRight
	keySpace
	keyAuto
	keyQuit
)

// decodeKey maps one raw terminal read to a key event. Arrow keys arrive as
// CSI sequences (ESC [ C / ESC [ D); a lone ESC byte is the Escape key.
func decodeKey(buf []byte) keyEvent {
	if len(buf) == 0 {
		return keyNone
	}
	if buf[0] == 0x1b {
		if len(buf) == 1 {
			return keyEscape
		}
		if len(buf) >= 3 && buf[1] == '[' {
			switch buf[2] {
			case 'C':
				return keyArrowRight
			case 'D':
				return keyArrowLeft
			}
		}
		return keyNone
	}
	switch buf[0] {
	case ' ':
		return keySpace
	case 'a', 'A':
		return keyAuto
	case 'q', 'Q', 0x03: // Ctrl-C in raw mode
		return keyQuit
	}
	return keyNone
}

// readKeys reads raw terminal input and delivers decoded key events until the
// reader fails or quit closes.
func readKeys(r io.Reader, events chan<- keyEvent, quit <-chan struct{}) {
	buf := make([]byte, 8)
	for {
		n, err := r.Read(buf)
		if err != nil {
			return
		}
		key := decodeKey(buf[:n])
		if key == keyNone {
			continue
		}
		select {
		case events <- key:
		case <-quit:
			return
		}
	}
}
