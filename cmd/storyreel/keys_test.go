package main

import "testing"

func TestDecodeKey(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want keyEvent
	}{
		{"empty read", nil, keyNone},
		{"lone escape", []byte{0x1b}, keyEscape},
		{"arrow right", []byte{0x1b, '[', 'C'}, keyArrowRight},
		{"arrow left", []byte{0x1b, '[', 'D'}, keyArrowLeft},
		{"arrow up ignored", []byte{0x1b, '[', 'A'}, keyNone},
		{"space", []byte{' '}, keySpace},
		{"auto lower", []byte{'a'}, keyAuto},
		{"auto upper", []byte{'A'}, keyAuto},
		{"quit", []byte{'q'}, keyQuit},
		{"ctrl-c", []byte{0x03}, keyQuit},
		{"plain letter ignored", []byte{'x'}, keyNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := decodeKey(tc.in); got != tc.want {
				t.Fatalf("decodeKey(%v) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}
