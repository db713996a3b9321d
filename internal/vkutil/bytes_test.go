package vkutil

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBytesToBytecode(t *testing.T) {
	module := []byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x03, 0x01, 0x00}

	code, err := BytesToBytecode(module)
	if err != nil {
		t.Fatalf("BytesToBytecode: %v", err)
	}
	if len(code) != 2 || code[0] != spirvMagic || code[1] != 0x00010300 {
		t.Errorf("unexpected words %#x", code)
	}
}

func TestBytesToBytecodeRejectsBadInput(t *testing.T) {
	tests := map[string][]byte{
		"empty":     nil,
		"unaligned": {0x03, 0x02, 0x23},
		"bad magic": {0xde, 0xad, 0xbe, 0xef},
	}

	for name, input := range tests {
		if _, err := BytesToBytecode(input); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestPack(t *testing.T) {
	b, err := Pack(struct{ Time float32 }{Time: 1})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if len(b) != 4 {
		t.Fatalf("len = %d, want 4", len(b))
	}

	matrix, err := Pack(mgl32.Ident4())
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if len(matrix) != 64 {
		t.Errorf("mat4 len = %d, want 64", len(matrix))
	}

	if _, err := Pack(map[string]int{}); err == nil {
		t.Error("expected an error for variable-size data")
	}
}
