package fileutil

import (
	"testing"
)

func TestFromShiftJIS(t *testing.T) {
	// Shift-JISエンコードされた "あいうえお"
	sjis := string([]byte{0x82, 0xA0, 0x82, 0xA2, 0x82, 0xA4, 0x82, 0xA6, 0x82, 0xA8})

	got, err := FromShiftJIS(sjis)
	if err != nil {
		t.Fatalf("FromShiftJIS failed: %v", err)
	}
	if got != "あいうえお" {
		t.Errorf("Expected 'あいうえお', got '%s'", got)
	}
}

func TestToShiftJIS(t *testing.T) {
	got, err := ToShiftJIS("あ")
	if err != nil {
		t.Fatalf("ToShiftJIS failed: %v", err)
	}
	expected := string([]byte{0x82, 0xA0})
	if got != expected {
		t.Errorf("Expected %x, got %x", expected, got)
	}
}

func TestShiftJIS_往復変換(t *testing.T) {
	tests := []string{
		"",
		"ascii only",
		"- あ",
		"新規プロジェクト",
	}

	for _, input := range tests {
		encoded, err := ToShiftJIS(input)
		if err != nil {
			t.Fatalf("ToShiftJIS(%s) failed: %v", input, err)
		}
		decoded, err := FromShiftJIS(encoded)
		if err != nil {
			t.Fatalf("FromShiftJIS failed: %v", err)
		}
		if decoded != input {
			t.Errorf("Round trip mismatch: %s -> %s", input, decoded)
		}
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a.wav", "a"},
		{"_ああいあうえあ.wav", "_ああいあうえあ"},
		{"noext", "noext"},
		{"dir/sample.wav", "sample"},
	}

	for _, test := range tests {
		result := Stem(test.input)
		if result != test.expected {
			t.Errorf("Stem(%s) = %s; want %s", test.input, result, test.expected)
		}
	}
}
