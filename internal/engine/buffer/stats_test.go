package buffer

import "testing"

func TestCharacterCount(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{"empty", []string{""}, 0},
		{"single", []string{"hello"}, 5},
		{"twoLines", []string{"ab", "cd"}, 5}, // 4 runes + 1 break
		{"unicode", []string{"héllo"}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromLines(tt.lines)
			if got := b.CharacterCount(); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestGraphemeCount(t *testing.T) {
	// The combining acute accent makes two runes render as one character.
	b := NewFromLines([]string{"é"})

	if got := b.CharacterCount(); got != 2 {
		t.Errorf("expected 2 runes, got %d", got)
	}
	if got := b.GraphemeCount(); got != 1 {
		t.Errorf("expected 1 grapheme, got %d", got)
	}
}

func TestWordCount(t *testing.T) {
	b := NewFromLines([]string{"one two  three", "", "four"})

	if got := b.WordCount(); got != 4 {
		t.Errorf("expected 4 words, got %d", got)
	}
}
