package pipeline_engine

import (
	"strings"
	"testing"
)

func TestChunkRoundTrip(t *testing.T) {
	texts := []string{
		"one two three",
		strings.Repeat("lorem ipsum dolor sit amet ", 200),
		"  leading   and \n trailing \t whitespace  ",
	}
	for _, text := range texts {
		chunks := Chunk(text, 64)
		joined := strings.Join(chunks, " ")
		want := strings.Join(strings.Fields(text), " ")
		if joined != want {
			t.Errorf("round trip mismatch:\n got %q\nwant %q", joined, want)
		}
	}
}

func TestChunkNeverSplitsWords(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta epsilon ", 100)
	words := strings.Fields(text)

	for _, max := range []int{8, 32, 1024} {
		var rejoined []string
		for _, c := range Chunk(text, max) {
			rejoined = append(rejoined, strings.Fields(c)...)
		}
		if len(rejoined) != len(words) {
			t.Fatalf("max=%d: got %d words, want %d", max, len(rejoined), len(words))
		}
		for i, w := range rejoined {
			if w != words[i] {
				t.Fatalf("max=%d: word %d is %q, want %q", max, i, w, words[i])
			}
		}
	}
}

func TestChunkClosesAtThreshold(t *testing.T) {
	text := strings.Repeat("word ", 500)
	max := 100
	chunks := Chunk(text, max)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	// Every chunk except the trailing partial one closed at or past the
	// threshold.
	for i, c := range chunks[:len(chunks)-1] {
		if len(c) < max {
			t.Errorf("chunk %d closed early: len=%d max=%d", i, len(c), max)
		}
	}
}

func TestChunkLongWordPassesThrough(t *testing.T) {
	long := strings.Repeat("x", 50)
	chunks := Chunk(long, 10)
	if len(chunks) != 1 || chunks[0] != long {
		t.Fatalf("long word should pass through untruncated, got %v", chunks)
	}
}

func TestChunkDegenerateInput(t *testing.T) {
	if got := Chunk("", 1024); got != nil {
		t.Errorf("empty input: got %v, want nil", got)
	}
	if got := Chunk("   \n\t  ", 1024); got != nil {
		t.Errorf("whitespace input: got %v, want nil", got)
	}
}

func TestChunkDefaultThreshold(t *testing.T) {
	text := strings.Repeat("abcdefgh ", 300) // ~2700 chars
	chunks := Chunk(text, 0)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks at default threshold, got %d", len(chunks))
	}
}

func TestChunkAllRejoinsSegments(t *testing.T) {
	parts := []string{"first segment here", "second segment here"}
	chunks := ChunkAll(parts, 1024)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	want := "first segment here second segment here"
	if chunks[0] != want {
		t.Errorf("got %q, want %q", chunks[0], want)
	}
}
