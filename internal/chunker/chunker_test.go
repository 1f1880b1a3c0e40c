package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitShortText(t *testing.T) {
	opts := DefaultOptions()

	chunks := Split("a short document", opts)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}

	if chunks[0] != "a short document" {
		t.Errorf("expected text unchanged, got %q", chunks[0])
	}
}

func TestSplitWordBoundariesWithOverlap(t *testing.T) {
	opts := Options{ChunkSize: 10, ChunkOverlap: 3}

	chunks := Split("ab cd ef gh ij", opts)

	expected := []string{"ab cd ef", "ef gh ij"}

	if len(chunks) != len(expected) {
		t.Fatalf("expected %d chunks, got %d: %v", len(expected), len(chunks), chunks)
	}

	for i, want := range expected {
		if chunks[i] != want {
			t.Errorf("chunk %d: expected %q, got %q", i, want, chunks[i])
		}
	}
}

func TestSplitRuneFallback(t *testing.T) {
	// no separators present - splitting falls through to runes
	opts := Options{ChunkSize: 5, ChunkOverlap: 2}

	chunks := Split("abcdefghij", opts)

	expected := []string{"abcde", "defgh", "ghij"}

	if len(chunks) != len(expected) {
		t.Fatalf("expected %d chunks, got %d: %v", len(expected), len(chunks), chunks)
	}

	for i, want := range expected {
		if chunks[i] != want {
			t.Errorf("chunk %d: expected %q, got %q", i, want, chunks[i])
		}
	}
}

func TestSplitPrefersParagraphBoundaries(t *testing.T) {
	opts := Options{ChunkSize: 30, ChunkOverlap: 5}

	chunks := Split("First paragraph here.\n\nSecond paragraph there.", opts)

	expected := []string{"First paragraph here.", "Second paragraph there."}

	if len(chunks) != len(expected) {
		t.Fatalf("expected %d chunks, got %d: %v", len(expected), len(chunks), chunks)
	}

	for i, want := range expected {
		if chunks[i] != want {
			t.Errorf("chunk %d: expected %q, got %q", i, want, chunks[i])
		}
	}
}

func TestSplitOverlongWordRecurses(t *testing.T) {
	opts := Options{ChunkSize: 10, ChunkOverlap: 0}

	chunks := Split("abcdefghijklmno xyz", opts)

	expected := []string{"abcdefghij", "klmno", "xyz"}

	if len(chunks) != len(expected) {
		t.Fatalf("expected %d chunks, got %d: %v", len(expected), len(chunks), chunks)
	}

	for i, want := range expected {
		if chunks[i] != want {
			t.Errorf("chunk %d: expected %q, got %q", i, want, chunks[i])
		}
	}
}

func TestSplitRespectsChunkSize(t *testing.T) {
	opts := DefaultOptions()

	var b strings.Builder
	for i := 0; i < 400; i++ {
		b.WriteString("some repeated words to fill a longer document body ")
	}

	chunks := Split(b.String(), opts)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks for a long document, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		if n := utf8.RuneCountInString(chunk); n > opts.ChunkSize {
			t.Errorf("chunk %d has %d runes, exceeds chunk size %d", i, n, opts.ChunkSize)
		}
	}
}

func TestSplitConsecutiveChunksOverlap(t *testing.T) {
	opts := Options{ChunkSize: 50, ChunkOverlap: 20}

	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("alpha beta gamma delta ")
	}

	chunks := Split(b.String(), opts)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prevTail := chunks[i-1]
		if utf8.RuneCountInString(prevTail) > opts.ChunkOverlap {
			runes := []rune(prevTail)
			prevTail = string(runes[len(runes)-opts.ChunkOverlap:])
		}

		// the next chunk must start inside the previous chunk's tail
		firstWord := strings.Fields(chunks[i])[0]
		if !strings.Contains(prevTail, firstWord) {
			t.Errorf("chunk %d does not overlap chunk %d: tail %q, next starts %q",
				i, i-1, prevTail, firstWord)
		}
	}
}

func TestSplitTextEmptyInput(t *testing.T) {
	if _, err := SplitText("", DefaultOptions()); err == nil {
		t.Fatal("expected error for empty text")
	}

	if _, err := SplitText("   \n\n  ", DefaultOptions()); err == nil {
		t.Fatal("expected error for whitespace-only text")
	}
}

func TestSplitTextIndexesChunks(t *testing.T) {
	opts := Options{ChunkSize: 10, ChunkOverlap: 0}

	chunks, err := SplitText("ab cd ef gh ij kl", opts)
	if err != nil {
		t.Fatalf("SplitText failed: %v", err)
	}

	for i, chunk := range chunks {
		if chunk.Index != i {
			t.Errorf("chunk %d carries index %d", i, chunk.Index)
		}

		if chunk.Content == "" {
			t.Errorf("chunk %d has empty content", i)
		}
	}
}

func TestSplitPages(t *testing.T) {
	opts := DefaultOptions()

	pages := []string{
		"Content of the first page.",
		"  ",
		"Content of the third page.",
	}

	chunks, err := SplitPages(pages, opts)
	if err != nil {
		t.Fatalf("SplitPages failed: %v", err)
	}

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks (blank page skipped), got %d", len(chunks))
	}

	if chunks[0].Index != 0 || chunks[1].Index != 1 {
		t.Errorf("chunk indexes must run across pages, got %d and %d",
			chunks[0].Index, chunks[1].Index)
	}
}

func TestSplitPagesAllBlank(t *testing.T) {
	if _, err := SplitPages([]string{"", "   "}, DefaultOptions()); err == nil {
		t.Fatal("expected error when no page has usable text")
	}
}

func TestJoinContents(t *testing.T) {
	chunks := []Chunk{
		{Content: "one", Index: 0},
		{Content: "two", Index: 1},
	}

	if joined := JoinContents(chunks); joined != "one two" {
		t.Errorf("expected \"one two\", got %q", joined)
	}
}
