package chunker

import (
	"fmt"
	"strings"
)

// controls how text is split into chunks
type Options struct {
	ChunkSize    int // maximum chunk length in runes
	ChunkOverlap int // runes carried over between consecutive chunks
}

// a single piece of split text
type Chunk struct {
	Content string
	Index   int
}

// separators tried in order; the empty string falls back to splitting on runes
var defaultSeparators = []string{"\n\n", "\n", " ", ""}

func DefaultOptions() Options {
	return Options{
		ChunkSize:    500,
		ChunkOverlap: 100,
	}
}

// splits text recursively on paragraph, line, word and finally rune
// boundaries, merging pieces into chunks of at most ChunkSize runes with
// ChunkOverlap runes of trailing context carried into the next chunk.
// whitespace-only pieces are dropped.
func Split(text string, opts Options) []string {
	return splitRecursive(text, defaultSeparators, opts)
}

// splits a document body and returns indexed chunks.
// empty input and input that yields no usable chunks are errors.
func SplitText(text string, opts Options) ([]Chunk, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("cannot process empty text")
	}

	pieces := Split(text, opts)

	chunks := make([]Chunk, 0, len(pieces))

	for _, piece := range pieces {
		if strings.TrimSpace(piece) == "" {
			continue
		}

		chunks = append(chunks, Chunk{
			Content: piece,
			Index:   len(chunks),
		})
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("document splitting produced no valid chunks")
	}

	return chunks, nil
}

// splits several page texts in order and returns one combined chunk list.
// pages that contain no usable text are skipped; chunk indexes run across
// the whole document.
func SplitPages(pages []string, opts Options) ([]Chunk, error) {
	var chunks []Chunk

	for _, page := range pages {
		if strings.TrimSpace(page) == "" {
			continue
		}

		for _, piece := range Split(page, opts) {
			if strings.TrimSpace(piece) == "" {
				continue
			}

			chunks = append(chunks, Chunk{
				Content: piece,
				Index:   len(chunks),
			})
		}
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("document splitting produced no valid chunks")
	}

	return chunks, nil
}

// joins chunk contents with single spaces; the source text for document
// statistics and structured extraction
func JoinContents(chunks []Chunk) string {
	parts := make([]string, len(chunks))

	for i, chunk := range chunks {
		parts[i] = chunk.Content
	}

	return strings.Join(parts, " ")
}
