package chunker

import (
	"strings"
	"unicode/utf8"
)

// picks the first separator present in the text and splits on it; pieces
// still longer than ChunkSize recurse onto the remaining separators
func splitRecursive(text string, separators []string, opts Options) []string {
	separator := separators[len(separators)-1]
	var remaining []string

	for i, s := range separators {
		if s == "" || strings.Contains(text, s) {
			separator = s
			remaining = separators[i+1:]
			break
		}
	}

	splits := splitOn(text, separator)

	var chunks []string
	var pending []string

	for _, split := range splits {
		if utf8.RuneCountInString(split) < opts.ChunkSize {
			pending = append(pending, split)
			continue
		}

		if len(pending) > 0 {
			chunks = append(chunks, mergeSplits(pending, separator, opts)...)
			pending = nil
		}

		if len(remaining) == 0 {
			chunks = append(chunks, split)
		} else {
			chunks = append(chunks, splitRecursive(split, remaining, opts)...)
		}
	}

	if len(pending) > 0 {
		chunks = append(chunks, mergeSplits(pending, separator, opts)...)
	}

	return chunks
}

// splits text on the separator, dropping empty pieces.
// the empty separator splits into individual runes.
func splitOn(text, separator string) []string {
	var parts []string

	if separator == "" {
		for _, r := range text {
			parts = append(parts, string(r))
		}
		return parts
	}

	for _, part := range strings.Split(text, separator) {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return parts
}

// greedily packs splits into chunks of at most ChunkSize runes, then drops
// leading splits until the window fits inside ChunkOverlap so the tail of
// one chunk opens the next
func mergeSplits(splits []string, separator string, opts Options) []string {
	separatorLen := utf8.RuneCountInString(separator)

	var docs []string
	var current []string
	total := 0

	for _, split := range splits {
		splitLen := utf8.RuneCountInString(split)

		extra := 0
		if len(current) > 0 {
			extra = separatorLen
		}

		if total+splitLen+extra > opts.ChunkSize && len(current) > 0 {
			if doc := joinSplits(current, separator); doc != "" {
				docs = append(docs, doc)
			}

			for len(current) > 0 && (total > opts.ChunkOverlap ||
				(total+splitLen+extra > opts.ChunkSize && total > 0)) {
				drop := utf8.RuneCountInString(current[0])
				if len(current) > 1 {
					drop += separatorLen
				}

				total -= drop
				current = current[1:]

				if len(current) == 0 {
					extra = 0
				}
			}
		}

		current = append(current, split)
		total += splitLen
		if len(current) > 1 {
			total += separatorLen
		}
	}

	if doc := joinSplits(current, separator); doc != "" {
		docs = append(docs, doc)
	}

	return docs
}

func joinSplits(splits []string, separator string) string {
	return strings.TrimSpace(strings.Join(splits, separator))
}
