package pipeline_engine

import "strings"

// DefaultMaxChunkChars bounds the space-joined length of a chunk so each one
// fits a downstream model's input ceiling.
const DefaultMaxChunkChars = 1024

// Chunk splits text on whitespace into words and accumulates them into
// chunks. A chunk closes as soon as its joined length reaches maxChunkChars;
// the trailing partial buffer becomes the final chunk. Words are never split,
// so a single word longer than maxChunkChars passes through untruncated.
// Empty or whitespace-only input yields no chunks.
func Chunk(text string, maxChunkChars int) []string {
	if maxChunkChars <= 0 {
		maxChunkChars = DefaultMaxChunkChars
	}

	var (
		chunks  []string
		current []string
		joined  int
	)
	for _, word := range strings.Fields(text) {
		if len(current) > 0 {
			joined++ // separating space
		}
		current = append(current, word)
		joined += len(word)

		if joined >= maxChunkChars {
			chunks = append(chunks, strings.Join(current, " "))
			current = nil
			joined = 0
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

// ChunkAll re-chunks already-segmented text. The segments are rejoined with
// blank-line separators first, which supports feeding explanation or notes
// output back through the chunker.
func ChunkAll(parts []string, maxChunkChars int) []string {
	return Chunk(strings.Join(parts, "\n\n"), maxChunkChars)
}
