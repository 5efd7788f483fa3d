package lexer

// Count returns the number of chunks at or after index skip that are equal to
// pattern.
func Count(chunks []string, pattern string, skip int) int {
	n := 0

	for i := max(skip, 0); i < len(chunks); i++ {
		if chunks[i] == pattern {
			n++
		}
	}

	return n
}

// Read returns count chunks starting at index skip. The range is clamped to
// the bounds of chunks.
func Read(chunks []string, count, skip int) []string {
	lo := min(max(skip, 0), len(chunks))
	hi := min(lo+max(count, 0), len(chunks))

	out := make([]string, hi-lo)
	copy(out, chunks[lo:hi])

	return out
}

// ReadUntil returns the chunks from index *at up to, but excluding, the first
// chunk equal to end. On return *at holds the index of that chunk, or
// len(chunks) if end was not found.
//
// ReadUntil splits a command line into segments separated by a marker, e.g.
// the arguments of several sub-invocations joined by ";".
func ReadUntil(chunks []string, end string, at *int) []string {
	var out []string

	i := max(*at, 0)
	for ; i < len(chunks); i++ {
		if chunks[i] == end {
			break
		}

		out = append(out, chunks[i])
	}

	*at = i

	return out
}
