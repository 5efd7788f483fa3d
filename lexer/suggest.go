package lexer

import "github.com/sahilm/fuzzy"

// maxSuggestions bounds the number of alternatives offered for an unknown
// flag.
const maxSuggestions = 3

// suggest returns up to maxSuggestions candidates that fuzzy-match word,
// best match first.
func suggest(word string, candidates []string) []string {
	if word == "" || len(candidates) == 0 {
		return nil
	}

	matches := fuzzy.Find(word, candidates)

	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if len(out) == cap(out) {
			break
		}

		out = append(out, m.Str)
	}

	return out
}
