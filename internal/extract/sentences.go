package extract

import (
	"strings"
	"unicode"
)

// DefaultMinSentenceLength drops fragments such as headings and list bullets
const DefaultMinSentenceLength = 10

// Sentence is a trimmed sentence span within a text
type Sentence struct {
	Text  string
	Start int // Byte offset, inclusive
	End   int // Byte offset, exclusive
}

// abbreviations that end in a period without ending the sentence
var abbreviations = map[string]bool{
	"al": true, "e.g": true, "i.e": true, "cf": true, "p": true, "pp": true,
	"vs": true, "etc": true, "dr": true, "mr": true, "mrs": true, "ms": true,
	"no": true, "fig": true, "dept": true, "inc": true, "approx": true, "st": true,
	"jr": true, "sr": true, "vol": true, "ed": true, "eds": true,
}

// maxBracketSpan bounds how far a bracket may reach and still shield the
// terminators inside it
const maxBracketSpan = 240

// SplitSentences splits text on . ! ? boundaries (terminator followed by
// whitespace or end of text), ignoring terminators inside closed parentheses
// or brackets and after common abbreviations. An unclosed bracket is plain
// text. Trimmed sentences shorter than minLength are dropped.
func SplitSentences(text string, minLength int) []Sentence {
	var sentences []Sentence
	start := 0

	emit := func(from, to int) {
		s, e := trimSpan(text, from, to)
		if e-s >= minLength && e > s {
			sentences = append(sentences, Sentence{Text: text[s:e], Start: s, End: e})
		}
	}

	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '(', '[':
			if closer := matchingCloser(text, i); closer > 0 {
				i = closer
			}
		case '.', '!', '?':
			if c == '.' && isAbbreviation(text, i) {
				continue
			}
			end := skipClosers(text, i+1)
			if end < len(text) && !isSpace(text[end]) {
				continue
			}
			emit(start, end)
			start = end
			i = end - 1
		}
	}

	if start < len(text) {
		emit(start, len(text))
	}

	return sentences
}

// matchingCloser returns the index of the bracket closing the one at open,
// or -1 when it does not close within maxBracketSpan
func matchingCloser(text string, open int) int {
	depth := 0
	limit := open + maxBracketSpan
	if limit > len(text) {
		limit = len(text)
	}
	for i := open; i < limit; i++ {
		switch text[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// sentenceAt returns the sentence containing offset, using an unfiltered split.
// A marker that opens a sentence (e.g. "Claim. [1] Next") belongs to the
// previous sentence.
func sentenceAt(sentences []Sentence, offset int) (Sentence, bool) {
	for i, s := range sentences {
		if offset < s.Start || offset >= s.End {
			continue
		}
		if offset == s.Start && i > 0 {
			return sentences[i-1], true
		}
		return s, true
	}
	// Offset fell in whitespace between sentences; attach to the preceding one
	for i := len(sentences) - 1; i >= 0; i-- {
		if sentences[i].End <= offset {
			return sentences[i], true
		}
	}
	return Sentence{}, false
}

func isAbbreviation(text string, dot int) bool {
	j := dot
	for j > 0 {
		r := text[j-1]
		if r == '.' || unicode.IsLetter(rune(r)) {
			j--
			continue
		}
		break
	}
	word := strings.ToLower(text[j:dot])
	if word == "" {
		return false
	}
	if len(word) == 1 && isInitial(text, j, dot) {
		return true
	}
	return abbreviations[word]
}

// isInitial reports whether the letter at text[at] is a name initial such as
// the J in "J. Smith" or "Mary J. Blige": an upper-case letter followed by a
// capitalized word and preceded by text start, a capitalized word or another
// initial. "option B. The" is a sentence end.
func isInitial(text string, at, dot int) bool {
	if !unicode.IsUpper(rune(text[at])) {
		return false
	}
	if dot+2 >= len(text) || !isSpace(text[dot+1]) || !unicode.IsUpper(rune(text[dot+2])) {
		return false
	}

	k := at
	for k > 0 && isSpace(text[k-1]) {
		k--
	}
	if k == 0 {
		return true
	}
	if k == at {
		// Attached to punctuation such as an opening quote
		return false
	}
	m := k
	for m > 0 && !isSpace(text[m-1]) {
		m--
	}
	return unicode.IsUpper(rune(text[m]))
}

func skipClosers(text string, i int) int {
	for i < len(text) {
		switch {
		case text[i] == '"' || text[i] == '\'' || text[i] == ')' || text[i] == ']':
			i++
		case strings.HasPrefix(text[i:], "”"), strings.HasPrefix(text[i:], "’"):
			i += len("”")
		default:
			return i
		}
	}
	return i
}

func trimSpan(text string, start, end int) (int, int) {
	for start < end && isSpace(text[start]) {
		start++
	}
	for end > start && isSpace(text[end-1]) {
		end--
	}
	return start, end
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}
