package submissions

import "strings"

// CountWords reports the number of whitespace-delimited tokens in s: the
// string is trimmed, split on runs of whitespace, and empty tokens are
// dropped. Interactive clients mirror this exact algorithm for live feedback,
// so it must stay this naive; a smarter tokenizer would disagree with the
// counts users see while typing.
func CountWords(s string) int {
	return len(strings.Fields(s))
}
