package suggest

import "unicode/utf8"

// Extremes returns the longest and shortest suggestion by character count.
// On ties the first suggestion encountered wins. ok is false for an empty
// list.
func Extremes(suggestions []string) (longest, shortest string, ok bool) {
	if len(suggestions) == 0 {
		return "", "", false
	}

	longest, shortest = suggestions[0], suggestions[0]
	maxLen := utf8.RuneCountInString(longest)
	minLen := maxLen
	for _, s := range suggestions[1:] {
		n := utf8.RuneCountInString(s)
		if n > maxLen {
			longest, maxLen = s, n
		}
		if n < minLen {
			shortest, minLen = s, n
		}
	}
	return longest, shortest, true
}
