package suggest

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// hiddenSelector matches elements the page does not display.
const hiddenSelector = `[hidden], [aria-hidden="true"], ` +
	`[style*="display:none"], [style*="display: none"], ` +
	`[style*="visibility:hidden"], [style*="visibility: hidden"]`

// ParseSuggestions returns the trimmed displayed text of every element in
// html matching selector, in document order. Hidden elements, and hidden
// descendants of shown ones, contribute no text. Elements with no text are
// dropped.
func ParseSuggestions(html, selector string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	var out []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if s.Is(hiddenSelector) || s.ParentsFiltered(hiddenSelector).Length() > 0 {
			return
		}
		shown := s.Clone()
		shown.Find(hiddenSelector).Remove()
		if text := strings.TrimSpace(shown.Text()); text != "" {
			out = append(out, text)
		}
	})
	return out, nil
}
