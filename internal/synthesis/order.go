package synthesis

import (
	"strings"
)

const (
	StatusQueued = "queued"

	orderPreviewChars = 100
	wordsPerMinute    = 150

	orderMessage = "Nigerian voice generation queued for manual processing"
	orderContact = "We will email you the audio file within 2-4 hours"
	orderPricing = "₦200 per minute for express delivery"
)

// OrderRecord describes a synthesis job for a human to fulfil. It is built
// per request and never stored by this package.
type OrderRecord struct {
	ID               int64   `json:"id"`
	Text             string  `json:"text"`
	Voice            string  `json:"voice"`
	Speed            float64 `json:"speed"`
	Status           string  `json:"status"`
	Message          string  `json:"message"`
	EstimatedMinutes int     `json:"estimatedMinutes"`
	Contact          string  `json:"contact"`
	Pricing          string  `json:"pricing"`
}

// NewOrder builds the order record for validated params.
func NewOrder(id int64, p Params) OrderRecord {
	return OrderRecord{
		ID:               id,
		Text:             truncate(p.Text, orderPreviewChars),
		Voice:            p.Voice,
		Speed:            p.Speed,
		Status:           StatusQueued,
		Message:          orderMessage,
		EstimatedMinutes: ceilDiv(WordCount(p.Text), wordsPerMinute),
		Contact:          orderContact,
		Pricing:          orderPricing,
	}
}

// WordCount counts fields separated by single spaces. Runs of spaces count as
// empty words, and a text without spaces is one word.
func WordCount(text string) int {
	return strings.Count(text, " ") + 1
}

// truncate keeps the first n characters and appends "..." only when
// something was cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// prefix keeps at most the first n characters.
func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
