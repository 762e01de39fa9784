package synthesis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	DefaultVoice = "lagos-female"
	DefaultSpeed = 1.0

	// MaxTextChars is the demo limit on text length, in characters.
	MaxTextChars = 500
)

// SynthesisRequest is the decoded POST body. Voice and Speed are pointers so
// an absent field can be told apart from a zero value.
type SynthesisRequest struct {
	Text  *string  `json:"text"`
	Voice *string  `json:"voice,omitempty"`
	Speed *float64 `json:"speed,omitempty"`
}

// Params is a validated request with defaults applied.
type Params struct {
	Text  string
	Voice string
	Speed float64
}

// DecodeRequest parses a JSON body holding exactly one object. An empty body,
// a bare null and trailing content are decode errors, not missing-text errors.
func DecodeRequest(body []byte) (SynthesisRequest, error) {
	var req *SynthesisRequest
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&req); err != nil {
		return SynthesisRequest{}, fmt.Errorf("decode request body: %w", err)
	}
	if req == nil {
		return SynthesisRequest{}, errors.New("decode request body: body is null")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return SynthesisRequest{}, errors.New("decode request body: unexpected data after object")
	}
	return *req, nil
}

// isBlank reports whether s is empty after trimming the ECMAScript whitespace
// set: Unicode White_Space minus U+0085, plus U+FEFF.
func isBlank(s string) bool {
	return strings.TrimFunc(s, func(r rune) bool {
		return r == '\uFEFF' || (r != '\u0085' && unicode.IsSpace(r))
	}) == ""
}

// Validate checks the text and fills in defaults for voice and speed.
func (r SynthesisRequest) Validate() (Params, error) {
	if r.Text == nil || isBlank(*r.Text) {
		return Params{}, ErrNoText
	}
	if utf8.RuneCountInString(*r.Text) > MaxTextChars {
		return Params{}, ErrTextTooLong
	}

	p := Params{Text: *r.Text, Voice: DefaultVoice, Speed: DefaultSpeed}
	if r.Voice != nil {
		p.Voice = *r.Voice
	}
	if r.Speed != nil {
		p.Speed = *r.Speed
	}
	return p, nil
}
