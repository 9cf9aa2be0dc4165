// Package langdetect classifies the language of a message.
package langdetect

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// DefaultTag is returned when no language can be determined.
const DefaultTag = "en"

// Detector returns an ISO 639-1 language tag for a piece of text.
type Detector interface {
	Detect(text string) string
}

// WhatLang detects languages with the whatlanggo trigram classifier.
type WhatLang struct{}

// Detect returns the detected language tag, or DefaultTag when the text is
// empty or the detected language has no ISO 639-1 code. The classifier's
// confidence is not gated: short chat messages score low even when the
// detected language is correct.
func (WhatLang) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return DefaultTag
	}
	info := whatlanggo.Detect(text)
	if code := info.Lang.Iso6391(); code != "" {
		return code
	}
	return DefaultTag
}
