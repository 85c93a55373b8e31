package language

import (
	"errors"

	"github.com/abadojack/whatlanggo"
)

// ErrUndetermined is returned when the detector cannot reliably identify the
// language of the input. Callers treat it as "skip this post", never as fatal.
var ErrUndetermined = errors.New("could not determine language")

// Detector identifies the language of a piece of text.
type Detector interface {
	Detect(text string) (string, error)
}

// TrigramDetector detects languages with whatlanggo's trigram model.
type TrigramDetector struct{}

func NewTrigramDetector() TrigramDetector {
	return TrigramDetector{}
}

// Detect returns the ISO 639-1 code of the detected language.
func (TrigramDetector) Detect(text string) (string, error) {
	info := whatlanggo.Detect(text)
	if info.Lang == -1 || !info.IsReliable() {
		return "", ErrUndetermined
	}
	return info.Lang.Iso6391(), nil
}
