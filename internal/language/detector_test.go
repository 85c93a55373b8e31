package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectEnglish(t *testing.T) {
	detector := NewTrigramDetector()

	lang, err := detector.Detect(
		"The quick brown fox jumps over the lazy dog and keeps on running " +
			"through the green fields until the sun goes down behind the hills.")
	assert.Nil(t, err)
	assert.Equal(t, "en", lang)
}

func TestDetectNonEnglish(t *testing.T) {
	detector := NewTrigramDetector()

	lang, err := detector.Detect(
		"El rápido zorro marrón salta sobre el perro perezoso y sigue " +
			"corriendo por los campos verdes hasta que el sol se esconde.")
	assert.Nil(t, err)
	assert.NotEqual(t, "en", lang)
}

func TestDetectUndetermined(t *testing.T) {
	detector := NewTrigramDetector()

	_, err := detector.Detect("")
	assert.ErrorIs(t, err, ErrUndetermined)
}
