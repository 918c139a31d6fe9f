package hostedcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, countLines(""))
	assert.Equal(t, 1, countLines("no newline"))
	assert.Equal(t, 2, countLines("one\ntwo"))
	assert.Equal(t, 2, countLines("one\n"))
	assert.Equal(t, 3, countLines("a\nb\nc"))
}

func TestLineDelta(t *testing.T) {
	cases := []struct {
		old, new       int
		added, removed int
	}{
		{0, 5, 5, 0},
		{5, 0, 0, 5},
		{3, 5, 5, 3},
		{5, 3, 3, 5},
		{4, 4, 4, 4},
		{0, 0, 0, 0},
	}
	for _, tc := range cases {
		added, removed := lineDelta(tc.old, tc.new)
		assert.Equal(t, tc.added, added, "old=%d new=%d", tc.old, tc.new)
		assert.Equal(t, tc.removed, removed, "old=%d new=%d", tc.old, tc.new)
	}
}

func TestDetectLanguage(t *testing.T) {
	lang := detectLanguage("src/main.go")
	if assert.NotNil(t, lang) {
		assert.Equal(t, "go", *lang)
	}
	lang = detectLanguage("UPPER/CASE.PY")
	if assert.NotNil(t, lang) {
		assert.Equal(t, "python", *lang)
	}
	assert.Nil(t, detectLanguage("Makefile"))
	assert.Nil(t, detectLanguage("weird.unknownext"))
}
