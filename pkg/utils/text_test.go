package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeWords(t *testing.T) {
	assert.Equal(t,
		[]string{"the", "krebs", "cycle", "isn't", "simple"},
		TokenizeWords("The Krebs cycle isn't simple."))

	assert.Empty(t, TokenizeWords("  ... !! "))
}

func TestMissingWords(t *testing.T) {
	source := "Photosynthesis converts sunlight into chemical energy inside chloroplasts using chlorophyll."

	t.Run("finds source words absent from response", func(t *testing.T) {
		missed := MissingWords(source, "Plants turn light into energy.", 10)
		assert.Contains(t, missed, "photosynthesis")
		assert.Contains(t, missed, "chloroplasts")
		assert.NotContains(t, missed, "energy")
	})

	t.Run("short words are skipped", func(t *testing.T) {
		missed := MissingWords("the cat sat", "dogs bark", 10)
		assert.Empty(t, missed)
	})

	t.Run("limit caps the result", func(t *testing.T) {
		missed := MissingWords(source, "nothing relevant", 2)
		assert.Len(t, missed, 2)
	})

	t.Run("complete response misses nothing", func(t *testing.T) {
		missed := MissingWords(source, source, 10)
		assert.Empty(t, missed)
	})
}
