package utils

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSON(t *testing.T) {
	t.Run("plain JSON passes through", func(t *testing.T) {
		assert.Equal(t, `{"a":1}`, CleanJSON(`{"a":1}`))
	})

	t.Run("strips fenced block", func(t *testing.T) {
		in := "```json\n{\"a\":1}\n```"
		assert.Equal(t, `{"a":1}`, CleanJSON(in))
	})

	t.Run("strips bare fences", func(t *testing.T) {
		in := "```\n[1,2]\n```"
		assert.Equal(t, `[1,2]`, CleanJSON(in))
	})
}

func TestStripThink(t *testing.T) {
	in := "<think>hmm, let me see</think>\n{\"a\":1}"
	assert.Equal(t, `{"a":1}`, StripThink(in))

	assert.Equal(t, "no tags here", StripThink("no tags here"))
}

func TestClampJSON(t *testing.T) {
	t.Run("trims prose around object", func(t *testing.T) {
		in := `Here you go: {"questions":[]} hope that helps!`
		assert.Equal(t, `{"questions":[]}`, ClampJSON(in))
	})

	t.Run("trims prose around array", func(t *testing.T) {
		in := `The result is [1,2,3].`
		assert.Equal(t, `[1,2,3]`, ClampJSON(in))
	})

	t.Run("array before object wins", func(t *testing.T) {
		in := `[{"a":1}]`
		assert.Equal(t, `[{"a":1}]`, ClampJSON(in))
	})

	t.Run("no JSON returns input", func(t *testing.T) {
		assert.Equal(t, "nothing here", ClampJSON("nothing here"))
	})
}

func TestExtractJSON(t *testing.T) {
	in := "<think>reasoning</think>\n```json\nSure: {\"terms\":[]}\n```"
	assert.Equal(t, `{"terms":[]}`, ExtractJSON(in))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("Mitochondria", "mitochondria"))
	assert.Greater(t, Similarity("mitochondria", "mitochondrion"), 0.7)
	assert.Less(t, Similarity("mitochondria", "ribosome"), 0.4)
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, Levenshtein("abc", "abc"))
	assert.Equal(t, 3, Levenshtein("", "abc"))
	assert.Equal(t, 3, Levenshtein("kitten", "sitting"))
}

func TestChunkText(t *testing.T) {
	t.Run("short text is one chunk", func(t *testing.T) {
		assert.Equal(t, []string{"hello world"}, ChunkText("hello world", 100))
	})

	t.Run("empty text yields nothing", func(t *testing.T) {
		assert.Nil(t, ChunkText("  \n ", 100))
	})

	t.Run("splits on paragraphs under limit", func(t *testing.T) {
		text := strings.Repeat("a", 40) + "\n\n" + strings.Repeat("b", 40)
		chunks := ChunkText(text, 50)
		require.Len(t, chunks, 2)
		assert.Equal(t, strings.Repeat("a", 40), chunks[0])
	})

	t.Run("every chunk respects the limit", func(t *testing.T) {
		text := strings.Repeat("word ", 500)
		for _, ch := range ChunkText(text, 64) {
			assert.LessOrEqual(t, len(ch), 64)
		}
	})
}

func TestSyncMap(t *testing.T) {
	m := NewSyncMap[string, int]()
	m.Store("a", 1)

	v, ok := m.Load("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	m.Delete("a")
	_, ok = m.Load("a")
	assert.False(t, ok)

	m.Replace(map[string]int{"x": 10})
	snap := m.Snapshot()
	assert.Equal(t, map[string]int{"x": 10}, snap)

	// Snapshot is a copy.
	snap["x"] = 99
	v, _ = m.Load("x")
	assert.Equal(t, 10, v)
}

func TestSyncMapConcurrent(t *testing.T) {
	m := NewSyncMap[int, int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Store(i, i)
			m.Load(i)
		}(i)
	}
	wg.Wait()
	assert.Len(t, m.Snapshot(), 50)
}
