package generator

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shortCodeRe = regexp.MustCompile(`^[a-zA-Z0-9]{6}$`)

func TestNanoid(t *testing.T) {
	g := NewNanoid()

	for i := 0; i < 100; i++ {
		code, err := g.ShortCode()
		require.NoError(t, err)
		assert.Regexp(t, shortCodeRe, code)
	}

	id, err := g.ID()
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}

func TestSeeded(t *testing.T) {
	t.Run("short codes match pattern", func(t *testing.T) {
		g := NewSeeded(1)

		for i := 0; i < 100; i++ {
			code, err := g.ShortCode()
			require.NoError(t, err)
			assert.Regexp(t, shortCodeRe, code)
		}
	})

	t.Run("same seed same sequence", func(t *testing.T) {
		a, b := NewSeeded(42), NewSeeded(42)

		for i := 0; i < 10; i++ {
			codeA, _ := a.ShortCode()
			codeB, _ := b.ShortCode()
			assert.Equal(t, codeA, codeB)

			idA, _ := a.ID()
			idB, _ := b.ID()
			assert.Equal(t, idA, idB)
		}
	})

	t.Run("ids are valid uuids", func(t *testing.T) {
		g := NewSeeded(7)

		id, err := g.ID()
		require.NoError(t, err)

		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())
	})
}
