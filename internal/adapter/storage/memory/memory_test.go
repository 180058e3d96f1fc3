package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("empty slot", func(t *testing.T) {
		data, err := New(nil).Load(ctx)

		assert.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("save and load", func(t *testing.T) {
		s := New(nil)
		in := []byte(`[]`)

		assert.NoError(t, s.Save(ctx, in))
		in[0] = 'x'

		data, err := s.Load(ctx)
		assert.NoError(t, err)
		assert.Equal(t, []byte(`[]`), data)

		data[0] = 'y'
		again, _ := s.Load(ctx)
		assert.Equal(t, []byte(`[]`), again)
	})

	t.Run("initial data", func(t *testing.T) {
		data, err := New([]byte(`[{"id":"1"}]`)).Load(ctx)

		assert.NoError(t, err)
		assert.JSONEq(t, `[{"id":"1"}]`, string(data))
	})
}
