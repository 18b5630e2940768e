package buffer

import (
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/mwc"
)

func TestBuffer(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		var buf T
		assert.Equal(t, buf.Cap(), 0)
		assert.Equal(t, buf.Remaining(), 0)
		assert.Nil(t, buf.Prefix())
		assert.Nil(t, buf.Suffix())
		assert.Equal(t, buf.String(), "")

		buf = Of(nil)
		assert.Equal(t, buf.Append(nil).Pos(), 0)
	})

	t.Run("Append", func(t *testing.T) {
		mem := make([]byte, 8)
		buf := Of(mem)

		buf = buf.Append([]byte("abc"))
		assert.Equal(t, buf.Pos(), 3)
		assert.Equal(t, buf.Remaining(), 5)
		assert.Equal(t, string(buf.Prefix()), "abc")
		assert.Equal(t, buf.String(), "abc")
		assert.Equal(t, string(mem[:3]), "abc")

		buf = buf.Append([]byte("defgh"))
		assert.Equal(t, buf.Remaining(), 0)
		assert.Nil(t, buf.Suffix())
		assert.Equal(t, string(mem), "abcdefgh")
	})

	t.Run("Limit", func(t *testing.T) {
		mem := make([]byte, 8)
		buf := Of(mem).Limit(5)

		assert.Equal(t, buf.Remaining(), 5)
		assert.Equal(t, len(buf.Suffix()), 5)

		buf = buf.Append([]byte("hello"))
		assert.Equal(t, buf.Remaining(), 0)

		buf = buf.Unlimit()
		assert.Equal(t, buf.Lim(), 8)
		assert.Equal(t, buf.Remaining(), 3)

		buf = buf.Append([]byte("!!!"))
		assert.Equal(t, string(mem), "hello!!!")
	})

	t.Run("Move", func(t *testing.T) {
		mem := []byte("abcdef")
		buf := Of(mem).Advance(6)

		buf = buf.Retreat(2)
		assert.Equal(t, buf.String(), "abcd")
		assert.Equal(t, *buf.Index(4), byte('e'))

		buf = buf.Retreat(4)
		assert.Equal(t, buf.Pos(), 0)
		assert.Equal(t, buf.String(), "")
		assert.Equal(t, buf.Remaining(), 6)

		buf = buf.Append([]byte("xy"))
		assert.Equal(t, string(mem), "xycdef")
	})

	t.Run("Random", func(t *testing.T) {
		rng := mwc.Rand()

		for range 100 {
			mem := make([]byte, rng.Uint64n(64)+1)
			buf := Of(mem)
			var exp []byte

			for buf.Remaining() > 0 {
				n := int(rng.Uint64n(uint64(buf.Remaining()) + 1))
				chunk := make([]byte, n)
				for i := range chunk {
					chunk[i] = byte(rng.Uint32())
				}
				buf = buf.Append(chunk)
				exp = append(exp, chunk...)
				assert.Equal(t, buf.Prefix(), exp)
			}
			assert.Equal(t, mem, exp)
		}
	})
}
