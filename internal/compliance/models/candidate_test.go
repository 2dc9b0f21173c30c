package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCandidates(t *testing.T) {
	t.Run("keeps well-formed entries and drops the rest", func(t *testing.T) {
		payload := []byte(`[
			{"category":"A","rule":"Do X"},
			{"category":"B"},
			{"rule":""},
			{"rule":"Do Y"}
		]`)

		valid, rejected := DecodeCandidates(payload)

		require.Len(t, valid, 2)
		assert.Equal(t, "Do X", valid[0].Rule)
		assert.Equal(t, "A", valid[0].Category)
		assert.Equal(t, "Do Y", valid[1].Rule)
		assert.Empty(t, valid[1].Category)
		assert.Len(t, rejected, 2)
	})

	t.Run("non-array payload yields no candidates", func(t *testing.T) {
		valid, rejected := DecodeCandidates([]byte(`{"rule":"Do X"}`))
		assert.Empty(t, valid)
		require.Len(t, rejected, 1)
		assert.Equal(t, "payload is not a JSON array", rejected[0].Reason)
	})

	t.Run("free text yields no candidates", func(t *testing.T) {
		valid, rejected := DecodeCandidates([]byte("Sure! Here are your compliance tasks:"))
		assert.Empty(t, valid)
		assert.Len(t, rejected, 1)
	})

	t.Run("whitespace rule text is rejected", func(t *testing.T) {
		valid, rejected := DecodeCandidates([]byte(`[{"rule":"   "}]`))
		assert.Empty(t, valid)
		assert.Len(t, rejected, 1)
	})

	t.Run("non-object entries are rejected individually", func(t *testing.T) {
		valid, rejected := DecodeCandidates([]byte(`["just a string", {"rule":"Do Z"}]`))
		require.Len(t, valid, 1)
		assert.Equal(t, "Do Z", valid[0].Rule)
		assert.Len(t, rejected, 1)
	})
}
