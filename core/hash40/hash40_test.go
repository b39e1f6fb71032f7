package hash40_test

import (
	"encoding/json"
	"hash/crc32"
	"testing"

	"stage-alts/core/hash40"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, hash40.Hash40(0), hash40.New(""))
	})

	t.Run("LengthAndChecksum", func(t *testing.T) {
		h := hash40.New("stage")
		assert.Equal(t, 5, h.Len())
		assert.Equal(t, crc32.ChecksumIEEE([]byte("stage")), h.CRC())
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		assert.Equal(t, hash40.New("stage/battlefield"), hash40.New("Stage/BattleField"))
	})
}

func TestConcat(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"Simple", "stage", "/battlefield"},
		{"EmptyLeft", "", "normal"},
		{"EmptyRight", "normal", ""},
		{"Suffix", "normal", "_s01"},
		{"Long", "ui/replace_patch/stage/stage_2/stage_2_", "battlefield_s12.bntx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hash40.New(tt.a).Concat(hash40.New(tt.b))
			assert.Equal(t, hash40.New(tt.a+tt.b), got)
		})
	}
}

func TestJoin(t *testing.T) {
	t.Run("FromZero", func(t *testing.T) {
		assert.Equal(t, hash40.New("stage"), hash40.Hash40(0).Join(hash40.New("stage")))
	})

	t.Run("Components", func(t *testing.T) {
		h := hash40.New("stage").Join(hash40.New("battlefield")).Join(hash40.New("normal"))
		assert.Equal(t, hash40.New("stage/battlefield/normal"), h)
	})
}

func TestParse(t *testing.T) {
	t.Run("Hex", func(t *testing.T) {
		h, err := hash40.Parse("0x05b1cb9a1a")
		require.NoError(t, err)
		assert.Equal(t, hash40.Hash40(0x05b1cb9a1a), h)
	})

	t.Run("Plain", func(t *testing.T) {
		h, err := hash40.Parse("stage")
		require.NoError(t, err)
		assert.Equal(t, hash40.New("stage"), h)
	})

	t.Run("TooWide", func(t *testing.T) {
		_, err := hash40.Parse("0x1ffffffffff")
		assert.Error(t, err)
	})

	t.Run("BadHex", func(t *testing.T) {
		_, err := hash40.Parse("0xzz")
		assert.Error(t, err)
	})
}

func TestTextRoundTrip(t *testing.T) {
	in := map[hash40.Hash40]hash40.Hash40{hash40.New("stage"): hash40.New("normal")}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out map[hash40.Hash40]hash40.Hash40
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
	assert.Contains(t, string(data), hash40.New("stage").String())
}
