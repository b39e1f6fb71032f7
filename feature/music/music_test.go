package music_test

import (
	"math/rand/v2"
	"testing"

	"stage-alts/core/hash40"
	"stage-alts/feature/music"

	"github.com/stretchr/testify/assert"
)

var (
	battlefieldSet = hash40.New("bgm_set_battlefield")
	emptySet       = hash40.New("bgm_set_empty")
	songA          = hash40.New("ui_bgm_a01_battlefield")
	songB          = hash40.New("ui_bgm_a02_battlefield")
)

func newCache() *music.Cache {
	return music.Build(
		map[hash40.Hash40][]hash40.Hash40{
			battlefieldSet: {songA, songB},
			emptySet:       {},
		},
		map[hash40.Hash40]hash40.Hash40{
			hash40.New("battlefield"): battlefieldSet,
			hash40.New("quiet"):       emptySet,
		},
		music.WithRand(rand.New(rand.NewPCG(1, 2))),
	)
}

func TestIsAllowed(t *testing.T) {
	c := newCache()
	assert.True(t, c.IsAllowed(songA))
	assert.True(t, c.IsAllowed(songB))
	assert.False(t, c.IsAllowed(hash40.New("ui_bgm_unknown")))
}

func TestPickRandom(t *testing.T) {
	c := newCache()

	t.Run("FromCategory", func(t *testing.T) {
		seen := map[hash40.Hash40]bool{}
		for range 64 {
			seen[c.PickRandom(hash40.New("battlefield"))] = true
		}
		assert.Equal(t, map[hash40.Hash40]bool{songA: true, songB: true}, seen)
	})

	t.Run("UnknownRecord", func(t *testing.T) {
		assert.Equal(t, music.FallbackSong, c.PickRandom(hash40.New("nowhere")))
	})

	t.Run("EmptyCategory", func(t *testing.T) {
		assert.Equal(t, music.FallbackSong, c.PickRandom(hash40.New("quiet")))
	})
}

func TestStats(t *testing.T) {
	assert.Equal(t, music.Stats{Allowed: 2, Categories: 2, Records: 2}, newCache().Stats())
}

func TestBgmID(t *testing.T) {
	id := uint64(0xAB_0003_0000000000) | uint64(songA)

	assert.Equal(t, songA, music.Song(id))
	assert.Equal(t, uint16(3), music.AltField(id))

	replaced := music.WithSong(id, songB)
	assert.Equal(t, songB, music.Song(replaced))
	assert.Equal(t, uint16(3), music.AltField(replaced))
	assert.Equal(t, uint64(0xAB), replaced>>56)

	packed := music.PackAlt(replaced, 12)
	assert.Equal(t, uint16(12), music.AltField(packed))
	assert.Equal(t, songB, music.Song(packed))
	assert.Equal(t, uint64(0xAB), packed>>56)
}
