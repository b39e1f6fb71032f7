package paths_test

import (
	"testing"

	"stage-alts/core/archive"
	"stage-alts/core/hash40"
	"stage-alts/core/paths"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticNames map[hash40.Hash40]string

func (n staticNames) Resolve(h hash40.Hash40) (string, bool) {
	s, ok := n[h]
	return s, ok
}

func search(t *testing.T) *archive.Search {
	t.Helper()
	arc, err := archive.Build([]string{
		"stage/battlefield/normal/param/stage.prc",
		"stage/battlefield/normal_s01/param/stage.prc",
	})
	require.NoError(t, err)
	return arc.Search
}

func TestPretty(t *testing.T) {
	t.Run("WalksToRoot", func(t *testing.T) {
		p := paths.Pretty(search(t), hash40.New("stage/battlefield/normal/param/stage.prc"))
		assert.Equal(t, []hash40.Hash40{
			hash40.New("stage"),
			hash40.New("battlefield"),
			hash40.New("normal"),
			hash40.New("param"),
			hash40.New("stage.prc"),
		}, p.Components())
		assert.Equal(t, hash40.New("stage/battlefield/normal/param/stage.prc"), p.Whole())
	})

	t.Run("UnknownHash", func(t *testing.T) {
		h := hash40.New("ui/nowhere")
		p := paths.Pretty(search(t), h)
		assert.Equal(t, []hash40.Hash40{h}, p.Components())
	})

	t.Run("NoLookup", func(t *testing.T) {
		h := hash40.New("stage")
		assert.Equal(t, []hash40.Hash40{h}, paths.Pretty(nil, h).Components())
	})
}

func TestSubRange(t *testing.T) {
	p := paths.New(hash40.New("stage"), hash40.New("battlefield"), hash40.New("normal"))

	tests := []struct {
		name string
		n    int
		want hash40.Hash40
	}{
		{"Zero", 0, 0},
		{"One", 1, hash40.New("stage")},
		{"Two", 2, hash40.New("stage/battlefield")},
		{"All", 3, hash40.New("stage/battlefield/normal")},
		{"Overflow", 9, hash40.New("stage/battlefield/normal")},
		{"Negative", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.SubRange(tt.n))
		})
	}
}

func TestReplace(t *testing.T) {
	p := paths.New(hash40.New("stage"), hash40.New("battlefield"), hash40.New("normal"), hash40.New("model"))

	got, ok := p.Replace(hash40.New("normal"), hash40.New("normal_s02"))
	require.True(t, ok)
	assert.Equal(t, hash40.New("stage/battlefield/normal_s02/model"), got.Whole())
	assert.Equal(t, hash40.New("stage/battlefield/normal/model"), p.Whole(), "receiver is unchanged")

	_, ok = p.Replace(hash40.New("battle"), hash40.New("battle_s02"))
	assert.False(t, ok)
}

func TestHelpers(t *testing.T) {
	p := paths.New(hash40.New("stage"), hash40.New("battlefield"))
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, hash40.New("battlefield"), p.Last())
	assert.True(t, p.Contains(hash40.New("stage")))
	assert.Equal(t, hash40.Hash40(0), paths.New().Last())

	q := p.Append(hash40.New("battle"))
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 2, p.Len())
}

func TestFormat(t *testing.T) {
	p := paths.New(hash40.New("stage"), hash40.New("secret"))
	names := staticNames{hash40.New("stage"): "stage"}
	assert.Equal(t, "/stage/"+hash40.New("secret").String(), p.Format(names))
	assert.Equal(t, "/"+hash40.New("stage").String()+"/"+hash40.New("secret").String(), p.String())
}
