package alts_test

import (
	"testing"

	"stage-alts/core/archive"
	"stage-alts/core/hash40"
	"stage-alts/core/paths"
	"stage-alts/feature/alts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	normalDir  = "stage/battlefield/normal"
	normalParm = "stage/battlefield/normal/param/stage.prc"
	normalMdl  = "stage/battlefield/normal/model/stc_floor.nutexb"
)

func TestPatchDirectory(t *testing.T) {
	t.Run("RedirectsEveryFile", func(t *testing.T) {
		arc := newArchive(t)
		e := newEngine(arc)

		altParam := dataIndex(t, arc, "stage/battlefield/normal_s01/param/stage.prc")
		altModel := dataIndex(t, arc, "stage/battlefield/normal_s01/model/stc_floor.nutexb")

		r := e.PatchDirectory(arc, h(normalDir), 1)
		assert.Equal(t, alts.TableDirectory, r.Table)
		assert.Equal(t, alts.OpPatch, r.Op)
		assert.Equal(t, 2, r.Applied)
		assert.NoError(t, r.Err())

		assert.Equal(t, altParam, dataIndex(t, arc, normalParm))
		assert.Equal(t, altModel, dataIndex(t, arc, normalMdl))
		assert.Equal(t, altParam, dataIndex(t, arc, "stage/battlefield/normal_s01/param/stage.prc"), "alternate is untouched")
	})

	t.Run("MissingAlternateSkipsOnlyThatFile", func(t *testing.T) {
		arc := newArchive(t)
		e := newEngine(arc)
		before := dataIndex(t, arc, normalParm)

		r := e.PatchDirectory(arc, h(normalDir), 3)
		assert.Equal(t, 1, r.Applied)
		require.Len(t, r.Failures, 1)
		assert.Equal(t, h(normalParm), r.Failures[0].Path)
		assert.ErrorIs(t, r.Err(), archive.ErrMissing)

		assert.Equal(t, before, dataIndex(t, arc, normalParm))
		assert.Equal(t, dataIndex(t, arc, "stage/battlefield/normal_s03/model/stc_floor.nutexb"), dataIndex(t, arc, normalMdl))
	})

	t.Run("UnknownDirectory", func(t *testing.T) {
		arc := newArchive(t)
		r := newEngine(arc).PatchDirectory(arc, h("stage/nowhere/normal"), 1)
		assert.ErrorIs(t, r.Err(), archive.ErrMissing)
		assert.Zero(t, r.Applied)
	})
}

func TestPatchWithoutMarker(t *testing.T) {
	arc := newArchive(t)
	e := newEngine(arc)
	dirBefore := arc.Dir.Snapshot()
	searchBefore := arc.Search.Snapshot()

	dir := e.PatchDirectory(arc, h("stage/common/shared"), 1)
	search := e.PatchSearch(arc.Search, h("stage/common/shared"), 1)

	assert.Zero(t, dir.Applied)
	require.Len(t, dir.Failures, 1)
	assert.ErrorIs(t, dir.Failures[0], alts.ErrNoMarker)

	assert.Zero(t, search.Applied)
	assert.ElementsMatch(t, []hash40.Hash40{
		h("stage/common/shared/param"),
		h("stage/common/shared/param/common.prc"),
	}, search.FailedPaths())
	assert.ErrorIs(t, search.Err(), alts.ErrNoMarker)

	assert.Equal(t, dirBefore, arc.Dir.Snapshot())
	assert.Equal(t, searchBefore, arc.Search.Snapshot())
}

func TestPatchSearch(t *testing.T) {
	arc := newArchive(t)
	e := newEngine(arc)
	childrenBefore, err := arc.Search.Children(h(normalDir))
	require.NoError(t, err)

	r := e.PatchSearch(arc.Search, h(normalDir), 1)
	assert.NoError(t, r.Err())
	assert.Equal(t, 4, r.Applied)

	assert.Equal(t, h("stage/battlefield/normal_s01/param"), resolves(t, arc, "stage/battlefield/normal/param"))
	assert.Equal(t, h("stage/battlefield/normal_s01/param/stage.prc"), resolves(t, arc, normalParm))
	assert.Equal(t, h("stage/battlefield/normal_s01/model/stc_floor.nutexb"), resolves(t, arc, normalMdl))
	assert.Equal(t, h(normalDir), resolves(t, arc, normalDir), "the patched folder itself keeps resolving to itself")

	childrenAfter, err := arc.Search.Children(h(normalDir))
	require.NoError(t, err)
	assert.Equal(t, childrenBefore, childrenAfter)
}

func TestRestoreRoundTrip(t *testing.T) {
	arc := newArchive(t)
	e := newEngine(arc)
	dirBefore := arc.Dir.Snapshot()
	searchBefore := arc.Search.Snapshot()

	e.PatchDirectory(arc, h(normalDir), 2)
	e.PatchSearch(arc.Search, h(normalDir), 2)
	require.NotEqual(t, dirBefore, arc.Dir.Snapshot())
	require.NotEqual(t, searchBefore, arc.Search.Snapshot())

	dir := e.RestoreDirectory(arc, h("stage/battlefield"))
	search := e.RestoreSearch(arc.Search, h("stage/battlefield"))
	assert.NoError(t, dir.Err())
	assert.NoError(t, search.Err())

	assert.Equal(t, dirBefore, arc.Dir.Snapshot())
	assert.Equal(t, searchBefore, arc.Search.Snapshot())
}

func TestRestoreIdempotent(t *testing.T) {
	arc := newArchive(t)
	e := newEngine(arc)

	e.PatchDirectory(arc, h(normalDir), 1)
	e.PatchSearch(arc.Search, h(normalDir), 1)

	e.RestoreDirectory(arc, h(normalDir))
	e.RestoreSearch(arc.Search, h(normalDir))
	dirOnce := arc.Dir.Snapshot()
	searchOnce := arc.Search.Snapshot()

	e.RestoreDirectory(arc, h(normalDir))
	e.RestoreSearch(arc.Search, h(normalDir))
	assert.Equal(t, dirOnce, arc.Dir.Snapshot())
	assert.Equal(t, searchOnce, arc.Search.Snapshot())
}

func TestRestoreMissingBackup(t *testing.T) {
	arc := newArchive(t)
	e := alts.NewEngine(alts.Backups{}, zap.NewNop(), nil, nil)

	dir := e.RestoreDirectory(arc, h(normalDir))
	assert.Zero(t, dir.Applied)
	assert.Len(t, dir.Failures, 2, "every file is reported, none aborts the walk")
	assert.ErrorIs(t, dir.Err(), archive.ErrInconsistent)

	search := e.RestoreSearch(arc.Search, h(normalDir))
	assert.Zero(t, search.Applied)
	assert.Len(t, search.Failures, 4)
	assert.ErrorIs(t, search.Err(), archive.ErrInconsistent)
}

func TestCollectFiles(t *testing.T) {
	arc := newArchive(t)
	e := newEngine(arc)

	index := func(p string) int {
		i, err := arc.Dir.FilePathIndex(h(p))
		require.NoError(t, err)
		return i
	}

	files, err := e.CollectFiles(arc, h(normalDir), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{
		index("stage/battlefield/normal_s01/param/stage.prc"),
		index("stage/battlefield/normal_s01/model/stc_floor.nutexb"),
	}, files)

	files, err = e.CollectFiles(arc, h(normalDir), 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{index(normalParm), index(normalMdl)}, files)

	_, err = e.CollectFiles(arc, h("stage/common/shared"), 1)
	assert.ErrorIs(t, err, alts.ErrNoMarker)
}

func TestSubstitution(t *testing.T) {
	arc := newArchive(t)

	battle := paths.Pretty(arc.Search, h("stage/battlefield/battle/param/stage.prc"))
	sub, ok := alts.SubstitutionFor(battle, 120)
	require.True(t, ok)
	assert.Equal(t, alts.ReplaceBattle, sub.Kind)

	out, ok := sub.Apply(battle)
	require.True(t, ok)
	assert.Equal(t, h("stage/battlefield/battle_s120/param/stage.prc"), out.Whole())
	assert.Equal(t, h("stage/battlefield/battle/param/stage.prc"), battle.Whole(), "input is left as is")

	both := paths.New(h("stage"), h("normal"), h("battle"))
	sub, ok = alts.SubstitutionFor(both, 1)
	require.True(t, ok)
	assert.Equal(t, alts.ReplaceNormal, sub.Kind)

	_, ok = alts.SubstitutionFor(paths.New(h("stage"), h("common")), 1)
	assert.False(t, ok)
}
