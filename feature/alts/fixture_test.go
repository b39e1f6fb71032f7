package alts_test

import (
	"testing"

	"stage-alts/core/archive"
	"stage-alts/core/hash40"
	"stage-alts/feature/alts"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixtureListing = []string{
	"stage/battlefield/info.prc",
	"stage/battlefield/normal/model/stc_floor.nutexb",
	"stage/battlefield/normal/param/stage.prc",
	"stage/battlefield/normal_s01/model/stc_floor.nutexb",
	"stage/battlefield/normal_s01/param/stage.prc",
	"stage/battlefield/normal_s02/model/stc_floor.nutexb",
	"stage/battlefield/normal_s02/param/stage.prc",
	"stage/battlefield/normal_s03/model/stc_floor.nutexb",
	"stage/battlefield/battle/param/stage.prc",
	"stage/battlefield/battle_s01/param/stage.prc",
	"stage/battlefield/battle_s120/param/stage.prc",
	"stage/mario_stage/normal/param/stage.prc",
	"stage/mario_stage/normal_s01/param/stage.prc",
	"stage/mario_stage/normal_s02/param/stage.prc",
	"stage/mario_stage/normal_s03/param/stage.prc",
	"stage/common/normal/common.prc",
	"stage/common/shared/param/common.prc",
	"ui/replace/stage/stage_2/stage_2_battlefield.bntx",
	"ui/replace_patch/stage/stage_2/stage_2_battlefield_s01.bntx",
}

var (
	battlefield       = hash40.New("battlefield")
	marioStage        = hash40.New("mario_stage")
	battlefieldNormal = alts.RecordKey{Name: battlefield, Form: alts.FormNormal}
	battlefieldBattle = alts.RecordKey{Name: battlefield, Form: alts.FormBattle}
	marioNormal       = alts.RecordKey{Name: marioStage, Form: alts.FormNormal}
)

func h(s string) hash40.Hash40 {
	return hash40.New(s)
}

func newArchive(t *testing.T) *archive.Archive {
	t.Helper()
	arc, err := archive.Build(fixtureListing)
	require.NoError(t, err)
	return arc
}

func newEngine(arc *archive.Archive) *alts.Engine {
	return alts.NewEngine(alts.Snapshot(arc), zap.NewNop(), nil, nil)
}

func newManager(t *testing.T, arc *archive.Archive, opts ...alts.Option) *alts.Manager {
	t.Helper()
	m := alts.NewManager(alts.DefaultConfig(), zap.NewNop(), opts...)
	require.NoError(t, m.Initialize(arc))
	return m
}

func dataIndex(t *testing.T, arc *archive.Archive, path string) uint32 {
	t.Helper()
	i, err := arc.Dir.DataIndexOf(h(path))
	require.NoError(t, err)
	return i
}

func resolves(t *testing.T, arc *archive.Archive, path string) hash40.Hash40 {
	t.Helper()
	entry, err := arc.Search.LookupPath(h(path))
	require.NoError(t, err)
	return entry.Path
}
