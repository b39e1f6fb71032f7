package alts_test

import (
	"testing"

	"stage-alts/core/archive"
	"stage-alts/feature/alts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slots(list []alts.AlternateEntry) []uint32 {
	out := make([]uint32, len(list))
	for i, e := range list {
		out[i] = e.Slot
	}
	return out
}

func TestBuildCatalog(t *testing.T) {
	arc := newArchive(t)
	catalog, err := alts.BuildCatalog(arc.Search, h("stage"))
	require.NoError(t, err)

	t.Run("DiscoversSuffixedSiblings", func(t *testing.T) {
		assert.Equal(t, []uint32{1, 2, 3}, slots(catalog[marioNormal]))
	})

	t.Run("AscendingWithThreeDigitSlots", func(t *testing.T) {
		assert.Equal(t, []uint32{1, 2, 3}, slots(catalog[battlefieldNormal]))
		assert.Equal(t, []uint32{1, 120}, slots(catalog[battlefieldBattle]))
	})

	t.Run("EntriesAreDerived", func(t *testing.T) {
		for _, e := range catalog[battlefieldBattle] {
			assert.True(t, e.WifiSafe)
			assert.Equal(t, alts.DerivePaths(battlefield, e.Slot), e.Paths)
		}
	})

	t.Run("IgnoresRecordsWithoutAlternates", func(t *testing.T) {
		assert.Len(t, catalog, 3)
		assert.Equal(t, 8, catalog.Total())
	})

	t.Run("Keys", func(t *testing.T) {
		keys := catalog.Keys()
		require.Len(t, keys, 3)
		assert.ElementsMatch(t, []alts.RecordKey{battlefieldNormal, battlefieldBattle, marioNormal}, keys)
	})
}

func TestBuildCatalogMissingRoot(t *testing.T) {
	arc := newArchive(t)
	catalog, err := alts.BuildCatalog(arc.Search, h("nowhere"))
	assert.ErrorIs(t, err, archive.ErrMissing)
	assert.Empty(t, catalog)
}

func TestGuessSlot(t *testing.T) {
	tests := []struct {
		name     string
		folder   string
		wantOK   bool
		wantSlot uint32
		wantForm alts.Form
	}{
		{"NormalTwoDigits", "normal_s01", true, 1, alts.FormNormal},
		{"BattleTwoDigits", "battle_s99", true, 99, alts.FormBattle},
		{"NormalThreeDigits", "normal_s100", true, 100, alts.FormNormal},
		{"BattleThreeDigits", "battle_s999", true, 999, alts.FormBattle},
		{"SingleDigit", "normal_s1", false, 0, 0},
		{"Zero", "normal_s00", false, 0, 0},
		{"Original", "normal", false, 0, 0},
		{"Unrelated", "param_s01x", false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, form, ok := alts.GuessSlot(h(tt.folder))
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantSlot, slot)
				assert.Equal(t, tt.wantForm, form)
			}
		})
	}
}

func TestDerivePaths(t *testing.T) {
	original := alts.DerivePaths(battlefield, 0)
	assert.Equal(t, h("ui/replace/stage/stage_2/stage_2_battlefield.bntx"), original.Normal)
	assert.Equal(t, h("ui/replace/stage/stage_3/stage_3_battlefield.bntx"), original.Battle)
	assert.Equal(t, h("ui/replace/stage/stage_4/stage_4_battlefield.bntx"), original.End)

	alt := alts.DerivePaths(battlefield, 7)
	assert.Equal(t, h("ui/replace_patch/stage/stage_2/stage_2_battlefield_s07.bntx"), alt.Normal)
	assert.Equal(t, h("ui/replace_patch/stage/stage_3/stage_3_battlefield_s07.bntx"), alt.Pick(alts.UIBattle))
	assert.Equal(t, h("ui/replace_patch/stage/stage_4/stage_4_battlefield_s07.bntx"), alt.Pick(alts.UIEnd))
}

func TestForms(t *testing.T) {
	f, err := alts.ParseForm("Battle")
	require.NoError(t, err)
	assert.Equal(t, alts.FormBattle, f)
	assert.Equal(t, h("battle"), f.Marker())

	_, err = alts.ParseForm("end")
	assert.Error(t, err)

	ui, err := alts.ParseUIForm("")
	require.NoError(t, err)
	assert.Equal(t, alts.UINormal, ui)
	_, err = alts.ParseUIForm("title")
	assert.Error(t, err)
}
