package integrity_test

import (
	"context"
	"testing"

	"stage-alts/core/archive"
	"stage-alts/feature/alts"
	"stage-alts/feature/integrity"
	"stage-alts/feature/integrity/checks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunAll(t *testing.T) {
	arc, err := archive.Build([]string{
		"stage/battlefield/normal/param/stage.prc",
		"stage/battlefield/normal_s01/param/stage.prc",
	})
	require.NoError(t, err)

	altsSvc := alts.NewService(alts.DefaultConfig(), alts.NewManager(alts.DefaultConfig(), zap.NewNop()), nil, zap.NewNop())
	require.NoError(t, altsSvc.Attach(arc))

	// No storage client and no database: those two checks fail, the rest still run.
	svc := integrity.NewService(altsSvc, nil, "alts", nil, nil, zap.NewNop())
	report := svc.RunAll(context.Background())

	require.Len(t, report, 5)

	backups, ok := report["backups"].(*checks.BackupReport)
	require.True(t, ok)
	assert.True(t, backups.Complete)

	ordering, ok := report["ordering"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", ordering["status"])
	assert.Empty(t, ordering["unsorted"])

	redirects, ok := report["redirects"].(map[string]any)
	require.True(t, ok)
	assert.Empty(t, redirects["redirected"])

	for _, name := range []string{"storage", "schema"} {
		entry, ok := report[name].(map[string]any)
		require.True(t, ok, name)
		assert.Equal(t, "error", entry["status"], name)
	}
}
