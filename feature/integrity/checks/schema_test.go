package checks

import (
	"testing"

	"stage-alts/core/database"
	"stage-alts/feature/params"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckParamsSchema_NilDB(t *testing.T) {
	report, err := CheckParamsSchema(nil)
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckParamsSchema(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&params.StageParam{}))
	require.NoError(t, db.Exec("CREATE TABLE bgm_params (id INTEGER PRIMARY KEY, set_id TEXT)").Error)

	report, err := CheckParamsSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, "ok", report.Tables["stage_params"].Status)
	assert.Equal(t, "error", report.Tables["bgm_params"].Status)
	assert.Equal(t, []string{"song", "position"}, report.Tables["bgm_params"].MissingColumns)

	require.NoError(t, db.AutoMigrate(&params.BGMParam{}))
	report, err = CheckParamsSchema(db)
	require.NoError(t, err)
	assert.True(t, report.Matched)
}

func TestParseGormColumn(t *testing.T) {
	assert.Equal(t, "id", parseGormColumn("column:id;primaryKey"))
	assert.Equal(t, "song", parseGormColumn("index;column:song"))
	assert.Empty(t, parseGormColumn("primaryKey"))
}
