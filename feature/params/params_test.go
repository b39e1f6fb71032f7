package params_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"stage-alts/core/database"
	"stage-alts/core/hash40"
	"stage-alts/core/storage/mocks"
	"stage-alts/feature/params"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const sampleDoc = `
stages:
  - ui_stage_id: ui_stage_battlefield
    stage_place_id: battlefield
    bgm_set_id: bgm_set_battlefield
  - ui_stage_id: ui_stage_mario
    stage_place_id: mario_stage
    bgm_set_id: "0x0a1b2c3d4e"
bgm_sets:
  - set_id: bgm_set_battlefield
    songs: [ui_bgm_a01, ui_bgm_a02]
  - set_id: "0x0a1b2c3d4e"
    songs: [ui_bgm_m01]
`

func h(s string) hash40.Hash40 {
	return hash40.New(s)
}

func checkSample(t *testing.T, tables *params.Tables) {
	t.Helper()
	require.Len(t, tables.Stages, 2)
	require.Len(t, tables.BGMSets, 2)

	marioSet := hash40.Hash40(0x0a1b2c3d4e)
	assert.Equal(t, map[hash40.Hash40]hash40.Hash40{
		h("battlefield"): h("bgm_set_battlefield"),
		h("mario_stage"): marioSet,
	}, tables.Records())
	assert.Equal(t, map[hash40.Hash40][]hash40.Hash40{
		h("bgm_set_battlefield"): {h("ui_bgm_a01"), h("ui_bgm_a02")},
		marioSet:                 {h("ui_bgm_m01")},
	}, tables.Categories())
	assert.Equal(t, h("mario_stage"), tables.UIToPlace()[h("ui_stage_mario")])
	assert.Equal(t, []hash40.Hash40{h("battlefield"), h("mario_stage")}, tables.Panels())
}

func TestDecode(t *testing.T) {
	t.Run("Sample", func(t *testing.T) {
		tables, err := params.Decode(strings.NewReader(sampleDoc))
		require.NoError(t, err)
		checkSample(t, tables)
	})

	t.Run("Empty", func(t *testing.T) {
		tables, err := params.Decode(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, tables.Stages)
	})

	t.Run("MissingField", func(t *testing.T) {
		_, err := params.Decode(strings.NewReader("stages:\n  - ui_stage_id: a\n    stage_place_id: b\n"))
		assert.ErrorContains(t, err, "bgm_set_id")
	})

	t.Run("BadHash", func(t *testing.T) {
		_, err := params.Decode(strings.NewReader("bgm_sets:\n  - set_id: s\n    songs: [\"0xzz\"]\n"))
		assert.Error(t, err)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := params.Decode(strings.NewReader("stages: {"))
		assert.Error(t, err)
	})
}

func TestCategoriesMergeRepeatedSets(t *testing.T) {
	tables := &params.Tables{BGMSets: []params.BGMSet{
		{SetID: h("a"), Songs: []hash40.Hash40{h("x")}},
		{SetID: h("a"), Songs: []hash40.Hash40{h("y")}},
	}}
	assert.Equal(t, []hash40.Hash40{h("x"), h("y")}, tables.Categories()[h("a")])
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	tables, err := params.FileSource{Path: path}.Load(context.Background())
	require.NoError(t, err)
	checkSample(t, tables)

	_, err = params.FileSource{Path: filepath.Join(t.TempDir(), "missing.yaml")}.Load(context.Background())
	assert.Error(t, err)
}

func listing(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func TestStorageSource(t *testing.T) {
	stagesDoc := sampleDoc[:strings.Index(sampleDoc, "bgm_sets:")]
	setsDoc := sampleDoc[strings.Index(sampleDoc, "bgm_sets:"):]

	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "alts", mock.MatchedBy(func(o minio.ListObjectsOptions) bool {
		return o.Prefix == "params/" && o.Recursive
	})).Return(listing("params/a_stages.yaml", "params/README.md", "params/b_sets.yml"))
	client.On("GetObject", mock.Anything, "alts", "params/a_stages.yaml", mock.Anything).
		Return(io.NopCloser(strings.NewReader(stagesDoc)), nil)
	client.On("GetObject", mock.Anything, "alts", "params/b_sets.yml", mock.Anything).
		Return(io.NopCloser(strings.NewReader(setsDoc)), nil)

	tables, err := params.StorageSource{Client: client, Bucket: "alts", Prefix: "params/"}.Load(context.Background())
	require.NoError(t, err)
	checkSample(t, tables)
	client.AssertExpectations(t)
	client.AssertNotCalled(t, "GetObject", mock.Anything, "alts", "params/README.md", mock.Anything)
}

func TestStorageSourceErrors(t *testing.T) {
	t.Run("ListError", func(t *testing.T) {
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: errors.New("denied")}
		close(ch)

		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "alts", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		_, err := params.StorageSource{Client: client, Bucket: "alts"}.Load(context.Background())
		assert.ErrorContains(t, err, "denied")
	})

	t.Run("GetError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "alts", mock.Anything).Return(listing("p.yaml"))
		client.On("GetObject", mock.Anything, "alts", "p.yaml", mock.Anything).Return(nil, errors.New("gone"))

		_, err := params.StorageSource{Client: client, Bucket: "alts"}.Load(context.Background())
		assert.ErrorContains(t, err, "gone")
	})
}

func TestDBSource(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&params.StageParam{}, &params.BGMParam{}))

	require.NoError(t, db.Create(&[]params.StageParam{
		{ID: 1, UIStageID: "ui_stage_battlefield", StagePlaceID: "battlefield", BGMSetID: "bgm_set_battlefield"},
		{ID: 2, UIStageID: "ui_stage_mario", StagePlaceID: "mario_stage", BGMSetID: "0x0a1b2c3d4e"},
	}).Error)
	require.NoError(t, db.Create(&[]params.BGMParam{
		{SetID: "bgm_set_battlefield", Song: "ui_bgm_a02", Position: 2},
		{SetID: "0x0a1b2c3d4e", Song: "ui_bgm_m01", Position: 1},
		{SetID: "bgm_set_battlefield", Song: "ui_bgm_a01", Position: 1},
	}).Error)

	tables, err := params.DBSource{DB: db}.Load(context.Background())
	require.NoError(t, err)
	checkSample(t, tables)
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestDBSourceQueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `stage_params`")).WillReturnError(errors.New("no table"))

	_, err := params.DBSource{DB: db}.Load(context.Background())
	assert.ErrorContains(t, err, "stage params")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBSourceBadRow(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `stage_params`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "ui_stage_id", "stage_place_id", "bgm_set_id"}).
			AddRow(7, "ui_stage_x", "", "set"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `bgm_params`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "set_id", "song", "position"}))

	_, err := params.DBSource{DB: db}.Load(context.Background())
	assert.ErrorContains(t, err, "row 7")
}

func TestNewSource(t *testing.T) {
	client := new(mocks.Client)
	db, _ := setupMockDB(t)

	tests := []struct {
		name    string
		cfg     params.Config
		want    params.Source
		wantErr bool
	}{
		{"None", params.Config{Source: params.SourceNone}, nil, false},
		{"File", params.Config{Source: params.SourceFile, Path: "p.yaml"}, params.FileSource{Path: "p.yaml"}, false},
		{"Storage", params.Config{Source: params.SourceStorage, Path: "params/"}, params.StorageSource{Client: client, Bucket: "b", Prefix: "params/"}, false},
		{"Database", params.Config{Source: params.SourceDatabase}, params.DBSource{DB: db}, false},
		{"Unknown", params.Config{Source: "ftp"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := params.NewSource(tt.cfg, client, "b", db)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := params.NewSource(params.Config{Source: params.SourceDatabase}, client, "b", nil)
	assert.Error(t, err)
	_, err = params.NewSource(params.Config{Source: params.SourceStorage}, nil, "b", nil)
	assert.Error(t, err)
}
