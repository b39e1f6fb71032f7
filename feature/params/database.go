package params

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// StageParam is one row of the stage_params table.
type StageParam struct {
	ID           uint   `gorm:"column:id;primaryKey"`
	UIStageID    string `gorm:"column:ui_stage_id"`
	StagePlaceID string `gorm:"column:stage_place_id"`
	BGMSetID     string `gorm:"column:bgm_set_id"`
}

// TableName overrides the table name.
func (StageParam) TableName() string {
	return "stage_params"
}

// BGMParam is one song of a music set in the bgm_params table.
type BGMParam struct {
	ID       uint   `gorm:"column:id;primaryKey"`
	SetID    string `gorm:"column:set_id"`
	Song     string `gorm:"column:song"`
	Position int    `gorm:"column:position"`
}

// TableName overrides the table name.
func (BGMParam) TableName() string {
	return "bgm_params"
}

// DBSource reads tables from the stage_params and bgm_params tables.
type DBSource struct {
	DB *gorm.DB
}

// Load implements Source.
func (s DBSource) Load(ctx context.Context) (*Tables, error) {
	if s.DB == nil {
		return nil, fmt.Errorf("database source without a connection")
	}
	db := s.DB.WithContext(ctx)

	var stages []StageParam
	if err := db.Order("id").Find(&stages).Error; err != nil {
		return nil, fmt.Errorf("failed to query stage params: %w", err)
	}
	var songs []BGMParam
	if err := db.Order("set_id").Order("position").Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("failed to query bgm params: %w", err)
	}

	t := &Tables{Stages: make([]StageRow, 0, len(stages))}
	for _, st := range stages {
		row, err := rawStage{UIStageID: st.UIStageID, StagePlaceID: st.StagePlaceID, BGMSetID: st.BGMSetID}.parse()
		if err != nil {
			return nil, fmt.Errorf("stage_params row %d: %w", st.ID, err)
		}
		t.Stages = append(t.Stages, row)
	}

	// Rows arrive grouped by set, so each run of equal set ids is one set.
	var raws []rawSet
	for _, song := range songs {
		if n := len(raws); n == 0 || raws[n-1].SetID != song.SetID {
			raws = append(raws, rawSet{SetID: song.SetID})
		}
		raws[len(raws)-1].Songs = append(raws[len(raws)-1].Songs, song.Song)
	}
	for _, raw := range raws {
		set, err := raw.parse()
		if err != nil {
			return nil, fmt.Errorf("bgm_params: %w", err)
		}
		t.BGMSets = append(t.BGMSets, set)
	}
	return t, nil
}
