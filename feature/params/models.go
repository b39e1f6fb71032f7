package params

import (
	"fmt"

	"stage-alts/core/hash40"
)

// StageRow links a UI stage panel to the stage place it loads and the music
// set played there.
type StageRow struct {
	UIStageID    hash40.Hash40 `json:"ui_stage_id"`
	StagePlaceID hash40.Hash40 `json:"stage_place_id"`
	BGMSetID     hash40.Hash40 `json:"bgm_set_id"`
}

// BGMSet is a named list of songs.
type BGMSet struct {
	SetID hash40.Hash40   `json:"set_id"`
	Songs []hash40.Hash40 `json:"songs"`
}

// Tables are the parsed stage and music tables. Stage order is panel order.
type Tables struct {
	Stages  []StageRow `json:"stages"`
	BGMSets []BGMSet   `json:"bgm_sets"`
}

// Records maps every stage place to its music set.
func (t *Tables) Records() map[hash40.Hash40]hash40.Hash40 {
	out := make(map[hash40.Hash40]hash40.Hash40, len(t.Stages))
	for _, s := range t.Stages {
		out[s.StagePlaceID] = s.BGMSetID
	}
	return out
}

// Categories maps every music set to its songs. Sets listed twice are merged.
func (t *Tables) Categories() map[hash40.Hash40][]hash40.Hash40 {
	out := make(map[hash40.Hash40][]hash40.Hash40, len(t.BGMSets))
	for _, set := range t.BGMSets {
		out[set.SetID] = append(out[set.SetID], set.Songs...)
	}
	return out
}

// UIToPlace maps every UI stage id to its stage place.
func (t *Tables) UIToPlace() map[hash40.Hash40]hash40.Hash40 {
	out := make(map[hash40.Hash40]hash40.Hash40, len(t.Stages))
	for _, s := range t.Stages {
		out[s.UIStageID] = s.StagePlaceID
	}
	return out
}

// Panels lists the stage place of every panel, in panel order.
func (t *Tables) Panels() []hash40.Hash40 {
	out := make([]hash40.Hash40, len(t.Stages))
	for i, s := range t.Stages {
		out[i] = s.StagePlaceID
	}
	return out
}

func (t *Tables) merge(other *Tables) {
	t.Stages = append(t.Stages, other.Stages...)
	t.BGMSets = append(t.BGMSets, other.BGMSets...)
}

// rawStage and rawSet are the source forms shared by the YAML documents and
// the database rows.
type rawStage struct {
	UIStageID    string `yaml:"ui_stage_id"`
	StagePlaceID string `yaml:"stage_place_id"`
	BGMSetID     string `yaml:"bgm_set_id"`
}

type rawSet struct {
	SetID string   `yaml:"set_id"`
	Songs []string `yaml:"songs"`
}

func parseID(field, s string) (hash40.Hash40, error) {
	if s == "" {
		return 0, fmt.Errorf("%s is empty", field)
	}
	h, err := hash40.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return h, nil
}

func (r rawStage) parse() (StageRow, error) {
	var (
		row StageRow
		err error
	)
	if row.UIStageID, err = parseID("ui_stage_id", r.UIStageID); err != nil {
		return row, err
	}
	if row.StagePlaceID, err = parseID("stage_place_id", r.StagePlaceID); err != nil {
		return row, err
	}
	if row.BGMSetID, err = parseID("bgm_set_id", r.BGMSetID); err != nil {
		return row, err
	}
	return row, nil
}

func (r rawSet) parse() (BGMSet, error) {
	id, err := parseID("set_id", r.SetID)
	if err != nil {
		return BGMSet{}, err
	}
	set := BGMSet{SetID: id, Songs: make([]hash40.Hash40, 0, len(r.Songs))}
	for _, s := range r.Songs {
		song, err := parseID("song", s)
		if err != nil {
			return BGMSet{}, fmt.Errorf("set %s: %w", r.SetID, err)
		}
		set.Songs = append(set.Songs, song)
	}
	return set, nil
}
