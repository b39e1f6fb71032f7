// Package params loads the stage and music tables that feed the music cache
// and the stage select panel mapping.
//
// Tables come from a YAML document on disk, from every YAML object under a
// prefix of the storage bucket, or from the stage_params and bgm_params
// database tables.
//
// # Document Format
//
//	stages:
//	  - ui_stage_id: ui_stage_battlefield
//	    stage_place_id: battlefield
//	    bgm_set_id: bgm_set_battlefield
//	bgm_sets:
//	  - set_id: bgm_set_battlefield
//	    songs: [ui_bgm_a01_battlefield, ui_bgm_a02_battlefield]
//
// Every identifier is either a name, which is hashed, or a hex hash ("0x...").
package params
