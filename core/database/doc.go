// Package database handles database connections and schema inspection.
//
// It wraps GORM and opens either a MySQL server or a SQLite file, depending on
// the configured driver. The stage and music tables can be served from it.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the integrity checks verify that the
// params tables carry every column the loader reads.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Optional database connection failed", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "stage_params", []string{"ui_stage_id"})
package database
