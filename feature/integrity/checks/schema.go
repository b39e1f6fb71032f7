package checks

import (
	"fmt"
	"reflect"
	"strings"

	"stage-alts/core/database"
	"stage-alts/feature/params"

	"gorm.io/gorm"
)

// SchemaReport strictly types the result of a params schema check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// SchemaModels are the rows the params database source reads.
var SchemaModels = []any{params.StageParam{}, params.BGMParam{}}

// CheckParamsSchema verifies that the params tables carry every column of
// their GORM models.
func CheckParamsSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
	}

	for _, model := range SchemaModels {
		t := reflect.TypeOf(model)
		tabler, ok := reflect.New(t).Interface().(interface{ TableName() string })
		if !ok {
			return nil, fmt.Errorf("model %s does not implement TableName", t.Name())
		}
		table := tabler.TableName()

		var want []string
		for i := 0; i < t.NumField(); i++ {
			if col := parseGormColumn(t.Field(i).Tag.Get("gorm")); col != "" {
				want = append(want, col)
			}
		}

		missing, err := database.MissingColumns(db, table, want)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}

		tr := TableReport{MissingColumns: []string{}, Status: "ok"}
		if len(missing) > 0 {
			tr.MissingColumns = missing
			tr.Status = "error"
			report.Matched = false
		}
		report.Tables[table] = tr
	}

	return report, nil
}

func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if name, ok := strings.CutPrefix(p, "column:"); ok {
			return name
		}
	}
	return ""
}
