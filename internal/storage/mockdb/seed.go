package mockdb

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/magabrotheeeer/pandda-console/internal/models"
)

//go:embed seed.yaml
var seedYAML []byte

// SeedState разбирает встроенный набор начальных данных. Записям без
// createdAt проставляется now.
func SeedState(now time.Time) (State, error) {
	const op = "mockdb.SeedState"

	var raw map[string][]map[string]any
	if err := yaml.Unmarshal(seedYAML, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stamp := now.UTC().Format(time.RFC3339Nano)
	st := make(State, len(raw))
	for table, rows := range raw {
		recs := make([]models.Record, 0, len(rows))
		for _, row := range rows {
			rec := models.Record(row)
			if rec.Str(models.FieldCreatedAt) == "" {
				rec[models.FieldCreatedAt] = stamp
			}
			recs = append(recs, rec)
		}
		st[table] = recs
	}
	return st, nil
}
