package seeder

import (
	"github.com/Rana718/busseed/internal/bus"
	"github.com/Rana718/busseed/internal/database/common"
	"github.com/Rana718/busseed/internal/types"
)

type SeedConfig struct {
	Table      string // Target table name
	Count      int    // Records to generate
	RandomSeed uint32 // Generator seed; equal seeds give identical data
	Sample     int    // Rows read back for display
	Replace    bool   // Drop an existing table instead of failing
}

// Result describes what a run wrote and what was read back.
type Result struct {
	Records  []bus.Record
	Inserted int64
	RowCount int
	Columns  []types.SchemaColumn
	Sample   *common.QueryResult
}
