package writer

import (
	"github.com/rxtech-lab/argo-ingest/pkg/ingest/table"
)

// TableWriter persists a table to a destination path.
type TableWriter interface {
	// Write stores tbl at path, creating parent directories as needed.
	// An existing file at path is replaced.
	Write(tbl *table.Table, path string) error
}
