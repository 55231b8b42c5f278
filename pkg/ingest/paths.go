package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-ingest/pkg/ingest/normalize"
)

// DefaultOutputDir is the root under which run output is written.
const DefaultOutputDir = "data/raw"

// IndexDirName replaces spaces in an index name so it can be used in paths.
func IndexDirName(index string) string {
	return strings.Join(strings.Fields(strings.ToUpper(index)), "_")
}

// OutputDir returns {root}/{category}/{INDEX}.
func OutputDir(root string, params RunParams) string {
	return filepath.Join(root, params.Dataset.Category(), IndexDirName(params.Index))
}

// IndividualPath returns the file path of one symbol's record.
func IndividualPath(root string, params RunParams, symbol string, day time.Time) string {
	name := fmt.Sprintf("%s_%s.csv", symbol, normalize.FormatDate(day))

	return filepath.Join(OutputDir(root, params), name)
}

// CombinedPath returns the file path of the combined record for a run.
func CombinedPath(root string, params RunParams, day time.Time) string {
	category := params.Dataset.Category()
	parts := []string{category, "data", IndexDirName(params.Index)}

	switch params.Dataset {
	case DatasetOverview:
		parts = append(parts, "overview")
	case DatasetDetailed:
		parts = append(parts, fmt.Sprintf("%s_%dyrs", params.Frequency, params.Years))
	case DatasetTechnical:
	}

	parts = append(parts, normalize.FormatDate(day))

	return filepath.Join(OutputDir(root, params), strings.Join(parts, "_")+".csv")
}
