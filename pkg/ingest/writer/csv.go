package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/argo-ingest/pkg/errors"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest/table"
)

// CSVWriter writes tables as comma-separated files with a header row and no index column.
// Files are written to a temporary sibling and renamed into place, so a reader never
// sees a partial file.
type CSVWriter struct {
	dirPerm  os.FileMode
	filePerm os.FileMode
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{
		dirPerm:  0755,
		filePerm: 0644,
	}
}

// Write implements TableWriter.
func (w *CSVWriter) Write(tbl *table.Table, path string) (err error) {
	if tbl == nil {
		return errors.New(errors.ErrCodeOutputWriteFailed, "no table to write")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, w.dirPerm); err != nil {
		return errors.Wrapf(errors.ErrCodeOutputWriteFailed, err, "failed to create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(errors.ErrCodeOutputWriteFailed, err, "failed to create temporary file in %s", dir)
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	csvWriter := csv.NewWriter(tmp)
	if err = csvWriter.WriteAll(tbl.Records()); err != nil {
		return errors.Wrapf(errors.ErrCodeOutputWriteFailed, err, "failed to write %s", path)
	}

	if err = tmp.Chmod(w.filePerm); err != nil {
		return errors.Wrapf(errors.ErrCodeOutputWriteFailed, err, "failed to set permissions on %s", path)
	}

	if err = tmp.Close(); err != nil {
		return errors.Wrapf(errors.ErrCodeOutputWriteFailed, err, "failed to close %s", path)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeOutputWriteFailed, fmt.Sprintf("failed to move output into place at %s", path), err)
	}

	return nil
}
