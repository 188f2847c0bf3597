package files

import (
	"bytes"
	"fmt"
	"io"

	"go-pos-inventory/internal/models"
)

// WriteDatabase writes the whole-database document.
func WriteDatabase(w io.Writer, snap models.Snapshot) error {
	data, err := models.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadDatabase decodes a whole-database document. Any invalid product or
// invoice rejects the document.
func ReadDatabase(r io.Reader) (models.Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: read database file: %v", models.ErrParse, err)
	}
	return models.DecodeSnapshot(bytes.TrimPrefix(data, []byte(UTF8BOM)))
}
