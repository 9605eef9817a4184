package records

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/cadastro/internal/common"
)

var (
	ErrNotFound          = common.ErrorNotFound
	ErrCorruptCollection = common.ErrorCorruptCollection
	ErrValidation        = common.ErrorValidation
)

// Record is one registration entry as persisted in the collection.
type Record struct {
	ID            string `json:"id"`
	Nome          string `json:"nome"`
	Email         string `json:"email"`
	Senha         string `json:"senha"`
	ConfirmaSenha string `json:"confirmaSenha,omitempty"`
}

// decodeCollection parses a stored collection. Absent and blank values are
// an empty collection.
func decodeCollection(raw []byte) ([]Record, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []Record{}, nil
	}

	var recs []Record
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCollection, err)
	}
	if recs == nil {
		recs = []Record{}
	}
	return recs, nil
}

// encodeCollection always produces a JSON array, never null.
func encodeCollection(recs []Record) ([]byte, error) {
	if recs == nil {
		recs = []Record{}
	}
	b, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode collection: %w", err)
	}
	return b, nil
}
