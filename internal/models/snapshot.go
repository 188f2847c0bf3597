package models

import (
	"encoding/json"
	"fmt"
)

// snapshotDocument keeps track of which keys were present at all.
type snapshotDocument struct {
	Products *[]Product `json:"products"`
	Invoices *[]Invoice `json:"invoices"`
}

// DecodeSnapshot turns a stored or uploaded document into a typed Snapshot.
// At least one of products/invoices must be present; an absent key decodes
// to an empty list. Every failure wraps ErrParse.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var doc snapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if doc.Products == nil && doc.Invoices == nil {
		return Snapshot{}, fmt.Errorf("%w: document has neither products nor invoices", ErrParse)
	}

	snap := Snapshot{Products: []Product{}, Invoices: []Invoice{}}
	if doc.Products != nil {
		snap.Products = *doc.Products
	}
	if doc.Invoices != nil {
		snap.Invoices = *doc.Invoices
	}
	if err := snap.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return snap, nil
}

// EncodeSnapshot is the inverse of DecodeSnapshot.
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	if snap.Products == nil {
		snap.Products = []Product{}
	}
	if snap.Invoices == nil {
		snap.Invoices = []Invoice{}
	}
	return json.MarshalIndent(snap, "", "  ")
}
