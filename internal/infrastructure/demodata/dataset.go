// Package demodata generates deterministic fuel-station datasets shaped
// like the collaborating API's JSON, for demos and report smoke-testing.
package demodata

import (
	"encoding/json"
	"fmt"
	"os"
)

// Dataset bundles loose API-shaped records, one slice per source endpoint.
// Records deliberately stay map[string]any so they exercise the same
// normalization path production rows take.
type Dataset struct {
	Seed  int64  `json:"seed"`
	Start string `json:"start"`
	Days  int    `json:"days"`

	Stations  []map[string]any `json:"stations"`
	Products  []map[string]any `json:"products"`
	Customers []map[string]any `json:"customers"`
	Suppliers []map[string]any `json:"suppliers"`

	Sales            []map[string]any `json:"sales"`
	Payments         []map[string]any `json:"payments"`
	Credits          []map[string]any `json:"credits"`
	Expenses         []map[string]any `json:"expenses"`
	SupplierPayments []map[string]any `json:"supplier_payments"`
	PriceChanges     []map[string]any `json:"price_changes"`

	OpenInvoices []map[string]any `json:"open_invoices"`
	OpenBills    []map[string]any `json:"open_bills"`
}

// WriteFile renders the dataset as indented JSON at the given path.
func (d *Dataset) WriteFile(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile loads a dataset previously written with WriteFile.
func ReadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", path, err)
	}
	return &ds, nil
}
