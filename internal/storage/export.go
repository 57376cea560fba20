// ABOUTME: Export functionality for the loaded nutrition table.
// ABOUTME: Supports JSON and YAML export formats.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/nutrition/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for the destination table.
type ExportData struct {
	Version    string           `json:"version" yaml:"version"`
	ExportedAt time.Time        `json:"exported_at" yaml:"exported_at"`
	Tool       string           `json:"tool" yaml:"tool"`
	Table      string           `json:"table" yaml:"table"`
	Records    []*models.Record `json:"records" yaml:"records"`
}

// GetAllData retrieves all records for export.
func (d *DB) GetAllData(ctx context.Context) (*ExportData, error) {
	records, err := d.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	if records == nil {
		records = []*models.Record{}
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "nutrition",
		Table:      d.table,
		Records:    records,
	}, nil
}

// ExportJSON exports all records as JSON.
func (d *DB) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all records as YAML.
func (d *DB) ExportYAML(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string           `yaml:"version"`
		ExportedAt string           `yaml:"exported_at"`
		Tool       string           `yaml:"tool"`
		Table      string           `yaml:"table"`
		Records    []*models.Record `yaml:"records"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Table:      data.Table,
		Records:    data.Records,
	}

	return yaml.Marshal(yamlData)
}
