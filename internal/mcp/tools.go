// ABOUTME: MCP tool implementations for the nutrition table.
// ABOUTME: Exposes list, point lookup, soda and heart disease filters, and row count.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/nutrition/internal/models"
	"github.com/harperreed/nutrition/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	defaultLimit         = 5
	defaultSodaThreshold = 3
	defaultHeartValue    = "Yes"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_records",
		Description: "List survey records with all columns",
	}, s.handleListRecords)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "find_record",
		Description: "Look up a single survey record by respondent ID",
	}, s.handleFindRecord)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "frequent_soda",
		Description: "List respondents whose soda frequency is above a threshold",
	}, s.handleFrequentSoda)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "heart_disease",
		Description: "List respondents whose heart_disease answer matches a value",
	}, s.handleHeartDisease)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_count",
		Description: "Count the records in the loaded table",
	}, s.handleRecordCount)
}

// Tool input/output types

type listRecordsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 5)"`
}

type recordsOutput struct {
	Records []*models.Record `json:"records"`
	Message string           `json:"message,omitempty"`
}

type findRecordInput struct {
	ID int64 `json:"id" jsonschema:"Respondent ID"`
}

type findRecordOutput struct {
	Found   bool           `json:"found"`
	Record  *models.Record `json:"record,omitempty"`
	Message string         `json:"message,omitempty"`
}

type frequentSodaInput struct {
	Threshold *int64 `json:"threshold,omitempty" jsonschema:"Soda frequency must be strictly greater than this (default 3)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Max results (default 5)"`
}

type sodaOutput struct {
	Rows []models.SodaSummary `json:"rows"`
}

type heartDiseaseInput struct {
	Value string `json:"value,omitempty" jsonschema:"Exact heart_disease answer to match (default Yes)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 5)"`
}

type heartOutput struct {
	Rows []models.HeartSummary `json:"rows"`
}

type countInput struct{}

type countOutput struct {
	Count int `json:"count"`
}

// Tool handlers

func (s *Server) handleListRecords(ctx context.Context, req *mcp.CallToolRequest, input listRecordsInput) (*mcp.CallToolResult, recordsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = defaultLimit
	}

	var records []*models.Record
	err := s.withRepo(func(repo storage.Repository) error {
		var err error
		records, err = repo.List(ctx, input.Limit)
		return err
	})
	if err != nil {
		return nil, recordsOutput{}, fmt.Errorf("failed to list records: %w", err)
	}

	out := recordsOutput{Records: records}
	if len(records) == 0 {
		out.Records = []*models.Record{}
		out.Message = "No records found."
	}
	return nil, out, nil
}

func (s *Server) handleFindRecord(ctx context.Context, req *mcp.CallToolRequest, input findRecordInput) (*mcp.CallToolResult, findRecordOutput, error) {
	var record *models.Record
	err := s.withRepo(func(repo storage.Repository) error {
		var err error
		record, err = repo.Get(ctx, input.ID)
		return err
	})
	if errors.Is(err, storage.ErrNotFound) {
		return nil, findRecordOutput{
			Found:   false,
			Message: fmt.Sprintf("No user found with ID: %d", input.ID),
		}, nil
	}
	if err != nil {
		return nil, findRecordOutput{}, fmt.Errorf("failed to find record: %w", err)
	}

	return nil, findRecordOutput{Found: true, Record: record}, nil
}

func (s *Server) handleFrequentSoda(ctx context.Context, req *mcp.CallToolRequest, input frequentSodaInput) (*mcp.CallToolResult, sodaOutput, error) {
	threshold := int64(defaultSodaThreshold)
	if input.Threshold != nil {
		threshold = *input.Threshold
	}
	if input.Limit <= 0 {
		input.Limit = defaultLimit
	}

	var rows []models.SodaSummary
	err := s.withRepo(func(repo storage.Repository) error {
		var err error
		rows, err = repo.SodaAbove(ctx, threshold, input.Limit)
		return err
	})
	if err != nil {
		return nil, sodaOutput{}, fmt.Errorf("failed to query soda frequency: %w", err)
	}
	if rows == nil {
		rows = []models.SodaSummary{}
	}
	return nil, sodaOutput{Rows: rows}, nil
}

func (s *Server) handleHeartDisease(ctx context.Context, req *mcp.CallToolRequest, input heartDiseaseInput) (*mcp.CallToolResult, heartOutput, error) {
	if input.Value == "" {
		input.Value = defaultHeartValue
	}
	if input.Limit <= 0 {
		input.Limit = defaultLimit
	}

	var rows []models.HeartSummary
	err := s.withRepo(func(repo storage.Repository) error {
		var err error
		rows, err = repo.WithHeartDisease(ctx, input.Value, input.Limit)
		return err
	})
	if err != nil {
		return nil, heartOutput{}, fmt.Errorf("failed to query heart disease: %w", err)
	}
	if rows == nil {
		rows = []models.HeartSummary{}
	}
	return nil, heartOutput{Rows: rows}, nil
}

func (s *Server) handleRecordCount(ctx context.Context, req *mcp.CallToolRequest, input countInput) (*mcp.CallToolResult, countOutput, error) {
	var n int
	err := s.withRepo(func(repo storage.Repository) error {
		var err error
		n, err = repo.Count(ctx)
		return err
	})
	if err != nil {
		return nil, countOutput{}, fmt.Errorf("failed to count records: %w", err)
	}
	return nil, countOutput{Count: n}, nil
}
