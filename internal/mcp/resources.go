// ABOUTME: MCP resource implementations for the nutrition table.
// ABOUTME: Provides nutrition://summary with row count and the first rows.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/nutrition/internal/models"
	"github.com/harperreed/nutrition/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const summaryURI = "nutrition://summary"

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Nutrition Table Summary",
		Description: "Row count and the first records of the loaded table",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	var (
		count   int
		records []*models.Record
	)
	err := s.withRepo(func(repo storage.Repository) error {
		var err error
		if count, err = repo.Count(ctx); err != nil {
			return err
		}
		records, err = repo.List(ctx, defaultLimit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}

	result := map[string]interface{}{
		"count":   count,
		"records": records,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      summaryURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
