// ABOUTME: Extract stage: downloads the remote CSV and derives the subset file.
// ABOUTME: Projects the fixed column list and keeps the first N data rows.
package etl

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/nutrition/internal/etlerr"
	"github.com/harperreed/nutrition/internal/logging"
	"github.com/harperreed/nutrition/internal/models"
)

// DefaultSubsetFile is the subset file name written into the output directory.
const DefaultSubsetFile = "Nutrition_subset.csv"

// DefaultRowLimit is the number of data rows copied into the subset file.
const DefaultRowLimit = 100

const utf8BOM = "\ufeff"

// Extractor downloads a CSV dataset and writes its projected subset.
type Extractor struct {
	Client     *http.Client
	Logger     *log.Logger
	SubsetFile string
	RowLimit   int
}

// NewExtractor returns an Extractor with the default subset layout.
func NewExtractor(client *http.Client, logger *log.Logger) *Extractor {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Extractor{
		Client:     client,
		Logger:     logger,
		SubsetFile: DefaultSubsetFile,
		RowLimit:   DefaultRowLimit,
	}
}

// Extract downloads sourceURL to rawPath, then writes the subset file into
// outDir and returns its path. Both files are overwritten on every call.
func (e *Extractor) Extract(ctx context.Context, sourceURL, rawPath, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return "", etlerr.WrapPath(etlerr.KindIO, "create output directory", outDir, err)
	}
	if dir := filepath.Dir(rawPath); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", etlerr.WrapPath(etlerr.KindIO, "create raw file directory", dir, err)
		}
	}

	n, err := e.download(ctx, sourceURL, rawPath)
	if err != nil {
		return "", err
	}
	e.Logger.Info("data downloaded", "path", rawPath, "bytes", n)

	subsetPath := filepath.Join(outDir, e.SubsetFile)
	rows, err := e.writeSubset(rawPath, subsetPath)
	if err != nil {
		return "", err
	}
	e.Logger.Info("subset created", "path", subsetPath, "rows", rows)

	return subsetPath, nil
}

func (e *Extractor) download(ctx context.Context, sourceURL, rawPath string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return 0, etlerr.WrapPath(etlerr.KindNetwork, "build request", sourceURL, err)
	}

	e.Logger.Debug("downloading", "url", sourceURL)
	resp, err := e.Client.Do(req)
	if err != nil {
		return 0, etlerr.WrapPath(etlerr.KindNetwork, "download", sourceURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, etlerr.Status(sourceURL, resp.StatusCode)
	}

	f, err := os.Create(rawPath)
	if err != nil {
		return 0, etlerr.WrapPath(etlerr.KindIO, "create raw file", rawPath, err)
	}

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		_ = f.Close()
		// A failed body read is a transport problem; a failed write is local.
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return 0, etlerr.WrapPath(etlerr.KindIO, "write raw file", rawPath, err)
		}
		return 0, etlerr.WrapPath(etlerr.KindNetwork, "read response body", sourceURL, err)
	}
	if err := f.Close(); err != nil {
		return 0, etlerr.WrapPath(etlerr.KindIO, "close raw file", rawPath, err)
	}
	return n, nil
}

// writeSubset projects rawPath onto models.Columns and keeps at most
// RowLimit data rows. It returns the number of data rows written.
func (e *Extractor) writeSubset(rawPath, subsetPath string) (int, error) {
	in, err := os.Open(rawPath)
	if err != nil {
		return 0, etlerr.WrapPath(etlerr.KindIO, "open raw file", rawPath, err)
	}
	defer in.Close()

	reader := csv.NewReader(in)
	// Short records yield empty cells instead of failing the extract.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, etlerr.WrapPath(etlerr.KindCSV, "read header", rawPath, err)
	}

	indices, err := columnIndices(header, models.Columns)
	if err != nil {
		return 0, etlerr.WrapPath(etlerr.KindCSV, "resolve columns", rawPath, err)
	}

	out, err := os.Create(subsetPath)
	if err != nil {
		return 0, etlerr.WrapPath(etlerr.KindIO, "create subset file", subsetPath, err)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	if err := writer.Write(models.Columns); err != nil {
		return 0, etlerr.WrapPath(etlerr.KindIO, "write subset header", subsetPath, err)
	}

	rows := 0
	row := make([]string, len(indices))
	for rows < e.RowLimit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, etlerr.WrapPath(etlerr.KindCSV, "read record", rawPath, err)
		}

		for i, idx := range indices {
			row[i] = ""
			if idx < len(record) {
				row[i] = record[idx]
			}
		}
		if err := writer.Write(row); err != nil {
			return 0, etlerr.WrapPath(etlerr.KindIO, "write subset record", subsetPath, err)
		}
		rows++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, etlerr.WrapPath(etlerr.KindIO, "flush subset file", subsetPath, err)
	}
	if err := out.Close(); err != nil {
		return 0, etlerr.WrapPath(etlerr.KindIO, "close subset file", subsetPath, err)
	}
	return rows, nil
}

// columnIndices returns the header position of every wanted column, in
// wanted order. A missing column is an error naming all the absent ones.
func columnIndices(header, wanted []string) ([]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		if _, seen := positions[name]; !seen {
			positions[name] = i
		}
	}

	indices := make([]int, 0, len(wanted))
	var missing []string
	for _, name := range wanted {
		idx, ok := positions[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		indices = append(indices, idx)
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return indices, nil
}
