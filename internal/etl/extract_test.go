// ABOUTME: Tests for the extract stage.
// ABOUTME: Covers row limits, projection, overwrite, and each failure kind.
package etl

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/nutrition/internal/etlerr"
	"github.com/harperreed/nutrition/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractTo(t *testing.T, url string) (string, string, error) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	raw := filepath.Join(dir, "Nutrition.csv")
	subset, err := NewExtractor(nil, nil).Extract(context.Background(), url, raw, dir)
	return raw, subset, err
}

func TestExtractKeepsFirstHundredRows(t *testing.T) {
	srv := serveCSV(t, sourceCSV(150))

	_, subset, err := extractTo(t, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Nutrition_subset.csv", filepath.Base(subset))

	lines := readLines(t, subset)
	require.Len(t, lines, 101)
	assert.Equal(t, strings.Join(models.Columns, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1001,"))
	assert.True(t, strings.HasPrefix(lines[100], "1100,"))
}

func TestExtractFewerRowsThanLimit(t *testing.T) {
	srv := serveCSV(t, sourceCSV(7))

	_, subset, err := extractTo(t, srv.URL)
	require.NoError(t, err)
	assert.Len(t, readLines(t, subset), 8)
}

func TestExtractProjectsColumnsInOrder(t *testing.T) {
	srv := serveCSV(t, sourceCSV(3))

	raw, subset, err := extractTo(t, srv.URL)
	require.NoError(t, err)

	// Raw file is the response body verbatim.
	data, err := os.ReadFile(raw)
	require.NoError(t, err)
	assert.Equal(t, sourceCSV(3), string(data))

	lines := readLines(t, subset)
	// i=3: heart Yes, eggs 3, salad 3, fries 0, milk 1, soda 3, coffee 3, cakes 3
	assert.Equal(t, "1003,No,Yes,Yes,3,3,0,1,3,3,3", lines[3])
}

func TestExtractCustomRowLimit(t *testing.T) {
	srv := serveCSV(t, sourceCSV(20))
	dir := t.TempDir()

	e := NewExtractor(srv.Client(), nil)
	e.RowLimit = 5
	e.SubsetFile = "small.csv"
	subset, err := e.Extract(context.Background(), srv.URL, filepath.Join(dir, "raw.csv"), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "small.csv"), subset)
	assert.Len(t, readLines(t, subset), 6)
}

func TestExtractOverwrites(t *testing.T) {
	srv := serveCSV(t, sourceCSV(12))
	dir := t.TempDir()
	raw := filepath.Join(dir, "Nutrition.csv")
	e := NewExtractor(nil, nil)

	first, err := e.Extract(context.Background(), srv.URL, raw, dir)
	require.NoError(t, err)
	firstBytes, err := os.ReadFile(first)
	require.NoError(t, err)
	firstRaw, err := os.ReadFile(raw)
	require.NoError(t, err)

	second, err := e.Extract(context.Background(), srv.URL, raw, dir)
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(second)
	require.NoError(t, err)
	secondRaw, err := os.ReadFile(raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, bytes.Equal(firstBytes, secondBytes))
	assert.True(t, bytes.Equal(firstRaw, secondRaw))
	assert.Len(t, readLines(t, second), 13)
}

func TestExtractShortRecordYieldsEmptyCells(t *testing.T) {
	body := strings.Join(models.Columns, ",") + "\n" +
		"1,Yes,No,No,2,5,3,4,1,2,3\n" +
		"2,No,Yes\n"
	srv := serveCSV(t, body)

	_, subset, err := extractTo(t, srv.URL)
	require.NoError(t, err)

	lines := readLines(t, subset)
	require.Len(t, lines, 3)
	assert.Equal(t, "2,No,Yes,,,,,,,,", lines[2])
}

func TestExtractStripsHeaderBOM(t *testing.T) {
	body := "\ufeff" + strings.Join(models.Columns, ",") + "\n1,Yes,No,No,2,5,3,4,1,2,3\n"
	srv := serveCSV(t, body)

	_, subset, err := extractTo(t, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "1,Yes,No,No,2,5,3,4,1,2,3", readLines(t, subset)[1])
}

func TestExtractMissingColumn(t *testing.T) {
	header := strings.Join(models.Columns, ",")
	header = strings.Replace(header, "SODAFREQ,", "", 1)
	header = strings.Replace(header, ",CAKESFREQ", "", 1)
	srv := serveCSV(t, header+"\n1,Yes,No,No,2,5,3,4,2\n")

	_, _, err := extractTo(t, srv.URL)
	require.Error(t, err)
	assert.True(t, etlerr.Is(err, etlerr.KindCSV))
	assert.Contains(t, err.Error(), "SODAFREQ")
	assert.Contains(t, err.Error(), "CAKESFREQ")
}

func TestExtractHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	raw, _, err := extractTo(t, srv.URL)
	require.Error(t, err)
	assert.True(t, etlerr.Is(err, etlerr.KindHTTPStatus))
	assert.Equal(t, http.StatusNotFound, etlerr.StatusCode(err))

	_, statErr := os.Stat(raw)
	assert.True(t, os.IsNotExist(statErr), "raw file should not be written on a failed download")
}

func TestExtractNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, _, err := extractTo(t, url)
	require.Error(t, err)
	assert.True(t, etlerr.Is(err, etlerr.KindNetwork))
}

func TestExtractMalformedCSV(t *testing.T) {
	body := strings.Join(models.Columns, ",") + "\n1,Ye\"s,No,No,2,5,3,4,1,2,3\n"
	srv := serveCSV(t, body)

	_, _, err := extractTo(t, srv.URL)
	require.Error(t, err)
	assert.True(t, etlerr.Is(err, etlerr.KindCSV))
}

func TestExtractEmptyBody(t *testing.T) {
	srv := serveCSV(t, "")

	_, _, err := extractTo(t, srv.URL)
	require.Error(t, err)
	assert.True(t, etlerr.Is(err, etlerr.KindCSV))
}

func TestExtractOutputDirIsFile(t *testing.T) {
	srv := serveCSV(t, sourceCSV(1))
	blocker := filepath.Join(t.TempDir(), "data")
	writeFile(t, blocker, "not a directory")

	_, err := NewExtractor(nil, nil).Extract(context.Background(), srv.URL, filepath.Join(blocker, "raw.csv"), blocker)
	require.Error(t, err)
	assert.True(t, etlerr.Is(err, etlerr.KindIO))
}

func TestColumnIndices(t *testing.T) {
	got, err := columnIndices(sourceHeader, models.Columns)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4, 6, 1, 5, 7, 8, 10, 11, 12}, got)
}
