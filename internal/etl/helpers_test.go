// ABOUTME: Shared fixtures for extract and load tests.
// ABOUTME: Generates source CSVs and serves them over httptest.
package etl

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

// sourceHeader mimics the upstream dataset: extra columns, wanted ones
// interleaved and not in subset order.
var sourceHeader = []string{
	"ID", "EGGSFREQ", "cancer", "YOGURTFREQ", "diabetes", "GREENSALADFREQ",
	"heart_disease", "FRIESFREQ", "MILKFREQ", "belly", "SODAFREQ", "COFFEEFREQ", "CAKESFREQ",
}

// sourceCSV builds a source dataset with n data rows. Row i has ID 1000+i
// and SODAFREQ i%7.
func sourceCSV(n int) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(sourceHeader, ",") + "\n")
	for i := 1; i <= n; i++ {
		heart := "No"
		if i%3 == 0 {
			heart = "Yes"
		}
		fmt.Fprintf(&sb, "%d,%d,No,%d,Yes,%d,%s,%d,%d,Outie,%d,%d,%d\n",
			1000+i, i%5, i%4, i%6, heart, i%3, i%2, i%7, i%9, i%8)
	}
	return sb.String()
}

func serveCSV(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
