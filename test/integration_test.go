// ABOUTME: Integration tests for nutrition CLI.
// ABOUTME: Builds the binary and runs the crud, query and find_user workflow.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	binary := filepath.Join(t.TempDir(), "nutrition")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/nutrition")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	// Use temp database and an empty config home
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	env := append(os.Environ(), "XDG_CONFIG_HOME="+t.TempDir(), "NUTRITION_DB=", "NUTRITION_TABLE=")

	run := func(args ...string) (string, error) {
		fullArgs := append([]string{"--db", dbPath}, args...)
		cmd := exec.Command(binary, fullArgs...)
		cmd.Dir = tmpDir
		cmd.Env = env
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Query before anything is loaded reports an error but exits cleanly
	output, err := run("query")
	if err != nil {
		t.Fatalf("Expected zero exit status, got %v\n%s", err, output)
	}
	if !strings.Contains(output, "An error occurred") {
		t.Errorf("Expected error message, got: %s", output)
	}

	// Unknown commands print usage
	output, err = run("bogus")
	if err != nil {
		t.Fatalf("Expected zero exit status, got %v\n%s", err, output)
	}
	if !strings.Contains(output, "Available Commands") {
		t.Errorf("Expected usage for unknown command, got: %s", output)
	}

	// CRUD walkthrough
	output, err = run("crud")
	if err != nil {
		t.Fatalf("Failed to run crud: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Record deleted successfully.") {
		t.Errorf("Expected 'Record deleted successfully.' in output, got: %s", output)
	}

	// Point lookups
	output, err = run("find_user", "1")
	if err != nil {
		t.Fatalf("Failed to find user: %v\n%s", err, output)
	}
	if strings.Contains(output, "No user found") {
		t.Errorf("Expected record 1, got: %s", output)
	}

	output, err = run("find_user", "2")
	if err != nil {
		t.Fatalf("Failed to find user: %v\n%s", err, output)
	}
	if !strings.Contains(output, "No user found with ID: 2") {
		t.Errorf("Expected not found message, got: %s", output)
	}

	// Filters
	output, err = run("query", "--value", "No")
	if err != nil {
		t.Fatalf("Failed to query: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Soda Frequency") || !strings.Contains(output, "Salad Frequency") {
		t.Errorf("Expected both tables, got: %s", output)
	}
	if strings.Contains(output, "An error occurred") {
		t.Errorf("Unexpected error: %s", output)
	}
}
