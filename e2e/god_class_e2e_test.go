package e2e

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func runGodscn(t *testing.T, binaryPath, dir string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// TestGodClassE2EText verifies the text report for a Java God Class
func TestGodClassE2EText(t *testing.T) {
	binaryPath := buildGodscnBinary(t)
	testDir := t.TempDir()
	createSourceFile(t, filepath.Join(testDir, "src"), "Order.java", orderJava)

	out, stderr, err := runGodscn(t, binaryPath, testDir, "analyze", "--details", "src")
	if err != nil {
		t.Fatalf("Command failed: %v\nStderr: %s", err, stderr)
	}
	for _, want := range []string{"God Class Detection Report", "Order", "OrderProduct"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
}

// TestGodClassE2EJSONOutput verifies JSON file generation
func TestGodClassE2EJSONOutput(t *testing.T) {
	binaryPath := buildGodscnBinary(t)
	testDir := t.TempDir()
	createSourceFile(t, filepath.Join(testDir, "src"), "Order.java", orderJava)
	outputDir := t.TempDir()
	createTestConfigFile(t, testDir, outputDir)

	if _, stderr, err := runGodscn(t, binaryPath, testDir, "analyze", "--json", "src"); err != nil {
		t.Fatalf("Command failed: %v\nStderr: %s", err, stderr)
	}

	files, _ := filepath.Glob(filepath.Join(outputDir, "godclass_*.json"))
	if len(files) != 1 {
		t.Fatalf("expected one JSON report in %s, got %v", outputDir, files)
	}
	content, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var report struct {
		Findings []struct {
			ClassName string `json:"class_name"`
		} `json:"findings"`
	}
	if err := json.Unmarshal(content, &report); err != nil {
		t.Fatalf("invalid json: %v\ncontent: %s", err, content)
	}
	if len(report.Findings) != 1 || report.Findings[0].ClassName != "Order" {
		t.Fatalf("unexpected findings: %+v", report.Findings)
	}
}

// TestGodClassE2EApply verifies that an applied candidate round-trips as a model
func TestGodClassE2EApply(t *testing.T) {
	binaryPath := buildGodscnBinary(t)
	testDir := t.TempDir()
	createSourceFile(t, filepath.Join(testDir, "src"), "Order.java", orderJava)

	_, stderr, err := runGodscn(t, binaryPath, testDir, "apply", "src", "--class", "Order", "--output", "model.yaml")
	if err != nil {
		t.Fatalf("Command failed: %v\nStderr: %s", err, stderr)
	}
	if !strings.Contains(stderr, "EXTRACT CLASS APPLIED") {
		t.Errorf("stderr should summarize the refactoring:\n%s", stderr)
	}

	data, err := os.ReadFile(filepath.Join(testDir, "model.yaml"))
	if err != nil {
		t.Fatalf("read model: %v", err)
	}
	var model struct {
		Classes []struct {
			Name string `yaml:"name"`
		} `yaml:"classes"`
	}
	if err := yaml.Unmarshal(data, &model); err != nil {
		t.Fatalf("invalid model: %v", err)
	}
	if len(model.Classes) != 2 {
		t.Fatalf("expected source and extracted class, got %+v", model.Classes)
	}

	// The written model is itself analyzable
	if _, stderr, err := runGodscn(t, binaryPath, testDir, "analyze", "model.yaml"); err != nil {
		t.Fatalf("re-analysis failed: %v\nStderr: %s", err, stderr)
	}
}

// TestGodClassE2EInvalidClass verifies the exit status for an unknown class
func TestGodClassE2EInvalidClass(t *testing.T) {
	binaryPath := buildGodscnBinary(t)
	testDir := t.TempDir()
	createSourceFile(t, testDir, "Order.java", orderJava)

	_, stderr, err := runGodscn(t, binaryPath, testDir, "apply", "Order.java", "--class", "Invoice")
	if err == nil {
		t.Fatal("expected failure for an unknown class")
	}
	if !strings.Contains(stderr, "Invoice") {
		t.Errorf("stderr should name the class:\n%s", stderr)
	}
}
