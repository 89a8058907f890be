package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

const orderJava = `package shop;

public class Order {
    private long id;
    private double total;
    private String street;
    private String city;

    public void addItem(double price) {
        total = total + price + id;
    }

    public void refund(double price) {
        total = total - price + id;
    }

    public String invoice() {
        return id + ":" + total;
    }

    public String label() {
        return street + ", " + city;
    }

    public void move(String s, String c) {
        street = s;
        city = c;
    }

    public String route() {
        return city + "/" + street;
    }
}
`

// buildGodscnBinary builds the CLI from the project root (one level up from e2e)
func buildGodscnBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "godscn")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/godscn")

	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("Failed to get project root: %v", err)
	}
	cmd.Dir = projectRoot

	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build godscn binary: %v\n%s", err, out)
	}
	return binaryPath
}

// createTestConfigFile creates a .godscn.toml that directs report files to outputDir
func createTestConfigFile(t *testing.T, testDir, outputDir string) {
	t.Helper()
	configFile := filepath.Join(testDir, ".godscn.toml")
	configContent := fmt.Sprintf("[output]\ndirectory = %q\n", outputDir)
	if err := os.WriteFile(configFile, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
}

func createSourceFile(t *testing.T, dir, filename, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create %s: %v", dir, err)
	}
	filePath := filepath.Join(dir, filename)
	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", filename, err)
	}
	return filePath
}
