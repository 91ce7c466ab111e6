package e2e_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// generateLargeFeed writes a contacts feed with the given number of
// entries, mixing the tolerated email shapes the way a real feed would.
func generateLargeFeed(t testing.TB, filePath string, itemCount int) {
	// Seed random for reproducible results
	rng := rand.New(rand.NewSource(42))

	entries := make([]map[string]interface{}, itemCount)
	for i := 0; i < itemCount; i++ {
		entry := map[string]interface{}{
			"fname": fmt.Sprintf("First%d", i+1),
			"lname": fmt.Sprintf("Last%d", i+1),
		}

		switch i % 3 {
		case 0:
			entry["email"] = fmt.Sprintf("user%d@example.com", i+1)
		case 1:
			entry["email"] = []string{
				fmt.Sprintf("user%d@example.com", i+1),
				fmt.Sprintf("user%d@work.com", i+1),
			}
			// case 2: no email at all
		}

		if rng.Intn(2) == 1 {
			entry["phone"] = fmt.Sprintf("555-%07d", rng.Intn(10000000))
		}

		entries[i] = entry
	}

	jsonData, err := json.MarshalIndent(entries, "", "  ")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filePath, jsonData, 0644))
}

// BenchmarkLargeFeed benchmarks the full pipeline with large feeds
func BenchmarkLargeFeed(b *testing.B) {
	// Skip in short mode
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}

	tempDir, err := os.MkdirTemp("", "rolodex-bench")
	require.NoError(b, err)
	defer os.RemoveAll(tempDir)

	sizes := []struct {
		name      string
		itemCount int
	}{
		{"100Contacts", 100},
		{"1000Contacts", 1000},
		{"10000Contacts", 10000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			feedFile := filepath.Join(tempDir, fmt.Sprintf("%s.json", size.name))
			generateLargeFeed(b, feedFile, size.itemCount)

			outputFile := filepath.Join(tempDir, fmt.Sprintf("%s.csv", size.name))

			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				cmd := exec.Command("go", "run", "../../main.go", "-i", feedFile, "-o", outputFile, "-e", "csv")
				output, err := cmd.CombinedOutput()
				require.NoError(b, err, "CLI command failed: %s", string(output))

				_, err = os.Stat(outputFile)
				require.NoError(b, err, "Output file was not created")

				os.Remove(outputFile)
			}
		})
	}
}
