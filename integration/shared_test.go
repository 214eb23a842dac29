//go:build basic || database || integration

package integration

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedRelicdbPath holds the path to a shared relicdb binary built once for all tests.
	sharedRelicdbPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getRelicdbBinary returns the path to the relicdb binary, building it once if needed.
func getRelicdbBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "relicdb-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		relicdbPath := filepath.Join(tempDir, "relicdb")
		buildCmd := exec.Command("go", "build", "-o", relicdbPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build relicdb: %v", err))
		}

		sharedRelicdbPath = relicdbPath
	})

	return sharedRelicdbPath
}

// newFeedServer serves a small roster and recommendation feed.
func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/AvatarConfig.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"AvatarID": 1001, "DamageType": "Ice"},
			{"AvatarID": 1102, "DamageType": "Quantum"},
			{"AvatarID": 8001, "DamageType": "Physical"}
		]`))
	})
	mux.HandleFunc("/AvatarRelicRecommend.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"AvatarID": 1001, "PropertyList": [{"RelicType": "NECK", "PropertyType": "IceAddedRatio"}]},
			{"AvatarID": 1102, "PropertyList": [
				{"RelicType": "BODY", "PropertyType": "CriticalDamageBase"},
				{"RelicType": "FOOT", "PropertyType": "SpeedDelta"}
			]}
		]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// feedArgs points the CLI at srv and a database inside dir.
func feedArgs(srv *httptest.Server, dir string) []string {
	return []string{
		"--db", filepath.Join(dir, "ARDB4HSR.json"),
		"--roster-url", srv.URL + "/AvatarConfig.json",
		"--recommend-url", srv.URL + "/AvatarRelicRecommend.json",
		"--color", "no",
	}
}

// runRelicdb runs the binary with env appended to the current environment.
func runRelicdb(t *testing.T, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getRelicdbBinary(), args...)
	cmd.Env = append(os.Environ(), env...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
	}
	return string(output), err
}
