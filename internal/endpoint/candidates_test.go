package endpoint

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCandidatesCoverAllOperations(t *testing.T) {
	defaults := DefaultCandidates()
	for _, op := range Operations() {
		if len(defaults[op]) == 0 {
			t.Errorf("DefaultCandidates() has no entries for %s", op)
		}
	}
}

func TestLoadCandidatesWithoutFile(t *testing.T) {
	candidates, err := LoadCandidates("")
	if err != nil {
		t.Fatalf("LoadCandidates() error = %v", err)
	}
	if len(candidates[OpToken]) == 0 {
		t.Error("LoadCandidates(\"\") lost the built-in defaults")
	}
}

func TestLoadCandidatesMergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "endpoints.yaml")
	content := "token:\n  - https://file.example/token\n  - https://file2.example/token\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write endpoints file: %v", err)
	}

	candidates, err := LoadCandidates(path)
	if err != nil {
		t.Fatalf("LoadCandidates() error = %v", err)
	}

	token := candidates[OpToken]
	if len(token) != 2 || token[0] != "https://file.example/token" {
		t.Errorf("LoadCandidates() token list = %v, want file entries in order", token)
	}

	// Operations absent from the file keep their defaults.
	if len(candidates[OpGamesAPI]) == 0 {
		t.Error("LoadCandidates() dropped defaults for operations not in the file")
	}
}

func TestLoadCandidatesBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "endpoints.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o600); err != nil {
		t.Fatalf("failed to write endpoints file: %v", err)
	}

	if _, err := LoadCandidates(path); err == nil {
		t.Error("LoadCandidates() with malformed yaml should return error")
	}
}

func TestLoadCandidatesMissingFile(t *testing.T) {
	if _, err := LoadCandidates("/nonexistent/endpoints.yaml"); err == nil {
		t.Error("LoadCandidates() with missing file should return error")
	}
}
