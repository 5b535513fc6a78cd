package config

import (
	"os"
	"path/filepath"
	"testing"

	"moodflix/internal/engine"
)

func TestLoadConfigArchivoAusente(t *testing.T) {
	got, err := LoadConfig(filepath.Join(t.TempDir(), "no-existe.json"))
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if got.Recommendations != 5 || got.MinScore != 0.1 {
		t.Errorf("defaults no aplicados: %+v", got)
	}
	if got.Weights != engine.DefaultWeights {
		t.Errorf("Weights = %+v", got.Weights)
	}
}

func TestLoadConfigBackfill(t *testing.T) {
	// JSON parcial: solo pisa recommendations, el resto se backfillea.
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"recommendations": 10}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if got.Recommendations != 10 {
		t.Errorf("Recommendations = %d, want 10", got.Recommendations)
	}
	if got.MinScore != 0.1 || got.SearchThreshold != 80 || got.DetailThreshold != 95 {
		t.Errorf("backfill incompleto: %+v", got)
	}
	if got.Weights != engine.DefaultWeights {
		t.Errorf("pesos en cero no backfilleados: %+v", got.Weights)
	}
}

func TestLoadConfigPesosParciales(t *testing.T) {
	// Un peso distinto de cero es un bloque intencional: no se backfillea.
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"weights": {"genre": 1.0}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	want := engine.Weights{Genre: 1.0}
	if got.Weights != want {
		t.Errorf("Weights = %+v, want %+v", got.Weights, want)
	}
}

func TestLoadConfigJSONRoto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{{{`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("JSON roto no devolvió error")
	}
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("TMDB_API_KEY", "abc")
	got, err := LoadConfig("")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if got.HTTPAddr != ":9999" {
		t.Errorf("HTTPAddr = %q", got.HTTPAddr)
	}
	if got.TMDBAPIKey != "abc" {
		t.Errorf("TMDBAPIKey = %q", got.TMDBAPIKey)
	}
}
