package health

import (
	"context"
	"strings"
	"testing"

	"moodflix/internal/catalog"
)

func TestCheckSoloCatalogo(t *testing.T) {
	cat, err := catalog.Load(strings.NewReader(`id,title,overview,genres,vote_average,vote_count,popularity
1,Alpha,Una historia.,"['Action']",7.0,100,10
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	status := NewService(cat, nil, nil).Check(context.Background())
	if status.Status != "ok" {
		t.Errorf("Status = %q, want ok", status.Status)
	}
	if status.Dataset.Movies != 1 {
		t.Errorf("Dataset.Movies = %d, want 1", status.Dataset.Movies)
	}
	if _, ok := status.Services["mongodb"]; ok {
		t.Error("mongodb reportado sin cliente configurado")
	}
}

func TestCheckCatalogoVacio(t *testing.T) {
	cat, err := catalog.Load(strings.NewReader("id,title,overview,genres,vote_average,vote_count,popularity\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	status := NewService(cat, nil, nil).Check(context.Background())
	if status.Status != "degraded" {
		t.Errorf("Status = %q, want degraded", status.Status)
	}
}
