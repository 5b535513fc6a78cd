package engine

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"moodflix/internal/catalog"
	"moodflix/internal/textindex"
)

func buildEngine(t *testing.T, csv string) (*Engine, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	docs := make([]string, cat.Len())
	for i := 0; i < cat.Len(); i++ {
		docs[i] = cat.At(i).Overview
	}
	return New(cat, textindex.Build(docs), 0), cat
}

const engineCSV = `id,title,overview,genres,vote_average,vote_count,popularity
1,Alpha Strike,A soldier fights through a hostile alien planet.,"['Action', 'Sci-Fi']",8.0,1000,50
2,Beta Force,A soldier leads a rescue mission behind enemy lines.,"['Action']",7.0,800,40
3,Gamma Hearts,Two strangers fall in love in a quiet seaside town.,"['Romance']",9.0,1200,30
4,Delta Run,A pilot races across an alien planet to save his crew.,"['Action', 'Sci-Fi']",7.5,600,20
`

func TestRecommendExcluyeSemilla(t *testing.T) {
	e, _ := buildEngine(t, engineCSV)
	for _, res := range e.Recommend("Alpha Strike", 10, Weights{}) {
		if res.Movie.Title == "Alpha Strike" {
			t.Fatal("la semilla aparece en su propia recomendación")
		}
	}
}

func TestRecommendOrdenYPiso(t *testing.T) {
	e, _ := buildEngine(t, engineCSV)
	got := e.Recommend("Alpha Strike", 2, Weights{})
	if len(got) > 2 {
		t.Fatalf("len = %d, want <= 2", len(got))
	}
	for i, res := range got {
		if res.Score < DefaultMinScore {
			t.Errorf("score %f por debajo del piso", res.Score)
		}
		if i > 0 && got[i-1].Score < res.Score {
			t.Errorf("resultados fuera de orden: %f antes de %f", got[i-1].Score, res.Score)
		}
	}
}

func TestRecommendGeneroPesaMasQueRating(t *testing.T) {
	// B comparte género con la semilla; C no comparte ninguno aunque tenga
	// mejor rating. Con los pesos por defecto B debe ir antes que C.
	e, _ := buildEngine(t, engineCSV)
	got := e.Recommend("Alpha Strike", 3, Weights{})
	if len(got) < 1 {
		t.Fatal("sin resultados")
	}
	posB, posC := -1, -1
	for i, res := range got {
		switch res.Movie.Title {
		case "Beta Force":
			posB = i
		case "Gamma Hearts":
			posC = i
		}
	}
	if posB == -1 {
		t.Fatal("Beta Force no recomendada")
	}
	if posC != -1 && posC < posB {
		t.Errorf("Gamma Hearts (%d) por delante de Beta Force (%d)", posC, posB)
	}
}

func TestRecommendSemillaInexistente(t *testing.T) {
	e, _ := buildEngine(t, engineCSV)
	if got := e.Recommend("xyzzy nonexistent", 5, Weights{}); len(got) != 0 {
		t.Errorf("Recommend de semilla inexistente = %v, want vacío", got)
	}
}

func TestRecommendDeterminista(t *testing.T) {
	e, _ := buildEngine(t, engineCSV)
	base := e.Recommend("Alpha Strike", 4, Weights{})
	for run := 0; run < 10; run++ {
		if got := e.Recommend("Alpha Strike", 4, Weights{}); !reflect.DeepEqual(got, base) {
			t.Fatalf("corrida %d difiere: %v vs %v", run, got, base)
		}
	}
}

func TestJaccard(t *testing.T) {
	toSet := func(genres ...string) map[string]struct{} {
		s := make(map[string]struct{})
		for _, g := range genres {
			s[g] = struct{}{}
		}
		return s
	}
	tests := []struct {
		name string
		ref  map[string]struct{}
		in   []string
		want float64
	}{
		{"identicos", toSet("Action", "Sci-Fi"), []string{"Action", "Sci-Fi"}, 1},
		{"disjuntos", toSet("Action"), []string{"Romance"}, 0},
		{"ref vacio", toSet(), []string{"Romance"}, 0},
		{"otro vacio", toSet("Action"), nil, 0},
		{"mitad", toSet("Action", "Sci-Fi"), []string{"Action", "Drama"}, 1.0 / 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jaccard(tt.ref, tt.in); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("jaccard = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRatingSimilarity(t *testing.T) {
	for _, pair := range [][2]float64{{8, 7}, {0, 10}, {5.5, 5.5}} {
		a, b := pair[0], pair[1]
		if ratingSimilarity(a, b) != ratingSimilarity(b, a) {
			t.Errorf("ratingSimilarity(%f,%f) no simétrica", a, b)
		}
	}
	if got := ratingSimilarity(7.3, 7.3); got != 1 {
		t.Errorf("ratingSimilarity(x,x) = %f, want 1", got)
	}
	if got := ratingSimilarity(0, 10); got != 0 {
		t.Errorf("ratingSimilarity(0,10) = %f, want 0", got)
	}
}

func TestRecommendConcurrente(t *testing.T) {
	// Catálogo más grande para que haya varios bloques por worker.
	var b strings.Builder
	b.WriteString("id,title,overview,genres,vote_average,vote_count,popularity\n")
	for i := 1; i <= 200; i++ {
		fmt.Fprintf(&b, "%d,Movie %d,A story about soldier number %d on a distant planet.,\"['Action']\",%0.1f,100,%d\n",
			i, i, i, 5+float64(i%5), i)
	}
	e, _ := buildEngine(t, b.String())

	base := e.Recommend("Movie 1", 20, Weights{})
	done := make(chan []Ranked, 8)
	for g := 0; g < 8; g++ {
		go func() {
			done <- e.Recommend("Movie 1", 20, Weights{})
		}()
	}
	for g := 0; g < 8; g++ {
		if got := <-done; !reflect.DeepEqual(got, base) {
			t.Fatal("resultado concurrente difiere del secuencial")
		}
	}
}
