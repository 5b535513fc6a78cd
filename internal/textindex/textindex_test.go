package textindex

import (
	"math"
	"reflect"
	"testing"
)

func TestExtractTerms(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			"stopwords fuera antes de bigramas",
			"the quick brown fox",
			[]string{"quick", "brown", "fox", "quick brown", "brown fox"},
		},
		{
			"minusculas y puntuacion",
			"Space: the Final Frontier!",
			[]string{"space", "final", "frontier", "space final", "final frontier"},
		},
		{
			"tokens de un caracter fuera",
			"a b hacker",
			[]string{"hacker"},
		},
		{
			"vacio",
			"",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractTerms(tt.in)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("extractTerms(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSimilaritySelf(t *testing.T) {
	ix := Build([]string{
		"a hacker discovers reality is a simulation",
		"toys come alive when humans are away",
		"a romance blooms aboard a doomed ship",
	})
	for i := 0; i < ix.Len(); i++ {
		if got := ix.Similarity(i, i); math.Abs(got-1) > 1e-9 {
			t.Errorf("Similarity(%d, %d) = %f, want 1", i, i, got)
		}
	}
}

func TestSimilarityRango(t *testing.T) {
	ix := Build([]string{
		"a hacker discovers reality is a simulation",
		"a hacker breaks into a simulation of reality",
		"toys come alive when humans are away",
	})
	for i := 0; i < ix.Len(); i++ {
		for j := 0; j < ix.Len(); j++ {
			got := ix.Similarity(i, j)
			if got < 0 || got > 1 {
				t.Errorf("Similarity(%d, %d) = %f fuera de [0,1]", i, j, got)
			}
			if sym := ix.Similarity(j, i); sym != got {
				t.Errorf("Similarity no simétrica: (%d,%d)=%f, (%d,%d)=%f", i, j, got, j, i, sym)
			}
		}
	}

	// Textos que comparten vocabulario deben puntuar más que textos ajenos.
	if parecidos, ajenos := ix.Similarity(0, 1), ix.Similarity(0, 2); parecidos <= ajenos {
		t.Errorf("similitud de textos parecidos (%f) <= textos ajenos (%f)", parecidos, ajenos)
	}
}

func TestSimilarityVectorCero(t *testing.T) {
	// "the and of" queda vacío tras stop words: vector cero.
	ix := Build([]string{
		"the and of",
		"toys come alive when humans are away",
		"the and of",
	})
	if got := ix.Similarity(0, 1); got != 0 {
		t.Errorf("Similarity(cero, normal) = %f, want 0", got)
	}
	if got := ix.Similarity(0, 2); got != 0 {
		t.Errorf("Similarity(cero, cero) = %f, want 0", got)
	}
}

func TestSelectVocabularyCorte(t *testing.T) {
	freq := map[string]int{"zeta": 5, "alfa": 5, "beta": 3, "gamma": 1}
	got := selectVocabulary(freq)
	// Frecuencia descendente, empates alfabéticos.
	want := []string{"alfa", "zeta", "beta", "gamma"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("selectVocabulary = %v, want %v", got, want)
	}
}
