// Package textindex construye una representación TF-IDF dispersa de los
// overviews del catálogo. Se arma una sola vez junto con el catálogo (las
// filas están atadas 1:1 al orden de catálogo) y después es de solo lectura,
// así que puede consultarse concurrente sin locks.
package textindex

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// MaxTerms acota el vocabulario a los términos con mayor frecuencia total en
// el corpus; los empates se resuelven alfabéticamente para que el índice sea
// determinista.
const MaxTerms = 5000

type Index struct {
	rows []map[int]float64
}

// Build arma el índice sobre los textos dados: unigramas y bigramas sin stop
// words, pesos tf-idf con idf suavizado ln((1+N)/(1+df))+1 y filas
// normalizadas L2.
func Build(docs []string) *Index {
	n := len(docs)
	termsPerDoc := make([][]string, n)
	totalFreq := make(map[string]int)
	docFreq := make(map[string]int)

	for i, doc := range docs {
		terms := extractTerms(doc)
		termsPerDoc[i] = terms
		inDoc := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			totalFreq[t]++
			inDoc[t] = struct{}{}
		}
		for t := range inDoc {
			docFreq[t]++
		}
	}

	vocab := selectVocabulary(totalFreq)

	idf := make([]float64, len(vocab))
	termID := make(map[string]int, len(vocab))
	for id, term := range vocab {
		termID[term] = id
		idf[id] = math.Log(float64(1+n)/float64(1+docFreq[term])) + 1
	}

	rows := make([]map[int]float64, n)
	for i, terms := range termsPerDoc {
		row := make(map[int]float64)
		for _, t := range terms {
			if id, ok := termID[t]; ok {
				row[id] += idf[id]
			}
		}
		normalize(row)
		rows[i] = row
	}
	return &Index{rows: rows}
}

// Len devuelve el número de filas indexadas.
func (ix *Index) Len() int { return len(ix.rows) }

// Similarity es la similitud coseno entre las filas i y j, en [0,1]. Como
// las filas ya están normalizadas, basta el producto punto. Un vector cero
// tiene similitud 0 con todo.
func (ix *Index) Similarity(i, j int) float64 {
	a, b := ix.rows[i], ix.rows[j]
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot float64
	for id, wa := range a {
		if wb, ok := b[id]; ok {
			dot += wa * wb
		}
	}
	if dot > 1 {
		return 1
	}
	return dot
}

// extractTerms tokeniza un texto en unigramas y bigramas. Las stop words se
// descartan antes de formar los bigramas, igual que los tokens de un solo
// carácter.
func extractTerms(doc string) []string {
	words := strings.FieldsFunc(strings.ToLower(doc), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := words[:0]
	for _, w := range words {
		if len(w) < 2 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		tokens = append(tokens, w)
	}

	terms := make([]string, 0, len(tokens)*2)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// selectVocabulary ordena los términos por frecuencia total descendente
// (empates alfabéticos) y corta en MaxTerms.
func selectVocabulary(totalFreq map[string]int) []string {
	vocab := make([]string, 0, len(totalFreq))
	for t := range totalFreq {
		vocab = append(vocab, t)
	}
	sort.Slice(vocab, func(a, b int) bool {
		fa, fb := totalFreq[vocab[a]], totalFreq[vocab[b]]
		if fa != fb {
			return fa > fb
		}
		return vocab[a] < vocab[b]
	})
	if len(vocab) > MaxTerms {
		vocab = vocab[:MaxTerms]
	}
	return vocab
}

func normalize(row map[int]float64) {
	var sum float64
	for _, w := range row {
		sum += w * w
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for id, w := range row {
		row[id] = w / norm
	}
}
