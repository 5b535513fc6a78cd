// Package fuzzy implementa el matching difuso de títulos estilo token-set:
// insensible al orden y a los tokens duplicados, con scores en escala 0-100.
package fuzzy

import (
	"sort"
	"strings"
	"unicode"
)

// Normalize pasa el texto a minúsculas, elimina apóstrofes dentro de palabra
// y reemplaza el resto de caracteres especiales por espacios.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r == '\'' || r == '`' || r == '‘' || r == '’':
			// "schitt's" y "schitts" deben normalizar igual
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens devuelve los tokens únicos y ordenados de un texto normalizado.
func Tokens(s string) []string {
	fields := strings.Fields(Normalize(s))
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// TokenSetRatio compara dos textos por conjuntos de tokens. Construye la
// intersección ordenada t0 y las uniones t0+restoA / t0+restoB, y devuelve el
// mejor ratio entre los tres pares. Al basarse en diferencias simétricas de
// conjuntos, el score ignora orden y repeticiones: "the matrix" vs
// "matrix the the" da 100.
func TokenSetRatio(a, b string) int {
	ta := Tokens(a)
	tb := Tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	inter, diffA, diffB := splitSets(ta, tb)

	t0 := strings.Join(inter, " ")
	t1 := joinSections(inter, diffA)
	t2 := joinSections(inter, diffB)

	best := simpleRatio(t0, t1)
	if r := simpleRatio(t0, t2); r > best {
		best = r
	}
	if r := simpleRatio(t1, t2); r > best {
		best = r
	}
	return best
}

// splitSets separa dos listas ordenadas de tokens en intersección y
// diferencias (A-B y B-A), manteniendo el orden.
func splitSets(a, b []string) (inter, diffA, diffB []string) {
	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}
	for _, t := range a {
		if _, ok := setB[t]; ok {
			inter = append(inter, t)
		} else {
			diffA = append(diffA, t)
		}
	}
	for _, t := range b {
		if _, ok := setA[t]; !ok {
			diffB = append(diffB, t)
		}
	}
	return inter, diffA, diffB
}

func joinSections(head, tail []string) string {
	if len(tail) == 0 {
		return strings.Join(head, " ")
	}
	if len(head) == 0 {
		return strings.Join(tail, " ")
	}
	return strings.Join(head, " ") + " " + strings.Join(tail, " ")
}

// simpleRatio es el ratio de similitud entre dos strings en 0-100:
// (len(a)+len(b)-d) / (len(a)+len(b)), donde d es la distancia de edición
// contando solo inserciones y borrados (sustituir cuesta 2). Equivale al
// ratio de SequenceMatcher sobre los mismos strings.
func simpleRatio(a, b string) int {
	if a == "" && b == "" {
		return 100
	}
	total := len(a) + len(b)
	if total == 0 {
		return 0
	}
	d := indelDistance(a, b)
	return int((float64(total-d)/float64(total))*100 + 0.5)
}

// indelDistance calcula la distancia de edición con una sola fila de DP,
// permitiendo solo insertar y borrar (una sustitución vale 2).
func indelDistance(a, b string) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	for j := range prev {
		prev[j] = j
	}
	curr := make([]int, lb+1)
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1]
			} else {
				del := prev[j] + 1
				ins := curr[j-1] + 1
				if del < ins {
					curr[j] = del
				} else {
					curr[j] = ins
				}
			}
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}
