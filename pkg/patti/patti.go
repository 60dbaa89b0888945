// Package patti gera o universo de combinações de 3 dígitos usadas nas
// apostas "patti" e os agrupamentos por soma dos dígitos (mod 10).
//
// Convenção de dígitos: a UI representa o zero como "10", então a ordem
// canônica é 1..9,0: o "0" ocupa a última posição e vale 10 na ordenação.
// Na soma e na conferência de resultado o "0" vale zero normalmente.
package patti

import (
	"sort"
	"strconv"
)

// AllowedDigits define a ordem canônica dos dígitos (0 por último, como 10).
var AllowedDigits = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"}

// digitOrd retorna a posição ordinal do dígito na ordem canônica (0 => 10).
func digitOrd(b byte) int {
	if b == '0' {
		return 10
	}
	return int(b - '0')
}

// AllCombinations gera as 220 combinações de 3 dígitos (com repetição),
// não-decrescentes na ordem canônica. A própria geração já sai ordenada,
// não precisa de sort posterior.
func AllCombinations() []string {
	combos := make([]string, 0, 220)
	for i := 0; i < len(AllowedDigits); i++ {
		for j := i; j < len(AllowedDigits); j++ {
			for k := j; k < len(AllowedDigits); k++ {
				combos = append(combos, AllowedDigits[i]+AllowedDigits[j]+AllowedDigits[k])
			}
		}
	}
	return combos
}

// SumOfDigits soma os dígitos da combinação ("0" vale zero, não dez).
func SumOfDigits(combo string) int {
	sum := 0
	for i := 0; i < len(combo); i++ {
		sum += int(combo[i] - '0')
	}
	return sum
}

// Groups particiona as 220 combinações em 10 grupos pela soma dos dígitos
// mod 10 (chaves "0".."9"). Cada grupo sai ordenado pelo valor numérico da
// combinação. Usado só como ajuda de seleção na UI, sem semântica de
// liquidação.
func Groups() map[string][]string {
	groups := make(map[string][]string, len(AllowedDigits))
	for _, d := range AllowedDigits {
		groups[d] = []string{}
	}

	for _, combo := range AllCombinations() {
		key := strconv.Itoa(SumOfDigits(combo) % 10)
		groups[key] = append(groups[key], combo)
	}

	for key := range groups {
		g := groups[key]
		sort.Slice(g, func(a, b int) bool {
			na, _ := strconv.Atoi(g[a])
			nb, _ := strconv.Atoi(g[b])
			return na < nb
		})
	}

	return groups
}

// NormalizeDigit converte a representação "10" da UI para o dígito "0".
func NormalizeDigit(d string) string {
	if d == "10" {
		return "0"
	}
	return d
}

// IsDigit informa se s é um único dígito 0..9.
func IsDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}

// IsCombination valida uma seleção patti: 3 dígitos, não-decrescentes na
// ordem canônica (ex.: "120" é válido porque 0 conta como 10; "210" não).
func IsCombination(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return digitOrd(s[0]) <= digitOrd(s[1]) && digitOrd(s[1]) <= digitOrd(s[2])
}
