package mockdb

import (
	"math/rand/v2"
	"strings"
)

const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idLength   = 7
)

// MakeID формирует идентификатор вида "<первые три буквы таблицы>-<7 символов base36>".
func MakeID(table string) string {
	prefix := table
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	var b strings.Builder
	b.Grow(len(prefix) + 1 + idLength)
	b.WriteString(prefix)
	b.WriteByte('-')
	for range idLength {
		b.WriteByte(idAlphabet[rand.IntN(len(idAlphabet))])
	}
	return b.String()
}
