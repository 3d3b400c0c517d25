package service

import (
	"strings"
)

// Normalize: строка для сравнения, верхний регистр ASCII, только [A-Z0-9].
// Кириллица/хангыль и прочее не-ASCII схлопываются в "".
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteByte(c - 'a' + 'A')
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ExtractDigits: оставить только цифры ("3EA" → "3"); пусто → "0".
// Знак, дробная часть и разделители разрядов не поддерживаются.
func ExtractDigits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

// Схлопывание пробелов
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
