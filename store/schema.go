package store

import (
	"fmt"
	"strings"
)

// DefaultPrefix is the default key prefix.
const DefaultPrefix = "loso:"

// schema builds every store key used by a CategoryStore, rooted at a
// configurable prefix.
type schema struct {
	prefix string
}

func newSchema(prefix string) schema {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return schema{prefix: prefix}
}

func (s schema) categorySet() string {
	return s.prefix + "category"
}

func (s schema) gram(category string) string {
	return fmt.Sprintf("%scat:%s:meta:gram", s.prefix, category)
}

func (s schema) gramSum(category string, n int) string {
	return fmt.Sprintf("%scat:%s:meta:%d-gram-sum", s.prefix, category, n)
}

func (s schema) gramVariety(category string, n int) string {
	return fmt.Sprintf("%scat:%s:meta:%d-gram-variety", s.prefix, category, n)
}

func (s schema) terms(category string) string {
	return fmt.Sprintf("%scat:%s:terms", s.prefix, category)
}

func (s schema) lex(category, term string) string {
	return fmt.Sprintf("%scat:%s:lex:%s", s.prefix, category, term)
}

// isValidCategoryName rejects the reserved schema separator.
func isValidCategoryName(name string) bool {
	return !strings.Contains(name, ":")
}
