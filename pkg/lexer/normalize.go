package lexer

import (
	"regexp"
	"strings"
)

var spaceRunRe = regexp.MustCompile(` {2,}`)

// Normalize folds source text onto a single line: every newline becomes a
// space and every run of two or more spaces collapses to one.
//
// Carriage returns and tabs are left untouched.
func Normalize(src string) string {
	return spaceRunRe.ReplaceAllString(strings.ReplaceAll(src, "\n", " "), " ")
}
