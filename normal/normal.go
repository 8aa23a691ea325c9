// Package normal cleans up values before they end up in tabular output.
package normal

import "strings"

var cellReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// ReplaceNewlineAndTab replaces newlines and tabs with a space, so a value
// fits into a single TSV cell.
func ReplaceNewlineAndTab(s string) string {
	return cellReplacer.Replace(s)
}
