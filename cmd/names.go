package cmd

import (
	"github.com/kamusis/colorname-cli/internal/colorname"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// displayName returns the title-cased name of c for tables and summaries.
func displayName(c colorname.Category) string {
	return titleCaser.String(c.String())
}
