package selector

import "strings"

// accentFolder maps the accented characters that show up in the demo domain
// to their plain ASCII equivalents. The table is intentionally fixed rather
// than a full Unicode decomposition: keyword matching only needs to be
// stable, not linguistically complete.
var accentFolder = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
)

// Normalize lower-cases text and folds common accented characters.
// It is a pure function and idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	return accentFolder.Replace(strings.ToLower(text))
}
