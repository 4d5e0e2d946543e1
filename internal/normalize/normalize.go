// Package normalize rewrites free text for export: it straightens curly
// quotes and applies the configured find/replace rules for a category.
package normalize

import "strings"

// Pattern categories used by the exporter.
const (
	CategoryContent = "Content"
	CategoryTag     = "Tag"
)

// Pattern is a single literal find/replace rule.
type Pattern struct {
	Needle     string `yaml:"needle"     json:"needle"`
	Substitute string `yaml:"substitute" json:"substitute"`
}

// PatternTable maps a category name to its ordered rules.
// It is built once from configuration and only read afterwards, so it can be
// shared between goroutines without locking.
type PatternTable map[string][]Pattern

// Logf receives diagnostics. A nil Logf discards them.
type Logf func(format string, args ...any)

var punctuation = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
)

// Punctuation replaces curly single and double quotes with their ASCII forms.
func Punctuation(text string) string {
	return punctuation.Replace(text)
}

// Normalizer applies a PatternTable, reporting configuration gaps to a Logf.
type Normalizer struct {
	patterns PatternTable
	logf     Logf
}

// New creates a Normalizer. Either argument may be nil.
func New(patterns PatternTable, logf Logf) *Normalizer {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Normalizer{patterns: patterns, logf: logf}
}

// Apply runs the rules for category over text in table order. Each rule
// sees the output of the previous one, so a later needle can match text a
// former substitute introduced. A missing or empty category leaves text
// unchanged and emits a diagnostic.
func (n *Normalizer) Apply(text, category string) string {
	patterns, ok := n.patterns[category]
	if !ok {
		n.logf("patterns missing for category %q", category)
		return text
	}
	if len(patterns) == 0 {
		n.logf("pattern list empty for category %q", category)
		return text
	}

	for i, p := range patterns {
		if p.Needle == "" {
			n.logf("skipping %s pattern %d: empty needle", category, i)
			continue
		}
		text = strings.ReplaceAll(text, p.Needle, p.Substitute)
	}
	return text
}
