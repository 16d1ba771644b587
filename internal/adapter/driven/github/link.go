package github

import (
	"strings"

	"github.com/tomnomnom/linkheader"
)

// Separator stand-ins for commas and semicolons inside <...> targets. Control
// characters cannot occur in a header value, so they never collide.
const (
	commaMark = "\x1f"
	semiMark  = "\x1e"
)

var restoreSeparators = strings.NewReplacer(commaMark, ",", semiMark, ";")

// nextLink returns the target of the rel="next" entry in RFC 8288 Link header
// values, or "" when there is none. rel may list several space-separated types.
// Targets are returned verbatim, including any commas or semicolons they hold.
func nextLink(values []string) string {
	masked := make([]string, 0, len(values))
	for _, v := range values {
		masked = append(masked, maskTargets(v))
	}

	for _, link := range linkheader.ParseMultiple(masked) {
		for _, rel := range strings.Fields(link.Rel) {
			if strings.EqualFold(rel, "next") {
				return restoreSeparators.Replace(link.URL)
			}
		}
	}
	return ""
}

// maskTargets hides the separators inside <...> so the parser splits entries
// and params only where the header itself does.
func maskTargets(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	inTarget := false
	for _, r := range value {
		switch {
		case r == '<':
			inTarget = true
		case r == '>':
			inTarget = false
		case inTarget && r == ',':
			b.WriteString(commaMark)
			continue
		case inTarget && r == ';':
			b.WriteString(semiMark)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
