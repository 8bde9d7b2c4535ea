package annuaire

import (
	"fmt"
	"strings"
)

// FormatPlaces formats places for display or LLM context. Each place is
// rendered as a one-line header plus its address and type list.
func FormatPlaces(places []*Place) string {
	if len(places) == 0 {
		return ""
	}

	parts := make([]string, 0, len(places))
	for _, p := range places {
		var b strings.Builder
		fmt.Fprintf(&b, "## %s", p.Name)
		if p.Category != "" && p.Category != CategoryUnknown {
			fmt.Fprintf(&b, " (%s)", p.Category)
		}
		b.WriteString("\n")
		if p.Address != "" {
			fmt.Fprintf(&b, "Address: %s\n", p.Address)
		}
		if len(p.Types) > 0 {
			fmt.Fprintf(&b, "Types: %s\n", JoinTypes(p.Types))
		}
		parts = append(parts, strings.TrimRight(b.String(), "\n"))
	}

	return strings.Join(parts, "\n\n")
}
