package lexer

import "strings"

// Extraction is everything the lexer recovers from one normalized file.
type Extraction struct {
	Namespace string `json:"namespace"`  // namespace statement, "" unless exactly one match
	ClassName string `json:"class_name"` // class/interface/trait name, "" unless exactly one match
	Identity  string `json:"identity"`   // Namespace + Separator + ClassName

	// Imports holds fully-qualified names from use statements, deduplicated
	// in first-seen order. It is the only category that feeds the graph.
	Imports []string `json:"imports,omitempty"`

	Constructs  []string `json:"constructs,omitempty"`   // targets of "new X"
	StaticCalls []string `json:"static_calls,omitempty"` // receivers of "X::"
	TypeHints   []string `json:"type_hints,omitempty"`   // types in "X $var"
}

// Degenerate reports whether either half of the identity is missing, which
// happens when the namespace or declaration pattern matched zero or several
// times.
func (e Extraction) Degenerate() bool {
	return e.Namespace == "" || e.ClassName == ""
}

// Extract runs all six patterns over normalized source text. It never fails:
// ambiguous declarations degrade to empty identity segments.
//
// The input is expected to have been passed through [Normalize]; raw text
// works but multi-line statements will not match.
func Extract(normalized string) Extraction {
	ns := single(namespaceRe.FindAllString(normalized, -1), func(s string) string {
		return strings.TrimSuffix(strings.TrimPrefix(s, "namespace "), ";")
	})
	class := single(declarationRe.FindAllString(normalized, -1), stripKeyword)

	return Extraction{
		Namespace: ns,
		ClassName: class,
		Identity:  ns + Separator + class,
		Imports: collect(useRe.FindAllString(normalized, -1), func(s string) string {
			return strings.TrimSuffix(strings.TrimPrefix(s, "use "), ";")
		}),
		Constructs: collect(newRe.FindAllString(normalized, -1), func(s string) string {
			return strings.TrimPrefix(s, "new ")
		}),
		StaticCalls: collect(staticCallRe.FindAllString(normalized, -1), func(s string) string {
			return strings.TrimSuffix(s, "::")
		}),
		TypeHints: collect(typeHintRe.FindAllString(normalized, -1), func(s string) string {
			typ, _, _ := strings.Cut(strings.TrimPrefix(s, " "), " $")
			return typ
		}),
	}
}

// ExtractSource normalizes src and extracts from it.
func ExtractSource(src string) Extraction {
	return Extract(Normalize(src))
}

func stripKeyword(s string) string {
	for _, kw := range []string{"class ", "interface ", "trait "} {
		if rest, ok := strings.CutPrefix(s, kw); ok {
			return rest
		}
	}
	return s
}

// single returns clean(matches[0]) when there is exactly one match and ""
// otherwise.
func single(matches []string, clean func(string) string) string {
	if len(matches) != 1 {
		return ""
	}
	return clean(matches[0])
}

// collect cleans every match and drops repeats, keeping first-seen order.
func collect(matches []string, clean func(string) string) []string {
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		v := clean(m)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
