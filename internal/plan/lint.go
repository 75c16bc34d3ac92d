package plan

import (
	"fmt"

	"accessor-generator/internal/analyze"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/signature"
)

// Lint reports field types that resemble owned text or a wrapper of the
// dialect without matching it. Findings are warnings and never block
// synthesis. The shallow strategy never rewrites wrappers or nested types,
// so under it only a field type that is itself near-miss owned text is
// reported. An empty strategy means signature.StrategyFull.
func Lint(decl *analyze.Aggregate, d signature.Dialect, strategy string) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	if decl == nil {
		return diags
	}

	shallow := strategy == signature.StrategyShallow

	for i := range decl.Fields {
		f := &decl.Fields[i]
		if f.Type == nil {
			continue
		}

		for _, miss := range d.NearMisses(f.Type) {
			if shallow && (miss.Role != signature.RoleOwnedText || miss.Type != analyze.TypeString(f.Type)) {
				continue
			}

			diags.AddWarning(diagnostic.CodeNearMissType,
				nearMissMessage(miss, shallow),
				decl.Source,
				analyze.FieldPath(decl.Name, f.Name),
				miss.Want)
		}
	}

	return diags
}

func nearMissMessage(miss signature.NearMiss, shallow bool) string {
	if miss.Qualified {
		return fmt.Sprintf("%s is qualified; only an unqualified %s is treated as %s", miss.Type, miss.Want, miss.Role)
	}

	if shallow {
		return fmt.Sprintf("%s resembles %s %s but is kept as written", miss.Type, miss.Role, miss.Want)
	}

	return fmt.Sprintf("%s resembles %s %s but is mapped as a plain path", miss.Type, miss.Role, miss.Want)
}
