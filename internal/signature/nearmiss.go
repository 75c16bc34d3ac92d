package signature

import (
	"accessor-generator/internal/analyze"
	"accessor-generator/internal/match"
)

// nearMissThreshold is the minimum similarity for a differently spelled
// wrapper identifier to be reported.
const nearMissThreshold = 0.75

// Marker roles reported by NearMisses.
const (
	RoleOwnedText = "owned text"
	RoleOptional  = "optional"
	RoleSequence  = "sequence"
)

// NearMiss is a path in a field type that resembles a dialect marker but is
// not recognized as one, so the full strategy maps it as a plain path.
type NearMiss struct {
	// Type is the path as written, e.g. "Optional<String>".
	Type string
	// Want is the dialect identifier it resembles.
	Want string
	Role string
	// Qualified is set when the identifier matches exactly but the path has
	// a module prefix (std::option::Option<T>).
	Qualified bool
}

// NearMisses walks t and reports every path that looks like owned text or a
// wrapper without matching the dialect exactly. Owned text is only reported
// for case variants ("string"); wrappers also need exactly one type
// argument.
func (d Dialect) NearMisses(t analyze.TypeExpr) []NearMiss {
	var out []NearMiss

	d.walkNearMisses(t, &out)

	return out
}

func (d Dialect) walkNearMisses(t analyze.TypeExpr, out *[]NearMiss) {
	switch tt := t.(type) {
	case *analyze.Path:
		if miss, ok := d.nearMiss(tt); ok {
			*out = append(*out, miss)
		}

		for _, seg := range tt.Segments {
			for _, arg := range seg.Args {
				d.walkNearMisses(arg, out)
			}
		}

	case *analyze.Ref:
		d.walkNearMisses(tt.Elem, out)

	case *analyze.Slice:
		d.walkNearMisses(tt.Elem, out)

	case *analyze.Array:
		d.walkNearMisses(tt.Elem, out)

	case *analyze.Tuple:
		for _, e := range tt.Elems {
			d.walkNearMisses(e, out)
		}
	}
}

func (d Dialect) nearMiss(p *analyze.Path) (NearMiss, bool) {
	if len(p.Segments) == 0 {
		return NearMiss{}, false
	}

	last := p.Last()
	typeArgs := 0

	for _, arg := range last.Args {
		if o, ok := arg.(*analyze.Opaque); !ok || !o.Arg {
			typeArgs++
		}
	}

	plain := p.IsPlain()
	miss := NearMiss{Type: p.String()}

	if typeArgs == 0 && len(last.Lifetimes) == 0 {
		if !plain && last.Ident == d.OwnedText {
			miss.Want, miss.Role, miss.Qualified = d.OwnedText, RoleOwnedText, true
			return miss, true
		}

		if best, ok := match.Rank(last.Ident, []string{d.OwnedText}).Best(); ok && best.Exact {
			miss.Want, miss.Role = d.OwnedText, RoleOwnedText
			return miss, true
		}

		return NearMiss{}, false
	}

	if typeArgs != 1 {
		return NearMiss{}, false
	}

	roles := map[string]string{d.Optional: RoleOptional, d.Sequence: RoleSequence}

	if role, ok := roles[last.Ident]; ok {
		if plain && len(last.Lifetimes) == 0 {
			// recognized as written
			return NearMiss{}, false
		}

		miss.Want, miss.Role, miss.Qualified = last.Ident, role, !plain

		return miss, true
	}

	best, ok := match.Rank(last.Ident, []string{d.Optional, d.Sequence}).Best()
	if !ok || (!best.Exact && best.Score < nearMissThreshold) {
		return NearMiss{}, false
	}

	miss.Want, miss.Role = best.Name, roles[best.Name]

	return miss, true
}
