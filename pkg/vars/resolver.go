package vars

import (
	"strings"

	"github.com/uipilot-dev/uipilot/pkg/core"
)

// Template token delimiters.
const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Mode controls how the resolver treats a token whose variable is not set.
type Mode int

const (
	// Lenient passes unresolved tokens through unchanged.
	Lenient Mode = iota
	// Strict raises UnknownVariable for unresolved tokens.
	Strict
)

// Resolver substitutes {{name}} tokens against a Scopes store. Fields
// declared as boolean or numeric are resolved as strings first and coerced
// afterwards by the consuming step.
type Resolver struct {
	scopes *Scopes
	mode   Mode
}

// NewResolver creates a resolver over the given store.
func NewResolver(scopes *Scopes, mode Mode) *Resolver {
	return &Resolver{scopes: scopes, mode: mode}
}

// Resolve replaces every {{name}} occurrence in the template with the
// stringified variable value. Each token is resolved independently; names
// are matched case-sensitively. In Strict mode an unset variable raises
// UnknownVariable; in Lenient mode the token survives as a literal.
func (r *Resolver) Resolve(template string) (string, error) {
	if !strings.Contains(template, openDelim) {
		return template, nil
	}

	var out strings.Builder
	rest := template
	for {
		start := strings.Index(rest, openDelim)
		if start == -1 {
			out.WriteString(rest)
			break
		}
		end := strings.Index(rest[start+len(openDelim):], closeDelim)
		if end == -1 {
			// Unterminated token: literal from here on.
			out.WriteString(rest)
			break
		}

		name := rest[start+len(openDelim) : start+len(openDelim)+end]
		out.WriteString(rest[:start])

		if value, ok := r.scopes.LookupString(name); ok {
			out.WriteString(value)
		} else if r.mode == Strict {
			return "", core.ErrUnknownVariable.
				WithMessage("unknown variable %q in template %q", name, template).
				WithDetails(map[string]interface{}{"variable": name})
		} else {
			out.WriteString(openDelim + name + closeDelim)
		}

		rest = rest[start+len(openDelim)+end+len(closeDelim):]
	}

	return out.String(), nil
}

// ResolveOptional resolves a nullable template: nil in, nil out.
func (r *Resolver) ResolveOptional(template *string) (*string, error) {
	if template == nil {
		return nil, nil
	}
	resolved, err := r.Resolve(*template)
	if err != nil {
		return nil, err
	}
	return &resolved, nil
}
