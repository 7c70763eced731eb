package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// Expr is a parsed visibility condition over prior answers. Legacy catalogs
// encode these as strings like "q12 == 'yes' AND q14 != 'none'"; they are
// parsed once at catalog load and evaluated as a tree afterwards.
type Expr interface {
	// Refs lists every question ID the expression consults, for load-time
	// reference validation.
	Refs() []string

	eval(ctx *evalContext) bool
}

type evalContext struct {
	answers map[string]Answer
	visible map[string]bool
}

type andExpr []Expr

func (e andExpr) eval(ctx *evalContext) bool {
	for _, sub := range e {
		if !sub.eval(ctx) {
			return false
		}
	}
	return true
}

func (e andExpr) Refs() []string {
	var out []string
	for _, sub := range e {
		out = append(out, sub.Refs()...)
	}
	return out
}

type orExpr []Expr

func (e orExpr) eval(ctx *evalContext) bool {
	for _, sub := range e {
		if sub.eval(ctx) {
			return true
		}
	}
	return false
}

func (e orExpr) Refs() []string {
	var out []string
	for _, sub := range e {
		out = append(out, sub.Refs()...)
	}
	return out
}

type cmpExpr struct {
	Ref   string
	Op    DependencyOp
	Value string
}

// eval applies the strict-visibility rule: a comparison against a hidden
// question is false, a comparison against a visible but not-yet-answered
// question is true so forward questions stay reachable.
func (e cmpExpr) eval(ctx *evalContext) bool {
	if !ctx.visible[e.Ref] {
		return false
	}
	a, ok := ctx.answers[e.Ref]
	if !ok || a.IsZero() {
		return true
	}
	if e.Op == DepNotEquals {
		return !a.Matches(e.Value)
	}
	return a.Matches(e.Value)
}

func (e cmpExpr) Refs() []string {
	return []string{e.Ref}
}

var cmpPattern = regexp.MustCompile(`^\s*([\w.-]+)\s*(==|!=)\s*'([^']*)'\s*$`)

// ParseCondition turns a legacy condition string into an expression tree.
// Grammar, outermost first: clauses joined by " OR ", then by " AND ", then a
// single ID (==|!=) 'value' comparison. OR binds looser than AND.
func ParseCondition(s string) (Expr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty condition")
	}
	if parts := strings.Split(s, " OR "); len(parts) > 1 {
		out := make(orExpr, 0, len(parts))
		for _, p := range parts {
			sub, err := ParseCondition(p)
			if err != nil {
				return nil, err
			}
			out = append(out, sub)
		}
		return out, nil
	}
	if parts := strings.Split(s, " AND "); len(parts) > 1 {
		out := make(andExpr, 0, len(parts))
		for _, p := range parts {
			sub, err := ParseCondition(p)
			if err != nil {
				return nil, err
			}
			out = append(out, sub)
		}
		return out, nil
	}
	m := cmpPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("malformed condition clause %q", s)
	}
	return cmpExpr{Ref: m[1], Op: DependencyOp(m[2]), Value: m[3]}, nil
}
