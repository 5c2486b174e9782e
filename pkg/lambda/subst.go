package lambda

import "strconv"

// OccursFree reports whether v has an occurrence in t that is not shadowed by
// an enclosing abstraction binding v.
func OccursFree(t Term, v string) bool {
	switch t := t.(type) {
	case Var:
		return t.Name == v
	case App:
		return OccursFree(t.Fun, v) || OccursFree(t.Arg, v)
	case Abs:
		return t.Arg != v && OccursFree(t.Body, v)
	default:
		return false
	}
}

// FreeVariables returns every free occurrence in t, left to right. A name that
// occurs free more than once is listed more than once.
func FreeVariables(t Term) []string {
	var free []string
	bound := make(map[string]int)
	var walk func(Term)
	walk = func(t Term) {
		switch t := t.(type) {
		case Var:
			if bound[t.Name] == 0 {
				free = append(free, t.Name)
			}
		case App:
			walk(t.Fun)
			walk(t.Arg)
		case Abs:
			bound[t.Arg]++
			walk(t.Body)
			bound[t.Arg]--
		}
	}
	walk(t)
	return free
}

// FreshName returns the first of v0, v1, v2, ... that is free in none of ts.
func FreshName(ts ...Term) string {
	used := make(map[string]struct{})
	for _, t := range ts {
		for _, name := range FreeVariables(t) {
			used[name] = struct{}{}
		}
	}
	for i := 0; ; i++ {
		name := "v" + strconv.Itoa(i)
		if _, ok := used[name]; !ok {
			return name
		}
	}
}

// Substitute replaces the free occurrences of v in t by repl. Bound variables
// of t are renamed where repl would otherwise be captured.
func Substitute(t, repl Term, v string) Term {
	switch t := t.(type) {
	case Var:
		if t.Name == v {
			return repl
		}
		return t
	case App:
		return App{Fun: Substitute(t.Fun, repl, v), Arg: Substitute(t.Arg, repl, v)}
	case Abs:
		if t.Arg == v {
			return t
		}
		if OccursFree(repl, t.Arg) {
			// The fresh name must also avoid the body's own free names,
			// otherwise the rename itself would capture one of them.
			fresh := FreshName(repl, t.Body)
			body := Substitute(t.Body, Var{Name: fresh}, t.Arg)
			return Abs{Arg: fresh, Body: Substitute(body, repl, v)}
		}
		return Abs{Arg: t.Arg, Body: Substitute(t.Body, repl, v)}
	default:
		return t
	}
}

// Equal reports whether a and b are structurally identical. Alpha-equivalent
// terms with different binder names are not equal.
func Equal(a, b Term) bool {
	switch a := a.(type) {
	case Var:
		b, ok := b.(Var)
		return ok && a.Name == b.Name
	case App:
		b, ok := b.(App)
		return ok && Equal(a.Fun, b.Fun) && Equal(a.Arg, b.Arg)
	case Abs:
		b, ok := b.(Abs)
		return ok && a.Arg == b.Arg && Equal(a.Body, b.Body)
	default:
		return a == b
	}
}
