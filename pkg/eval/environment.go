package eval

import (
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/vic/lambdabot/pkg/lambda"
)

// Environment holds the terms bound by `let`. It is safe for concurrent use.
type Environment struct {
	mu    sync.RWMutex
	terms map[string]lambda.Term
}

func NewEnvironment() *Environment {
	return &Environment{terms: make(map[string]lambda.Term)}
}

// Define binds name to term, replacing any earlier binding.
func (e *Environment) Define(name string, term lambda.Term) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.terms[name] = term
}

func (e *Environment) Lookup(name string) (lambda.Term, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	term, ok := e.terms[name]
	return term, ok
}

// Names returns the bound names in sorted order.
func (e *Environment) Names() []string {
	e.mu.RLock()
	names := lo.Keys(e.terms)
	e.mu.RUnlock()
	slices.Sort(names)
	return names
}

func (e *Environment) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.terms)
}

// Expand binds the defined free names of t simultaneously:
//
//	t with free n1..nk defined  ->  (\n1...\nk.t) d1 ... dk
//
// Reduction then performs the substitution, renaming binders where needed.
// Names are bound in sorted order so the result is deterministic.
func (e *Environment) Expand(t lambda.Term) lambda.Term {
	names := lo.Uniq(lambda.FreeVariables(t))
	slices.Sort(names)

	e.mu.RLock()
	defer e.mu.RUnlock()

	type binding struct {
		name string
		val  lambda.Term
	}
	var bindings []binding
	for _, name := range names {
		if val, ok := e.terms[name]; ok {
			bindings = append(bindings, binding{name, val})
		}
	}
	if len(bindings) == 0 {
		return t
	}

	term := t
	for i := len(bindings) - 1; i >= 0; i-- {
		term = lambda.Abs{Arg: bindings[i].name, Body: term}
	}
	for _, b := range bindings {
		term = lambda.App{Fun: term, Arg: b.val}
	}
	return term
}
