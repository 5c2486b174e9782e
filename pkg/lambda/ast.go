package lambda

// Term represents a lambda calculus term.
type Term interface {
	String() string
}

// Var represents a variable usage.
type Var struct {
	Name string
}

func (v Var) String() string {
	return v.Name
}

// Abs represents an abstraction (lambda).
type Abs struct {
	Arg  string
	Body Term
}

func (a Abs) String() string {
	return `\` + a.Arg + "." + a.Body.String()
}

// App represents an application.
// Either side is parenthesized unless it is a bare variable, which keeps the
// printed form unambiguous when parsed back.
type App struct {
	Fun Term
	Arg Term
}

func (a App) String() string {
	return operand(a.Fun) + " " + operand(a.Arg)
}

func operand(t Term) string {
	if v, ok := t.(Var); ok {
		return v.Name
	}
	return "(" + t.String() + ")"
}

// Statement is the result of parsing one input line.
type Statement interface {
	Expression() Term
	String() string
}

// Let binds Name to Val: `let name = val`.
type Let struct {
	Name string
	Val  Term
}

func (l Let) Expression() Term { return l.Val }

func (l Let) String() string {
	return "let " + l.Name + " = " + l.Val.String()
}

// Expr is a bare expression statement.
type Expr struct {
	Val Term
}

func (e Expr) Expression() Term { return e.Val }

func (e Expr) String() string { return e.Val.String() }
