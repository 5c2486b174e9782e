// Package eval turns one line of lambda-calculus input into one reply,
// reducing under a time limit and keeping `let` bindings between calls.
package eval

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/vic/lambdabot/internal/ctxlog"
	"github.com/vic/lambdabot/pkg/lambda"
)

const (
	DefaultTimeLimit = time.Second

	ReplyParseError = "parse error"
	ReplyTimeLimit  = "time limit exceeded"
)

var (
	ErrParse     = errors.New("parse error")
	ErrTimeLimit = lambda.ErrTimeLimit
)

// Result is the outcome of a successful evaluation.
type Result struct {
	Term       lambda.Term
	Text       string
	Let        string // bound name, empty for a bare expression
	Reductions uint64
	Elapsed    time.Duration
	Trace      []lambda.TraceEvent
}

// Evaluator parses, expands and reduces input lines. It may be used from
// several goroutines; only the Environment is shared between calls.
type Evaluator struct {
	env       *Environment
	timeLimit time.Duration
	traceCap  int

	diagMu sync.Mutex
	diag   io.Writer
}

type Option func(*Evaluator)

func WithTimeLimit(d time.Duration) Option {
	return func(e *Evaluator) { e.timeLimit = d }
}

func WithEnvironment(env *Environment) Option {
	return func(e *Evaluator) { e.env = env }
}

// WithDiagnostics sets where lexical and syntax diagnostics are written.
func WithDiagnostics(w io.Writer) Option {
	return func(e *Evaluator) { e.diag = w }
}

// WithTrace records up to capacity intermediate terms per evaluation.
func WithTrace(capacity int) Option {
	return func(e *Evaluator) { e.traceCap = capacity }
}

func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		timeLimit: DefaultTimeLimit,
		diag:      io.Discard,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.env == nil {
		e.env = NewEnvironment()
	}
	if e.timeLimit <= 0 {
		e.timeLimit = DefaultTimeLimit
	}
	return e
}

func (e *Evaluator) Environment() *Environment { return e.env }

func (e *Evaluator) TimeLimit() time.Duration { return e.timeLimit }

// Eval evaluates one line. Failures wrap ErrParse or ErrTimeLimit.
// A `let` statement binds its name to the normal form only on success.
func (e *Evaluator) Eval(ctx context.Context, line string) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	stmt, err := lambda.Parse(line)
	if err != nil {
		e.reportParseError(err)
		logger.Debug("Parse failed.", "input", line, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	res, err := e.reduce(ctx, stmt.Expression())
	if err != nil {
		logger.Debug("Reduction abandoned.", "input", line, "error", err)
		return nil, err
	}

	if let, ok := stmt.(lambda.Let); ok {
		e.env.Define(let.Name, res.Term)
		res.Let = let.Name
		logger.Debug("Name bound.", "name", let.Name, "term", res.Text)
	}
	logger.Debug("Evaluation finished.", "input", line, "result", res.Text, "reductions", res.Reductions, "elapsed", res.Elapsed)
	return res, nil
}

// Reply evaluates one line and renders the outcome as a single string: the
// printed normal form, ReplyParseError or ReplyTimeLimit.
func (e *Evaluator) Reply(ctx context.Context, line string) string {
	return Render(e.Eval(ctx, line))
}

// Render turns the return values of Eval into a reply string.
func Render(res *Result, err error) string {
	switch {
	case err == nil:
		return res.Text
	case errors.Is(err, ErrTimeLimit):
		return ReplyTimeLimit
	default:
		return ReplyParseError
	}
}

// Define parses source, reduces it and binds the normal form to name.
func (e *Evaluator) Define(ctx context.Context, name, source string) error {
	term, err := lambda.ParseTerm(source)
	if err != nil {
		return fmt.Errorf("define %s: %w: %w", name, ErrParse, err)
	}
	res, err := e.reduce(ctx, term)
	if err != nil {
		return fmt.Errorf("define %s: %w", name, err)
	}
	e.env.Define(name, res.Term)
	ctxlog.FromContext(ctx).Debug("Name defined.", "name", name, "term", res.Text)
	return nil
}

func (e *Evaluator) reduce(ctx context.Context, term lambda.Term) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeLimit)
	defer cancel()

	r := lambda.NewReducer()
	if e.traceCap > 0 {
		r.EnableTrace(e.traceCap)
	}

	start := time.Now()
	nf, err := r.ReduceToNormalForm(ctx, e.env.Expand(term))
	elapsed := time.Since(start)
	if err != nil {
		return nil, err
	}

	return &Result{
		Term:       nf,
		Text:       nf.String(),
		Reductions: r.GetStats().Reductions,
		Elapsed:    elapsed,
		Trace:      r.TraceSnapshot(),
	}, nil
}

func (e *Evaluator) reportParseError(err error) {
	var msg string
	var lexErr *lambda.LexError
	if errors.As(err, &lexErr) {
		msg = lexErr.Diagnostic()
	} else {
		msg = err.Error()
	}

	e.diagMu.Lock()
	defer e.diagMu.Unlock()
	fmt.Fprintln(e.diag, msg)
}
