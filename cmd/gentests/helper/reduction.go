package gentests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vic/lambdabot/pkg/lambda"
)

// TimeLimit bounds every reduction run by the generated tests.
const TimeLimit = 5 * time.Second

// Normalize renames bound variables to a canonical sequence _0, _1, ... so
// alpha-equivalent terms compare equal. Free variables keep their names, and
// no identifier can start with '_', so a canonical name never meets one.
func Normalize(t lambda.Term) lambda.Term {
	// bound name -> canonical name
	bindings := make(map[string]string)
	var idx int
	var walk func(lambda.Term) lambda.Term
	walk = func(tt lambda.Term) lambda.Term {
		switch v := tt.(type) {
		case lambda.Var:
			if name, ok := bindings[v.Name]; ok {
				return lambda.Var{Name: name}
			}
			return v
		case lambda.Abs:
			canon := fmt.Sprintf("_%d", idx)
			idx++
			// shadowing: save old if any
			old, had := bindings[v.Arg]
			bindings[v.Arg] = canon
			body := walk(v.Body)
			if had {
				bindings[v.Arg] = old
			} else {
				delete(bindings, v.Arg)
			}
			return lambda.Abs{Arg: canon, Body: body}
		case lambda.App:
			return lambda.App{Fun: walk(v.Fun), Arg: walk(v.Arg)}
		default:
			return tt
		}
	}
	return walk(t)
}

func CheckLambdaReduction(t *testing.T, testName string, inputStr string, outputStr string) {
	t.Helper()

	expectedTerm, err := lambda.ParseTerm(strings.TrimSpace(outputStr))
	if err != nil {
		t.Fatalf("Parse error for expected output: %v", err)
	}
	term, err := lambda.ParseTerm(strings.TrimSpace(inputStr))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), TimeLimit)
	defer cancel()

	r := lambda.NewReducer()
	start := time.Now()
	actualTerm, err := r.ReduceToNormalForm(ctx, term)
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("%s: reduction failed: %v", testName, err)
	}

	if diff := cmp.Diff(Normalize(expectedTerm), Normalize(actualTerm)); diff != "" {
		t.Errorf("Mismatch in %s:\nInput:    %s\nExpected: %s\nActual:   %s\n(-expected +actual):\n%s",
			testName, inputStr, expectedTerm, actualTerm, diff)
	}

	stats := r.GetStats()
	t.Logf("%s: %d reductions in %v", testName, stats.Reductions, elapsed)
}

// CheckTimeLimit asserts that inputStr does not reach normal form within limit.
func CheckTimeLimit(t *testing.T, testName string, inputStr string, limit time.Duration) {
	t.Helper()

	term, err := lambda.ParseTerm(strings.TrimSpace(inputStr))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), limit)
	defer cancel()

	r := lambda.NewReducer()
	res, err := r.ReduceToNormalForm(ctx, term)
	if !errors.Is(err, lambda.ErrTimeLimit) {
		t.Fatalf("%s: expected time limit, got %v (err=%v)", testName, res, err)
	}
	t.Logf("%s: abandoned after %d reductions", testName, r.GetStats().Reductions)
}
