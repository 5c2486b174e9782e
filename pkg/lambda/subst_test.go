package lambda

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, input string) Term {
	t.Helper()
	term, err := ParseTerm(input)
	if err != nil {
		t.Fatalf("ParseTerm(%q): %v", input, err)
	}
	return term
}

func TestOccursFree(t *testing.T) {
	tests := []struct {
		input string
		name  string
		want  bool
	}{
		{"x", "x", true},
		{"y", "x", false},
		{"f x", "x", true},
		{`\x.x`, "x", false},
		{`\y.x`, "x", true},
		{`(\x.x) x`, "x", true},
		{`\y.\x.y x`, "x", false},
	}

	for _, tt := range tests {
		if got := OccursFree(mustParse(t, tt.input), tt.name); got != tt.want {
			t.Errorf("OccursFree(%q, %q) = %v, want %v", tt.input, tt.name, got, tt.want)
		}
	}
}

func TestFreeVariables(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"x", []string{"x"}},
		{`\x.x`, nil},
		{"f x f", []string{"f", "x", "f"}},
		{`(\x.x y) x`, []string{"y", "x"}},
		{`\x.(\x.x) x z`, []string{"z"}},
	}

	for _, tt := range tests {
		got := FreeVariables(mustParse(t, tt.input))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("FreeVariables(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestFreshName(t *testing.T) {
	tests := []struct {
		inputs []string
		want   string
	}{
		{[]string{"x"}, "v0"},
		{[]string{"v0 v1"}, "v2"},
		{[]string{`\v0.v0`}, "v0"},
		{[]string{"v0", "v1 x"}, "v2"},
	}

	for _, tt := range tests {
		var terms []Term
		for _, in := range tt.inputs {
			terms = append(terms, mustParse(t, in))
		}
		if got := FreshName(terms...); got != tt.want {
			t.Errorf("FreshName(%q) = %q, want %q", tt.inputs, got, tt.want)
		}
	}
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name string
		term string
		repl string
		v    string
		want string
	}{
		{"var_hit", "x", "a b", "x", "a b"},
		{"var_miss", "y", "a", "x", "y"},
		{"app", "x (f x)", "a", "x", "a (f a)"},
		{"shadowed", `\x.x`, "a", "x", `\x.x`},
		{"through_abs", `\y.x y`, "a", "x", `\y.a y`},
		{"capture_renames", `\x.y`, "x", "y", `\v0.x`},
		{"capture_renames_body_refs", `\x.x y`, "x", "y", `\v0.v0 x`},
		{"fresh_avoids_body", `\x.v0 x y`, "x", "y", `\v1.v0 v1 x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Substitute(mustParse(t, tt.term), mustParse(t, tt.repl), tt.v)
			want := mustParse(t, tt.want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Substitute(%s, %s, %s) mismatch (-want +got):\n%s", tt.term, tt.repl, tt.v, diff)
			}
		})
	}
}

func TestSubstituteNotFreeIsIdentity(t *testing.T) {
	for _, input := range []string{"a b", `\x.x`, `\z.(\y.y z) w`, `(\x.x x) (\x.x x)`} {
		term := mustParse(t, input)
		if got := Substitute(term, Var{Name: "q"}, "x"); !Equal(got, term) {
			t.Errorf("Substitute(%q) for non-free x = %v, want unchanged", input, got)
		}
	}
}

// Every name free in the replacement stays free after substitution.
func TestSubstituteNoCapture(t *testing.T) {
	term := mustParse(t, `\x.\y.\v0.z x y v0`)
	repl := mustParse(t, "x y v0")
	got := Substitute(term, repl, "z")

	free := FreeVariables(got)
	for _, name := range FreeVariables(repl) {
		if !slices.Contains(free, name) {
			t.Errorf("free name %q of replacement was captured in %v", name, got)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal(mustParse(t, `\x.x y`), mustParse(t, `\x.x y`)) {
		t.Errorf("identical terms should be equal")
	}
	if Equal(mustParse(t, `\x.x`), mustParse(t, `\y.y`)) {
		t.Errorf("alpha-equivalent terms with different binders are not structurally equal")
	}
	if Equal(mustParse(t, "a b"), mustParse(t, "a")) {
		t.Errorf("App and Var should differ")
	}
}
