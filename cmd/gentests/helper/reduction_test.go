package gentests

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vic/lambdabot/pkg/lambda"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		a, b  string
		equal bool
	}{
		{"alpha_equivalent", `\x.x`, `\y.y`, true},
		{"nested", `\x y.y x`, `\a b.b a`, true},
		{"shadowing", `\x.\x.x`, `\a.\b.b`, true},
		{"free_names_kept", `\x.y`, `\x.z`, false},
		{"free_name_like_canonical", `\y.x0`, `\z.z`, false},
		{"free_vs_bound", `\x.v0`, `\v0.v0`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := lambda.ParseTerm(tt.a)
			if err != nil {
				t.Fatalf("ParseTerm(%q): %v", tt.a, err)
			}
			b, err := lambda.ParseTerm(tt.b)
			if err != nil {
				t.Fatalf("ParseTerm(%q): %v", tt.b, err)
			}
			diff := cmp.Diff(Normalize(a), Normalize(b))
			if (diff == "") != tt.equal {
				t.Errorf("Normalize(%s) vs Normalize(%s): equal = %v, want %v\n%s", tt.a, tt.b, diff == "", tt.equal, diff)
			}
		})
	}
}
