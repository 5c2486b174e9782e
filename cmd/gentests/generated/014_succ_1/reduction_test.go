package gentests

import _ "embed"
import "testing"
import "github.com/vic/lambdabot/cmd/gentests/helper"

//go:embed input.lc
var input string

//go:embed output.lc
var output string

func Test_014_succ_1_Reduction(t *testing.T) {
	gentests.CheckLambdaReduction(t, "014_succ_1", input, output)
}
