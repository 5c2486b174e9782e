package gentests

import _ "embed"
import "testing"
import "github.com/vic/lambdabot/cmd/gentests/helper"

//go:embed input.lc
var input string

//go:embed output.lc
var output string

func Test_101_lazy_arg_Reduction(t *testing.T) {
	gentests.CheckLambdaReduction(t, "101_lazy_arg", input, output)
}
