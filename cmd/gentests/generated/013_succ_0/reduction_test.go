package gentests

import _ "embed"
import "testing"
import "github.com/vic/lambdabot/cmd/gentests/helper"

//go:embed input.lc
var input string

//go:embed output.lc
var output string

func Test_013_succ_0_Reduction(t *testing.T) {
	gentests.CheckLambdaReduction(t, "013_succ_0", input, output)
}
