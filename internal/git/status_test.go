package git

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDirty(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		output   string
		expected bool
	}{
		"empty":           {output: "", expected: false},
		"whitespace only": {output: "  \n\t\n", expected: false},
		"untracked file":  {output: "?? newfile.txt\n", expected: true},
		"modified file":   {output: " M README.md\n", expected: true},
		"staged deletion": {output: "D  old.txt\n", expected: true},
		"multiple lines":  {output: " M a.go\n?? b.go\n", expected: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expected, ParseDirty(test.output))
		})
	}
}

func TestParseUnmerged(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		output   string
		expected bool
	}{
		"clean":            {output: "", expected: false},
		"ordinary changes": {output: " M a.go\n?? b.go\nA  c.go\n", expected: false},
		"both modified":    {output: " M a.go\nUU shared.txt\n", expected: true},
		"both added":       {output: "AA shared.txt\n", expected: true},
		"deleted by them":  {output: "UD gone.txt\n", expected: true},
		"file named UU":    {output: "?? UU\n", expected: false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expected, ParseUnmerged(test.output))
		})
	}
}

func TestParseDivergence(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		output   string
		expected int
	}{
		"behind":                 {output: "## main...origin/main [behind 3]\n", expected: 3},
		"ahead":                  {output: "## main...origin/main [ahead 2]\n", expected: -2},
		"in sync":                {output: "## main...origin/main\n", expected: 0},
		"diverged takes behind":  {output: "## main...origin/main [ahead 4, behind 7]\n", expected: 7},
		"empty output":           {output: "", expected: 0},
		"whitespace output":      {output: "\n\n", expected: 0},
		"no upstream":            {output: "## main\n", expected: 0},
		"upstream gone":          {output: "## main...origin/main [gone]\n", expected: 0},
		"no commits yet":         {output: "## No commits yet on main\n", expected: 0},
		"detached head":          {output: "## HEAD (no branch)\n", expected: 0},
		"only first line counts": {output: "## main...origin/main\n?? notes [behind 9]\n", expected: 0},
		"dirty tree below":       {output: "## main...origin/main [ahead 1]\n M a.go\n?? b.go\n", expected: -1},
		"behind zero":            {output: "## main...origin/main [behind 0]", expected: 0},
		"branch named ahead":     {output: "## ahead-work...origin/ahead-work [behind 5]\n", expected: 5},
		"branch named behind":    {output: "## behind-x...origin/behind-x [ahead 6]\n", expected: -6},
		"malformed count":        {output: "## main...origin/main [behind many]\n", expected: 0},
		"no trailing newline":    {output: "## feature/x...upstream/feature/x [ahead 12]", expected: -12},
		"crlf line ending":       {output: "## main...origin/main [behind 2]\r\n", expected: 2},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expected, ParseDivergence(test.output))
		})
	}
}

func TestParseDivergenceCounts(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 9, 10, 42, 1000, 123456} {
		behind := fmt.Sprintf("## main...origin/main [behind %d]\n", n)
		ahead := fmt.Sprintf("## main...origin/main [ahead %d]\n", n)

		assert.Equal(t, n, ParseDivergence(behind), behind)
		assert.Equal(t, -n, ParseDivergence(ahead), ahead)

		for _, m := range []int{1, 3, 250} {
			diverged := fmt.Sprintf("## main...origin/main [ahead %d, behind %d]\n", n, m)
			assert.Equal(t, m, ParseDivergence(diverged), diverged)
		}
	}
}
