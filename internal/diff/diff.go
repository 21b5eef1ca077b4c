// internal/diff/diff.go
package diff

import (
	"bytes"
	"strings"
)

// RunType tags a run of lines as unchanged, added, or removed
type RunType int

const (
	Unchanged RunType = iota
	Added
	Removed
)

// Run is a maximal span of consecutive lines sharing one tag.
type Run struct {
	Type  RunType
	Lines []string
}

// Result contains the complete diff information
type Result struct {
	Runs  []Run
	Stats struct {
		Additions int
		Deletions int
	}
}

// Engine provides line-level diffing capabilities
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Diff generates a full line-by-line edit script between two contents.
// Every line of both inputs appears exactly once across the emitted runs:
// concatenating unchanged+removed lines reproduces oldContent's lines,
// unchanged+added reproduces newContent's.
func (e *Engine) Diff(oldContent, newContent []byte) *Result {
	oldLines := splitLines(oldContent)
	newLines := splitLines(newContent)

	lcs := e.computeLCS(oldLines, newLines)
	lines, types := e.backtrack(oldLines, newLines, lcs)

	result := &Result{Runs: coalesce(lines, types)}
	for _, t := range types {
		switch t {
		case Added:
			result.Stats.Additions++
		case Removed:
			result.Stats.Deletions++
		}
	}

	return result
}

// computeLCS creates a longest-common-subsequence length matrix
func (e *Engine) computeLCS(oldLines, newLines []string) [][]int {
	matrix := make([][]int, len(oldLines)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(newLines)+1)
	}

	for i := 1; i <= len(oldLines); i++ {
		for j := 1; j <= len(newLines); j++ {
			if oldLines[i-1] == newLines[j-1] {
				matrix[i][j] = matrix[i-1][j-1] + 1
			} else {
				matrix[i][j] = max(matrix[i-1][j], matrix[i][j-1])
			}
		}
	}

	return matrix
}

// backtrack walks the LCS matrix from the bottom-right corner and emits
// the edit script in order.
func (e *Engine) backtrack(oldLines, newLines []string, lcs [][]int) ([]string, []RunType) {
	var lines []string
	var types []RunType

	i, j := len(oldLines), len(newLines)
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && oldLines[i-1] == newLines[j-1]:
			lines = append(lines, oldLines[i-1])
			types = append(types, Unchanged)
			i--
			j--
		case j > 0 && (i == 0 || lcs[i][j-1] >= lcs[i-1][j]):
			lines = append(lines, newLines[j-1])
			types = append(types, Added)
			j--
		default:
			lines = append(lines, oldLines[i-1])
			types = append(types, Removed)
			i--
		}
	}

	// Emitted back-to-front; restore document order.
	for a, b := 0, len(lines)-1; a < b; a, b = a+1, b-1 {
		lines[a], lines[b] = lines[b], lines[a]
		types[a], types[b] = types[b], types[a]
	}

	return lines, types
}

// coalesce groups consecutive same-tag lines into runs
func coalesce(lines []string, types []RunType) []Run {
	var runs []Run
	for k := range lines {
		if len(runs) == 0 || runs[len(runs)-1].Type != types[k] {
			runs = append(runs, Run{Type: types[k]})
		}
		last := &runs[len(runs)-1]
		last.Lines = append(last.Lines, lines[k])
	}
	return runs
}

// splitLines splits content on newlines, treating empty content as having
// no lines at all so pure additions and deletions come out exact.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	trimmed := bytes.TrimSuffix(content, []byte{'\n'})
	parts := bytes.Split(trimmed, []byte{'\n'})

	lines := make([]string, len(parts))
	for i, p := range parts {
		lines[i] = string(p)
	}
	return lines
}

// Format returns a textual representation of the diff with +/- prefixes.
func (r *Result) Format() string {
	var b strings.Builder

	for _, run := range r.Runs {
		var prefix string
		switch run.Type {
		case Added:
			prefix = "+ "
		case Removed:
			prefix = "- "
		case Unchanged:
			prefix = "  "
		}
		for _, line := range run.Lines {
			b.WriteString(prefix)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return b.String()
}
