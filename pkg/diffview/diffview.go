// Package diffview renders line diffs between two versions of a file.
package diffview

import (
	"strings"

	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a diff line.
type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

// Line is one line of a diff.
type Line struct {
	Op   Op
	Text string
}

// Prefix returns the unified diff marker for the line.
func (l Line) Prefix() string {
	switch l.Op {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return " "
	}
}

// Stats counts changed lines.
type Stats struct {
	Added   int `json:"added" yaml:"added"`
	Removed int `json:"removed" yaml:"removed"`
}

func (s Stats) Changed() bool {
	return s.Added > 0 || s.Removed > 0
}

// Lines computes a line-level diff of before and after. Every distinct line
// is encoded as one rune so the character diff works on whole lines.
func Lines(before, after string) []Line {
	enc := newLineEncoder()
	a := enc.encode(before)
	b := enc.encode(after)

	d := dmp.New()
	diffs := d.DiffMainRunes(a, b, false)

	var out []Line
	for _, df := range diffs {
		op := Equal
		switch df.Type {
		case dmp.DiffInsert:
			op = Insert
		case dmp.DiffDelete:
			op = Delete
		}
		for _, r := range df.Text {
			out = append(out, Line{Op: op, Text: enc.decode(r)})
		}
	}
	return out
}

// lineEncoder assigns each distinct line a rune. Surrogate code points are
// skipped because they do not survive a round trip through a Go string.
type lineEncoder struct {
	index map[string]rune
	lines []string
}

func newLineEncoder() *lineEncoder {
	return &lineEncoder{index: make(map[string]rune)}
}

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

func (e *lineEncoder) encode(text string) []rune {
	lines := splitLines(text)
	out := make([]rune, 0, len(lines))
	for _, line := range lines {
		r, ok := e.index[line]
		if !ok {
			r = rune(len(e.lines))
			if r >= surrogateMin {
				r += surrogateMax - surrogateMin + 1
			}
			e.index[line] = r
			e.lines = append(e.lines, line)
		}
		out = append(out, r)
	}
	return out
}

func (e *lineEncoder) decode(r rune) string {
	i := int(r)
	if r > surrogateMax {
		i -= surrogateMax - surrogateMin + 1
	}
	return e.lines[i]
}

// Unified renders the diff with "+", "-" and " " prefixes, one line each.
func Unified(before, after string) string {
	if before == after {
		return ""
	}
	var sb strings.Builder
	for _, l := range Lines(before, after) {
		sb.WriteString(l.Prefix())
		sb.WriteString(l.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

func Compute(before, after string) Stats {
	var s Stats
	for _, l := range Lines(before, after) {
		switch l.Op {
		case Insert:
			s.Added++
		case Delete:
			s.Removed++
		}
	}
	return s
}

// splitLines splits text into lines, dropping the empty tail after a final
// newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
