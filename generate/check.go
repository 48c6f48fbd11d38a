package generate

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/pinmapgen/pinmapgen/emit"
	"github.com/pinmapgen/pinmapgen/output"
	"github.com/pinmapgen/pinmapgen/pinmap"
)

// A Stale file differs from what would be generated now.
type Stale struct {
	Path    string
	Missing bool
	// Diff is a line diff from the file on disk to the fresh render, with
	// timestamps blanked.
	Diff string
}

// Check compares the files under root with fresh renders of p. Timestamp
// lines are ignored. It returns the stale files, empty when everything is up
// to date.
func (g *Generator) Check(p *pinmap.Project, root string, formats []emit.Format) ([]Stale, error) {
	files, err := g.Render(p, root, formats)
	if err != nil {
		return nil, err
	}
	w := output.NewWriter(g.Fs)
	var stale []Stale
	for _, f := range files {
		onDisk, ok, err := w.Read(f.Path)
		if err != nil {
			return nil, err
		}
		if !ok {
			stale = append(stale, Stale{Path: f.Path, Missing: true})
			continue
		}
		have, want := emit.StripTimestamp(onDisk), emit.StripTimestamp(f.Content)
		if have != want {
			stale = append(stale, Stale{Path: f.Path, Diff: lineDiff(f.Path, have, want)})
		}
	}
	return stale, nil
}

const contextLines = 2

type diffLine struct {
	op   diffmatchpatch.Operation
	text string
}

func lineDiff(path, have, want string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(have, want)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var all []diffLine
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line != "" {
				all = append(all, diffLine{d.Type, strings.TrimSuffix(line, "\n")})
			}
		}
	}

	show := make([]bool, len(all))
	for i, l := range all {
		if l.op == diffmatchpatch.DiffEqual {
			continue
		}
		for j := i - contextLines; j <= i+contextLines; j++ {
			if j >= 0 && j < len(all) {
				show[j] = true
			}
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s (on disk)\n+++ %s (generated)\n", path, path)
	gap := false
	for i, l := range all {
		if !show[i] {
			gap = true
			continue
		}
		if gap {
			sb.WriteString("@@\n")
			gap = false
		}
		switch l.op {
		case diffmatchpatch.DiffInsert:
			sb.WriteString("+")
		case diffmatchpatch.DiffDelete:
			sb.WriteString("-")
		default:
			sb.WriteString(" ")
		}
		sb.WriteString(l.text)
		sb.WriteString("\n")
	}
	return sb.String()
}
