package cli

import (
	"fmt"

	"github.com/dshills/lgtm/internal/codectx"
	"github.com/dshills/lgtm/internal/terminal"
)

func printBranch(con *terminal.Console, st repoState) {
	con.Info(fmt.Sprintf("Reviewing %s against %s (merge base %s)", st.Branch, st.Base, short(st.MergeBase)))
}

func printChangedFiles(con *terminal.Console, p *prepared) {
	stats := statsByPath(p.Stats)
	con.Info("")
	con.Info(fmt.Sprintf("Changed files (%d):", len(p.Changed.Kept)))
	width := 0
	for _, f := range p.Changed.Kept {
		width = max(width, len(f))
	}
	for _, f := range p.Changed.Kept {
		if s, ok := stats[f]; ok {
			con.Info(fmt.Sprintf("  %-*s  +%d -%d", width, f, s.Added, s.Deleted))
		} else {
			con.Info("  " + f)
		}
	}
	if len(p.Changed.Excluded) > 0 {
		con.Dim(fmt.Sprintf("Excluded (%d):", len(p.Changed.Excluded)))
		for _, f := range p.Changed.Excluded {
			con.Dim("  " + f)
		}
	}
}

func printContext(con *terminal.Console, rc *codectx.ReviewContext, tokens int) {
	for _, w := range rc.Warnings {
		con.Warn(w)
	}
	con.Info("")
	con.Info("Context summary:")
	con.Info(fmt.Sprintf("  Changed files: %d", len(rc.ChangedFiles)))
	con.Info(fmt.Sprintf("  Dependencies:  %d", len(rc.Dependencies)))
	con.Info(fmt.Sprintf("  Test files:    %d", len(rc.TestFiles)))
	con.Info(fmt.Sprintf("  Total:         %d files, ~%d tokens", rc.Total(), tokens))
}

func printFiles(con *terminal.Console, rc *codectx.ReviewContext) {
	groups := []struct {
		label string
		files []codectx.FileRecord
	}{
		{"Changed", rc.ChangedFiles},
		{"Dependencies", rc.Dependencies},
		{"Tests", rc.TestFiles},
	}
	for _, g := range groups {
		if len(g.files) == 0 {
			continue
		}
		con.Info("")
		con.Info(g.label + ":")
		for _, f := range g.files {
			con.Info("  " + f.Path)
		}
	}
}

func paths(files []codectx.FileRecord) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

func short(ref string) string {
	if len(ref) > 10 {
		return ref[:10]
	}
	return ref
}
