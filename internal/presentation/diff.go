package presentation

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Rename is one name before and after a bulk rewrite.
type Rename struct {
	Before string
	After  string
}

// FormatRenames writes a character diff for every rename that changed
// something. Unchanged names are skipped. Without color, deletions print as
// [-x-] and insertions as {+x+}.
func (f *Formatter) FormatRenames(renames []Rename) error {
	dmp := diffmatchpatch.New()
	changed := 0
	for _, r := range renames {
		if r.Before == r.After {
			continue
		}
		changed++
		diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(r.Before, r.After, false))

		var line string
		if f.color {
			line = dmp.DiffPrettyText(diffs)
		} else {
			line = plainDiff(diffs)
		}
		if _, err := fmt.Fprintln(f.writer, line); err != nil {
			return err
		}
	}
	if changed == 0 {
		_, err := fmt.Fprintln(f.writer, "no names changed")
		return err
	}
	return nil
}

func plainDiff(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+" + d.Text + "+}")
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
