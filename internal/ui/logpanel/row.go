package logpanel

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/jjview/internal/jj"
	"github.com/zjrosen/jjview/internal/ui/styles"
)

// renderEntry formats one commit as a single row:
//
//	@ kxqpmwzt?? 3f2a91bc alice          2026-01-02 15:04 main fix the parser
func renderEntry(e jj.LogEntry) string {
	var b strings.Builder

	b.WriteString(nodeSymbol(e))
	b.WriteString(" ")
	b.WriteString(changeIDStyle.Render(e.Head.ChangeID.Short()))
	if e.Divergent {
		b.WriteString(divergentStyle.Render(divergentMarker))
	}
	b.WriteString(" ")
	b.WriteString(commitIDStyle.Render(e.Head.CommitID.Short()))
	b.WriteString(" ")
	b.WriteString(authorStyle.Render(fixedWidth(authorName(e.Author), authorWidth)))
	b.WriteString(" ")
	if !e.Timestamp.IsZero() {
		b.WriteString(timeStyle.Render(e.Timestamp.Local().Format(timestampLayout)))
		b.WriteString(" ")
	}
	if len(e.Bookmarks) > 0 {
		b.WriteString(bookmarkStyle.Render(strings.Join(e.Bookmarks, " ")))
		b.WriteString(" ")
	}

	desc := e.Description
	switch {
	case desc == "" && e.Empty:
		desc = styles.MutedStyle.Render("(empty) (no description set)")
	case desc == "":
		desc = styles.MutedStyle.Render("(no description set)")
	case e.Empty:
		desc = styles.MutedStyle.Render("(empty)") + " " + desc
	}
	b.WriteString(desc)

	return b.String()
}

func nodeSymbol(e jj.LogEntry) string {
	switch {
	case e.IsWorkingCopy:
		return wcStyle.Render("@")
	case e.Immutable:
		return "◆"
	default:
		return "○"
	}
}

// authorName shortens an email to its local part.
func authorName(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}

// fixedWidth pads or truncates s to exactly width terminal cells.
func fixedWidth(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// padCells fits a styled row to exactly cols cells, so the selection
// highlight spans the whole panel.
func padCells(row string, cols int) string {
	if ansi.StringWidth(row) > cols {
		row = ansi.Truncate(row, cols, "…")
	}
	return row + strings.Repeat(" ", max(cols-ansi.StringWidth(row), 0))
}
