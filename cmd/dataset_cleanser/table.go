package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// sourceResult is the outcome of cleansing a single source.
type sourceResult struct {
	Path     string
	Size     int64
	Read     int
	Accepted int
}

// prepReport is everything a prep run prints once it is done.
type prepReport struct {
	Sources  []sourceResult
	Keywords int
	Short    int
	Keyword  int
	Dupes    int
	Total    int
	Output   string
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (r *prepReport) outputLabel() string {
	if r.Output == "" {
		return "not saved"
	}
	return r.Output
}

// renderTable draws the per-source table followed by the run summary.
func (r *prepReport) renderTable() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Footer = text.FormatDefault
	tw.AppendHeader(table.Row{"Source", "Size", "Lines", "Accepted"})
	read := 0
	var size int64
	for _, src := range r.Sources {
		tw.AppendRow(table.Row{src.Path, humanize.Bytes(uint64(src.Size)),
			src.Read, src.Accepted})
		read += src.Read
		size += src.Size
	}
	tw.AppendFooter(table.Row{fmt.Sprintf("%d sources", len(r.Sources)),
		humanize.Bytes(uint64(size)), read, r.Total})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	summary := table.NewWriter()
	summary.SetStyle(table.StyleRounded)
	summary.SetTitle("Results")
	summary.AppendRows([]table.Row{
		{"Lines accepted", r.Total},
		{"Too short", r.Short},
		{"Keyword matches", r.Keyword},
		{"Duplicates", r.Dupes},
		{"Keywords filtered", r.Keywords},
		{"Output file", r.outputLabel()},
	})
	return tw.Render() + "\n" + summary.Render()
}

// renderPlain writes one tab separated line per source, then key=value
// summary lines.
func (r *prepReport) renderPlain() string {
	var sb strings.Builder
	for _, src := range r.Sources {
		sb.WriteString(strings.Join([]string{src.Path,
			strconv.FormatInt(src.Size, 10), strconv.Itoa(src.Read),
			strconv.Itoa(src.Accepted)}, "\t"))
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "accepted=%d\n", r.Total)
	fmt.Fprintf(&sb, "short=%d\n", r.Short)
	fmt.Fprintf(&sb, "keyword=%d\n", r.Keyword)
	fmt.Fprintf(&sb, "duplicate=%d\n", r.Dupes)
	fmt.Fprintf(&sb, "output=%s\n", r.outputLabel())
	return sb.String()
}

func (r *prepReport) Write(w io.Writer) error {
	var out string
	if isTerminal(w) {
		out = r.renderTable() + "\n"
	} else {
		out = r.renderPlain()
	}
	_, err := io.WriteString(w, out)
	return err
}
