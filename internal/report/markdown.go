package report

import (
	"fmt"
	"strings"
)

// Markdown renders the summary as a compact standalone document.
func (s Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if s.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", s.Name))
	}
	b.WriteString(fmt.Sprintf("Stage: %s\n", s.Stage))
	b.WriteString(fmt.Sprintf("Rows: %d\n", s.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(s.Columns)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range s.Columns {
		total := c.NonNull + c.Nulls
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Nulls) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", c.Name, c.Kind, c.NonNull, missPct))
		if st := c.Stats; st != nil {
			b.WriteString(fmt.Sprintf("; min %.4g, max %.4g, mean %.4g, std %.4g", st.Min, st.Max, st.Mean, st.Std))
		}
		b.WriteString("\n")
	}

	if len(s.Head) > 0 {
		b.WriteString("\n[HEAD]\n")
		b.WriteString("| " + strings.Join(cells(s.Header), " | ") + " |\n")
		b.WriteString("|" + strings.Repeat(" --- |", len(s.Header)) + "\n")
		for _, row := range s.Head {
			b.WriteString("| " + strings.Join(cells(row), " | ") + " |\n")
		}
	}
	return b.String()
}

func cells(row []string) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = strings.ReplaceAll(strings.ReplaceAll(v, "\n", " "), "|", "/")
	}
	return out
}
