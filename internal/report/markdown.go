package report

import (
	"fmt"
	"strings"

	"lockstep/internal/checker"
)

// RenderMarkdown formats a run summary as Markdown, suitable for a CI job
// summary or a commit comment.
func RenderMarkdown(run *Run, results []checker.Result) string {
	var sb strings.Builder

	sb.WriteString("# Lockstep check report\n\n")
	fmt.Fprintf(&sb, "- Started: %s\n", run.StartedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	if run.XMLPath != "" {
		fmt.Fprintf(&sb, "- Introspection data: `%s`\n", run.XMLPath)
	}
	fmt.Fprintf(&sb, "- Checks: %d total, %d passed, %d failed, %d errored\n\n",
		run.Total, run.Passed, run.Failed, run.Errors)

	sb.WriteString("| Status | Type | Declaration | Declared | Reported |\n")
	sb.WriteString("|--------|------|-------------|----------|----------|\n")
	for _, r := range results {
		decl := ""
		if r.Interface != "" {
			decl = fmt.Sprintf("%s.%s", r.Interface, r.Member)
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | `%s` | `%s` |\n",
			statusIcon(r.Status), r.Type, decl, r.Declared, r.Reported)
	}

	var details []checker.Result
	for _, r := range results {
		if r.Status != checker.StatusPass && r.Detail != "" {
			details = append(details, r)
		}
	}
	if len(details) > 0 {
		sb.WriteString("\n## Failures\n")
		for _, r := range details {
			fmt.Fprintf(&sb, "\n### %s\n\n```\n%s\n```\n", r.Type, strings.TrimRight(r.Detail, "\n"))
		}
	}

	return sb.String()
}

func statusIcon(s checker.Status) string {
	switch s {
	case checker.StatusPass:
		return "✅"
	case checker.StatusFail:
		return "❌"
	default:
		return "⚠️"
	}
}
