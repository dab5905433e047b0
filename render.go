package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// summaryWidth is the longest summary printed as-is; anything longer
// is cut to 67 characters plus an ellipsis.
const summaryWidth = 70

// renderVersions prints a list of releases as an aligned table or as
// the raw server JSON.
func renderVersions(w io.Writer, versions []Version, format string) error {
	if format == formatJSON {
		if versions == nil {
			versions = []Version{}
		}
		return renderJSON(w, versions)
	}

	if len(versions) == 0 {
		fmt.Fprintln(w, "No releases found for this project.")
		return nil
	}

	// Dated releases first, oldest to newest; undated ones keep their
	// server order at the end.
	sorted := make([]Version, len(versions))
	copy(sorted, versions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].sortKey() < sorted[j].sortKey()
	})

	fmt.Fprintf(w, "Found %d releases:\n", len(versions))
	rule(w, 80)
	fmt.Fprintf(w, "%-10s %-20s %-10s %-12s %s\n", "ID", "Name", "Released", "Release Date", "Description")
	rule(w, 80)

	for _, v := range sorted {
		released := "No"
		if v.Released() {
			released = "Yes"
		}
		fmt.Fprintf(w, "%-10s %-20s %-10s %-12s %s\n",
			v.ID(), v.Name(), released, v.ReleaseDate(), v.Description())
	}
	return nil
}

// renderIssues prints a list of issues as an aligned table or as the
// raw server JSON. The server already sorted them by key.
func renderIssues(w io.Writer, issues []Issue, format string) error {
	if format == formatJSON {
		if issues == nil {
			issues = []Issue{}
		}
		return renderJSON(w, issues)
	}

	if len(issues) == 0 {
		fmt.Fprintln(w, "No issues found for this release.")
		return nil
	}

	fmt.Fprintf(w, "Found %d issues:\n", len(issues))
	rule(w, 120)
	fmt.Fprintf(w, "%-15s %-15s %-15s %-10s %s\n", "Key", "Type", "Status", "Priority", "Summary")
	rule(w, 120)

	for _, issue := range issues {
		fmt.Fprintf(w, "%-15s %-15s %-15s %-10s %s\n",
			issue.Key(), issue.Type(), issue.Status(), issue.Priority(),
			truncate(issue.Summary(), summaryWidth))
	}
	return nil
}

func renderJSON(w io.Writer, list interface{}) error {
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	fmt.Fprintln(w, string(b))
	return nil
}

func rule(w io.Writer, width int) {
	fmt.Fprintln(w, strings.Repeat("-", width))
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
