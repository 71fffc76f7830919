package validate

import (
	"fmt"
	"strings"

	"comicstudio/internal/store"
	"comicstudio/internal/studio"
	"comicstudio/internal/universe"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeDuplicateID    = "duplicate_id"
	codeMissingID      = "missing_id"
	codeDanglingActive = "dangling_active_universe"
	codeStaleView      = "stale_view"
	codeImageNotData   = "image_not_embedded"
	codeEmptyName      = "empty_name"
	codeEmptyDialogue  = "empty_dialogue"
)

type Issue struct {
	Severity Severity
	Code     string
	Message  string
	Universe string
	Path     string
}

type Report struct {
	Issues []Issue
}

// Counts returns the number of errors and warnings in the report.
func (r *Report) Counts() (errs, warns int) {
	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityError:
			errs++
		case SeverityWarn:
			warns++
		}
	}
	return errs, warns
}

func (r *Report) HasErrors() bool {
	errs, _ := r.Counts()
	return errs > 0
}

// Run checks the tree and the persisted selection for problems the editor
// itself never produces but hand-edited or imported data may contain.
func Run(tree universe.Tree, session store.Session) *Report {
	issues := make([]Issue, 0)
	seen := make(map[string]string)

	universe.Walk(tree, func(p universe.Path, n universe.Node) bool {
		path := p.String()
		id := n.NodeID()
		if strings.TrimSpace(id) == "" {
			issues = append(issues, newIssue(p, SeverityError, codeMissingID, fmt.Sprintf("%s without id", n.Kind())))
		} else if first, dup := seen[id]; dup {
			issues = append(issues, newIssue(p, SeverityError, codeDuplicateID, fmt.Sprintf("id %q already used at %s", id, first)))
		} else {
			seen[id] = path
		}
		issues = append(issues, checkNode(p, n)...)
		return true
	})

	if session.ActiveUniverseID != "" {
		u, ok := universe.FindUniverse(tree, session.ActiveUniverseID)
		switch {
		case !ok:
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeDanglingActive,
				Message:  fmt.Sprintf("active universe %q does not exist", session.ActiveUniverseID),
				Universe: session.ActiveUniverseID,
			})
		case session.View != "" && session.View != studio.ViewDashboard &&
			studio.Resolve(u, session.View).View == studio.ViewDashboard:
			issues = append(issues, Issue{
				Severity: SeverityWarn,
				Code:     codeStaleView,
				Message:  fmt.Sprintf("view %q names nothing and falls back to the dashboard", session.View),
				Universe: u.ID,
			})
		}
	}

	return &Report{Issues: issues}
}

func checkNode(p universe.Path, n universe.Node) []Issue {
	var issues []Issue
	blank := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			issues = append(issues, newIssue(p, SeverityWarn, codeEmptyName, fmt.Sprintf("%s has an empty %s", n.Kind(), field)))
		}
	}
	embedded := func(field, value string) {
		if value != "" && !strings.HasPrefix(value, "data:") {
			issues = append(issues, newIssue(p, SeverityWarn, codeImageNotData, fmt.Sprintf("%s %s is not an embedded data URI", n.Kind(), field)))
		}
	}

	switch v := n.(type) {
	case universe.Universe:
		blank("name", v.Name)
		embedded("logo", v.CustomLogo)
	case universe.Character:
		blank("name", v.Name)
		embedded("portrait", v.Image)
	case universe.Location:
		blank("name", v.Name)
	case universe.Script:
		blank("title", v.Title)
	case universe.Category:
		blank("name", v.Name)
	case universe.Item:
		blank("name", v.Name)
	case universe.Image:
		embedded("url", v.URL)
	case universe.Dialogue:
		if strings.TrimSpace(v.Speaker) == "" && strings.TrimSpace(v.Text) == "" {
			issues = append(issues, newIssue(p, SeverityWarn, codeEmptyDialogue, "dialogue line has neither speaker nor text"))
		}
	}
	return issues
}

func newIssue(p universe.Path, severity Severity, code, message string) Issue {
	return Issue{
		Severity: severity,
		Code:     code,
		Message:  message,
		Universe: p.Universe,
		Path:     p.String(),
	}
}
