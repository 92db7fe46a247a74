// Package config provides configuration models and helpers for the
// preprocessor.
//
// This file adds a lightweight validator for Pipeline values. It performs
// static checks and returns a list of issues (errors and warnings) that the
// CLI surfaces before anything is fetched.
package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates something worth surfacing that does not block
	// execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "source.locator").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidatePipeline performs static validation of a Pipeline. It does not
// mutate p.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue
	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateOutput(p.Output)...)
	issues = append(issues, validateHTTP(p.Source, p.HTTP)...)
	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue

	loc := strings.TrimSpace(s.Locator)
	if loc == "" {
		return append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.locator",
			Message:  "source.locator must not be empty",
		})
	}

	switch s.Kind {
	case KindAuto, KindFile, KindHTTP:
	default:
		return append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.kind",
			Message:  fmt.Sprintf("unknown source kind %q; want %q or %q", s.Kind, KindFile, KindHTTP),
		})
	}

	if s.ResolvedKind() == KindHTTP {
		u, err := url.Parse(loc)
		switch {
		case err != nil:
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.locator",
				Message:  fmt.Sprintf("invalid URL: %v", err),
			})
		case u.Scheme != "http" && u.Scheme != "https":
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.locator",
				Message:  fmt.Sprintf("http source requires an http(s) URL, got scheme %q", u.Scheme),
			})
		case u.Host == "":
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.locator",
				Message:  "URL has no host",
			})
		}
	}

	return issues
}

func validateOutput(o Output) []Issue {
	var issues []Issue

	p := strings.TrimSpace(o.Path)
	if p == "" {
		return append(issues, Issue{
			Severity: SeverityError,
			Path:     "output.path",
			Message:  "output.path must not be empty",
		})
	}
	if strings.HasSuffix(p, "/") || strings.HasSuffix(p, string(filepath.Separator)) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output.path",
			Message:  "output.path must name a file, not a directory",
		})
	}
	if ext := filepath.Ext(p); ext != ".jsonl" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "output.path",
			Message:  fmt.Sprintf("output extension %q; downstream importers usually expect .jsonl", ext),
		})
	}

	return issues
}

func validateHTTP(s Source, h HTTP) []Issue {
	var issues []Issue

	if h.Timeout < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "http.timeout",
			Message:  "http.timeout must be >= 0 (0 selects the default)",
		})
	}
	if h.InsecureSkipVerify && s.ResolvedKind() == KindHTTP {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "http.insecure_skip_verify",
			Message:  "TLS certificate verification is disabled",
		})
	}

	return issues
}
