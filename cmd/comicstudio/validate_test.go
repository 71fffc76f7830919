package main

import (
	"bytes"
	"testing"

	"comicstudio/internal/validate"
)

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	writeReport(&buf, &validate.Report{})
	if buf.String() != "No issues found.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}

	buf.Reset()
	writeReport(&buf, &validate.Report{Issues: []validate.Issue{
		{Severity: validate.SeverityWarn, Code: "empty_name", Message: "character has no name", Universe: "u1", Path: "u1/characters/c1"},
		{Severity: validate.SeverityError, Code: "dangling_active_universe", Message: "active universe u9 does not exist"},
	}})
	want := "Errors (1):\n" +
		"  - [dangling_active_universe] session: active universe u9 does not exist\n" +
		"\n" +
		"Warnings (1):\n" +
		"  - [empty_name] u1/characters/c1: character has no name\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}
