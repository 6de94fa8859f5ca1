package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/n2fs/dupfind/internal/report"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunEmptyTreeReportsZeroFiles(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	if err := Run(context.Background(), Options{Roots: []string{dir}}, report.New(&buf)); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "files found: 0\n") {
		t.Fatalf("expected zero files reported, got:\n%s", out)
	}
	if strings.Contains(out, "same ") {
		t.Fatalf("expected no duplicate groups for an empty tree, got:\n%s", out)
	}
}

func TestRunFindsIdenticalSmallFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a"), "aaaaaaaa")
	writeFile(t, filepath.Join(dir, "b"), "aaaaaaaa")
	writeFile(t, filepath.Join(dir, "c"), "aaaaaaaa")
	writeFile(t, filepath.Join(dir, "d"), "bbbbbbbb")

	var buf bytes.Buffer
	if err := Run(context.Background(), Options{Roots: []string{dir}}, report.New(&buf)); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	found := false
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "same ") {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, "same "))
		if len(fields) != 3 {
			t.Fatalf("expected exactly 3 paths in the duplicate group, got %v", fields)
		}
		for _, f := range fields {
			if filepath.Base(f) == "d" {
				t.Fatalf("d has distinct content and must not appear, line=%q", line)
			}
		}
		found = true
	}
	if !found {
		t.Fatalf("expected one 'same' line, got:\n%s", out)
	}
}

func TestRunHardlinkPairPlusContentDuplicate(t *testing.T) {
	dir := t.TempDir()
	x := filepath.Join(dir, "x")
	y := filepath.Join(dir, "y")
	z := filepath.Join(dir, "z")
	w := filepath.Join(dir, "w")

	writeFile(t, x, "aaaaaaaa")
	if err := os.Link(x, y); err != nil {
		t.Skipf("hardlinks unsupported here: %v", err)
	}
	writeFile(t, z, "aaaaaaaa")
	writeFile(t, w, "bbbbbbbb")

	var buf bytes.Buffer
	if err := Run(context.Background(), Options{Roots: []string{dir}}, report.New(&buf)); err != nil {
		t.Fatal(err)
	}

	var sameLines []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "same ") {
			sameLines = append(sameLines, line)
		}
	}

	if len(sameLines) != 1 {
		t.Fatalf("expected exactly one merged 'same' line, got %v", sameLines)
	}
	fields := strings.Fields(strings.TrimPrefix(sameLines[0], "same "))
	if len(fields) != 3 {
		t.Fatalf("expected x, y, z in the merged group, got %v", fields)
	}
	for _, f := range fields {
		if filepath.Base(f) == "w" {
			t.Fatalf("w must not appear in any group, got %v", fields)
		}
	}
}

func TestRunDefaultsToCurrentDirectoryWhenNoRootsGiven(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Run(context.Background(), Options{}, report.New(&buf)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "files found: 0\n") {
		t.Fatalf("expected an empty-tree report for the empty cwd, got:\n%s", buf.String())
	}
}

func TestRunErrorsWhenNoRootIsUsable(t *testing.T) {
	err := Run(context.Background(), Options{Roots: []string{"/definitely/not/a/real/path/xyz"}}, report.New(&bytes.Buffer{}))
	if err == nil {
		t.Fatal("expected an error when no root is usable")
	}
}
