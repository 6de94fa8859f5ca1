package alias

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/n2fs/dupfind/internal/model"
)

func TestCoalesceGroupsHardlinks(t *testing.T) {
	dir := t.TempDir()
	x := filepath.Join(dir, "x")
	y := filepath.Join(dir, "y")
	z := filepath.Join(dir, "z")

	if err := os.WriteFile(x, []byte("aaaaaaaa"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Link(x, y); err != nil {
		t.Skipf("hardlinks unsupported here: %v", err)
	}
	if err := os.WriteFile(z, []byte("bbbbbbbb"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := model.SizeBucket{Size: 8, Entries: []model.FileEntry{
		{Path: x, Size: 8},
		{Path: y, Size: 8},
		{Path: z, Size: 8},
	}}

	groups := Coalesce(b)

	if len(groups) != 2 {
		t.Fatalf("expected 2 alias groups (hardlink pair + singleton), got %d: %+v", len(groups), groups)
	}

	var hardlinkGroup, singleton *model.AliasGroup
	for _, g := range groups {
		if len(g.Paths) == 2 {
			hardlinkGroup = g
		} else {
			singleton = g
		}
	}

	if hardlinkGroup == nil || singleton == nil {
		t.Fatalf("expected one 2-member group and one singleton, got %+v", groups)
	}
	if singleton.Paths[0] != z {
		t.Fatalf("singleton group should be z, got %v", singleton.Paths)
	}
}

func TestCoalesceTreatsUnreadablePathsAsSingletons(t *testing.T) {
	b := model.SizeBucket{Size: 4, Entries: []model.FileEntry{
		{Path: "/does/not/exist/a", Size: 4},
		{Path: "/does/not/exist/b", Size: 4},
	}}

	groups := Coalesce(b)

	if len(groups) != 2 {
		t.Fatalf("expected 2 singleton groups for unreadable paths, got %d", len(groups))
	}
	for _, g := range groups {
		if len(g.Paths) != 1 {
			t.Fatalf("expected singleton, got %v", g.Paths)
		}
	}
}

func TestCandidatesOnePerGroupWithOriginSet(t *testing.T) {
	groups := []*model.AliasGroup{
		{Size: 4, Paths: []string{"/b", "/a"}},
		{Size: 4, Paths: []string{"/c"}},
	}

	candidates := Candidates(groups)

	if len(candidates) != 2 {
		t.Fatalf("expected one candidate per group, got %d", len(candidates))
	}
	if candidates[0].Path != "/a" {
		t.Fatalf("expected deterministic representative /a, got %s", candidates[0].Path)
	}
	if candidates[0].Origin != groups[0] {
		t.Fatalf("expected Origin to point back at the exact group instance")
	}
}

func TestKnown(t *testing.T) {
	if Known(&model.AliasGroup{Paths: []string{"/a"}}) {
		t.Fatal("singleton should not be Known")
	}
	if !Known(&model.AliasGroup{Paths: []string{"/a", "/b"}}) {
		t.Fatal("2-member group should be Known")
	}
}
