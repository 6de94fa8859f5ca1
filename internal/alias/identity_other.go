//go:build !unix

package alias

// fileIdentity has no portable notion of device+inode on this
// platform. Every path is reported as its own singleton: correctness
// is preserved (content hashing still catches true duplicates), only
// the free win of hardlink detection is unavailable here.
func fileIdentity(path string) (identity, bool) {
	return identity{}, false
}
