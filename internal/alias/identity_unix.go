//go:build unix

package alias

import "golang.org/x/sys/unix"

// fileIdentity returns the device+inode pair the kernel uses to prove
// two paths refer to the same underlying file. A stat failure (gone
// file, permission denied) reports ok=false so the caller falls back
// to treating the path as its own singleton alias group.
func fileIdentity(path string) (identity, bool) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return identity{}, false
	}
	return identity{dev: uint64(st.Dev), ino: uint64(st.Ino)}, true
}
