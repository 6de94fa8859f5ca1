//go:build unix

package sample

import (
	"os"

	"golang.org/x/sys/unix"
)

// hintSequential and hintRandom are advisory-only readahead hints.
// Errors are ignored.
func hintSequential(f *os.File) {
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
}

func hintRandom(f *os.File) {
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_RANDOM)
}
