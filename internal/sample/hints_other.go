//go:build !unix

package sample

import "os"

// No fadvise equivalent is wired up on this platform.
func hintSequential(f *os.File) {}

func hintRandom(f *os.File) {}
