package fio

import (
	"github.com/gofrs/flock"
)

const flockSuffix = ".lock"

// NewFlock returns the advisory lock guarding writes to file.
func NewFlock(file string) *flock.Flock {
	return flock.New(file + flockSuffix)
}
