//go:build !linux && !darwin

package library

import (
	"io/fs"
	"time"
)

// creationTime has no portable birth time to read here, so the
// modification time stands in.
func creationTime(_ string, info fs.FileInfo) time.Time {
	return info.ModTime()
}
