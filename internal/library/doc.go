// Package library discovers playable audio clips in a directory.
//
// Discovery is non-recursive and filters entries by a declared set of
// recognised extensions. Creation times are read only on request because
// their meaning differs by platform: Linux reports the statx birth time
// when the filesystem records one and otherwise falls back to the inode
// change time, macOS reports st_birthtime, and all other platforms use the
// modification time. Callers ordering clips by "latest" should treat the
// result as a best-effort recency signal rather than a true creation
// timestamp.
package library
