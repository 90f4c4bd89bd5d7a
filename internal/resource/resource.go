package resource

import (
	"os"
	"path/filepath"
	"time"
)

// IsRegularFile reports whether path names a regular file, following symlinks.
func IsRegularFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// IsDirectory reports whether path names a directory, following symlinks.
func IsDirectory(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// IsSymbolicLink reports whether path itself is a symlink.
func IsSymbolicLink(path string) bool {
	fi, err := os.Lstat(path)
	return err == nil && fi.Mode()&os.ModeSymlink != 0
}

// IsReadable reports whether the current process may read path.
func IsReadable(path string) bool {
	return canRead(path)
}

// IsWritable reports whether the current process may write path.
func IsWritable(path string) bool {
	return canWrite(path)
}

// Size returns the file size in bytes, or 0.
func Size(path string) int64 {
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return fi.Size()
}

// ModTime returns the content modification time.
func ModTime(path string) (time.Time, bool) {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return fi.ModTime(), true
}

// SetModTime sets the content modification time, leaving the access time
// unchanged.
func SetModTime(path string, t time.Time) error {
	return os.Chtimes(path, time.Time{}, t)
}

// DirectorySize sums the sizes of the immediate children of path. It does
// not recurse, and returns 0 for anything that is not a readable directory.
func DirectorySize(path string) int64 {
	entries, err := os.ReadDir(path)
	if err != nil {
		return 0
	}
	var total int64
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total
}

// DisplayName returns the name shown to users for path.
func DisplayName(path string) string {
	return filepath.Base(path)
}
