package pkg

import (
	"fmt"
	"os"
	"path/filepath"
	"unsafe"
)

// BytesToString converts bytes slice to a string without extra allocation
func BytesToString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}

// PathExists returns whether the given file or directory exists
func PathExists(path string, isDir bool) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if isDir && !stat.IsDir() {
		return false, fmt.Errorf("%s is not a directory", path)
	}
	if !isDir && stat.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	return true, nil
}

// EnsureParentDir creates the parent directory of the given file path, if missing
func EnsureParentDir(filePath string) error {
	dir := filepath.Dir(filePath)
	exists, err := PathExists(dir, true)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
