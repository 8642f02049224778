//go:build windows

package apitype

import "os"

func isWritable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir() || info.Mode().Perm()&0200 != 0
}
