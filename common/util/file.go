package util

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"syscall"
	"vincit.fi/quick-move/common/logger"
)

const defaultDirectoryMode = 0755

var (
	ErrDestinationExists = errors.New("destination already exists")

	link     = os.Link
	copyData = io.Copy
)

func DoesFileExist(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// MakeDirectoriesIfNotExist creates the directory and its parents. An
// already existing directory is not an error.
func MakeDirectoriesIfNotExist(directory string) error {
	if DoesFileExist(directory) {
		return nil
	}
	logger.Debug.Printf("Creating directory '%s'", directory)
	if err := os.MkdirAll(directory, defaultDirectoryMode); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	return nil
}

func CopyFile(srcPath string, srcFile string, dstPath string, dstFile string) error {
	srcFilePath := filepath.Join(srcPath, srcFile)
	dstFilePath := filepath.Join(dstPath, dstFile)
	logger.Debug.Printf("Copying '%s' to '%s'", srcFilePath, dstFilePath)

	if err := MakeDirectoriesIfNotExist(dstPath); err != nil {
		return err
	}

	return copyInternal(srcFilePath, dstFilePath)
}

func RemoveFile(src string) error {
	logger.Debug.Printf("Deleting '%s'", src)
	return os.Remove(src)
}

// MoveFile moves src into dstDir keeping the file name. Returns the new
// path. A same-named entry in dstDir is never overwritten: the file is
// hard linked into place and the source removed, or copied when linking is
// not possible, e.g. because dstDir is on another device.
func MoveFile(src string, dstDir string) (string, error) {
	fileName := filepath.Base(src)
	dst := filepath.Join(dstDir, fileName)
	if _, err := os.Lstat(dst); err == nil {
		return "", fmt.Errorf("%w: '%s'", ErrDestinationExists, dst)
	}

	if err := link(src, dst); err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w: '%s'", ErrDestinationExists, dst)
		} else if !isLinkNotPossible(err) {
			return "", err
		}

		logger.Debug.Printf("Cannot link '%s' into '%s' (%s), copying", src, dstDir, err)
		if err := CopyFile(filepath.Dir(src), fileName, dstDir, fileName); err != nil {
			if errors.Is(err, os.ErrExist) {
				return "", fmt.Errorf("%w: '%s'", ErrDestinationExists, dst)
			}
			return "", err
		}
	}

	if err := RemoveFile(src); err != nil {
		_ = os.Remove(dst)
		return "", err
	}
	return dst, nil
}

type FileSystemMover struct{}

func (s *FileSystemMover) Move(src string, dstDir string) (string, error) {
	return MoveFile(src, dstDir)
}

func HomeDir() (string, error) {
	if currentUser, err := user.Current(); err == nil && currentUser.HomeDir != "" {
		return currentUser.HomeDir, nil
	}
	return os.UserHomeDir()
}

func isLinkNotPossible(err error) bool {
	return errors.Is(err, syscall.EXDEV) ||
		errors.Is(err, syscall.EPERM) ||
		errors.Is(err, syscall.EMLINK) ||
		errors.Is(err, syscall.ENOTSUP) ||
		errors.Is(err, syscall.EOPNOTSUPP)
}

func copyInternal(src string, dst string) error {
	sourceFileStat, err := os.Stat(src)
	if err != nil {
		return err
	}

	if !sourceFileStat.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	destination, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, sourceFileStat.Mode().Perm())
	if err != nil {
		return err
	}

	_, err = copyData(destination, source)
	if closeErr := destination.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chtimes(dst, sourceFileStat.ModTime(), sourceFileStat.ModTime())
	}
	if err != nil {
		logger.Warn.Printf("Removing incomplete copy '%s'", dst)
		_ = os.Remove(dst)
		return err
	}
	return nil
}
