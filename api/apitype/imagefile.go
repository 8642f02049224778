package apitype

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"vincit.fi/quick-move/common/logger"
)

type ImageFile struct {
	directory string
	filename  string
	path      string
}

var (
	supportedFileEndings = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
		".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
	}
)

func NewImageFile(fileDir string, fileName string) *ImageFile {
	return &ImageFile{
		directory: fileDir,
		filename:  fileName,
		path:      filepath.Join(fileDir, fileName),
	}
}

func NewImageFileFromPath(path string) *ImageFile {
	return NewImageFile(filepath.Dir(path), filepath.Base(path))
}

func (s *ImageFile) IsValid() bool {
	return s != nil && s.path != ""
}

func (s *ImageFile) String() string {
	if s != nil {
		if s.IsValid() {
			return "ImageFile{" + s.filename + "}"
		} else {
			return "ImageFile<invalid>"
		}
	} else {
		return "ImageFile<nil>"
	}
}

func (s *ImageFile) Path() string {
	if s != nil {
		return s.path
	} else {
		return ""
	}
}

func (s *ImageFile) Directory() string {
	if s != nil {
		return s.directory
	} else {
		return ""
	}
}

func (s *ImageFile) FileName() string {
	if s != nil {
		return s.filename
	} else {
		return ""
	}
}

// File returns the path of the image. Satisfies api.Image.
func (s *ImageFile) File() string {
	return s.Path()
}

// IsFileWritable tells if the image can be renamed or moved: the file
// itself and its directory must both be writable.
func (s *ImageFile) IsFileWritable() bool {
	if !s.IsValid() {
		return false
	}
	if info, err := os.Stat(s.path); err != nil || !info.Mode().IsRegular() {
		return false
	}
	return isWritable(s.path) && isWritable(s.directory)
}

// LoadImageFiles returns the supported images of dir sorted by file name
func LoadImageFiles(dir string) ([]*ImageFile, error) {
	var imageFiles []*ImageFile
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	logger.Debug.Printf("Scanning directory '%s'", dir)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsSupported(filepath.Ext(entry.Name())) {
			imageFiles = append(imageFiles, NewImageFile(dir, entry.Name()))
		}
	}
	SortImageFiles(imageFiles)
	logger.Debug.Printf("Found %d images", len(imageFiles))

	return imageFiles, nil
}

func SortImageFiles(imageFiles []*ImageFile) {
	sort.SliceStable(imageFiles, func(i, j int) bool {
		return imageFiles[i].filename < imageFiles[j].filename
	})
}

func IsSupported(extension string) bool {
	return supportedFileEndings[strings.ToLower(extension)]
}
