package util

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nvr-ai/go-thumbs/images"
	"github.com/pkg/errors"
)

// CollectImagePaths lists the images to process for target.
//
// Arguments:
// - target: A single image file or a directory of images.
//
// Returns:
// - []string: For a directory, every regular file directly inside it with an
// accepted extension, sorted by name. For a file, the file itself if its
// extension is accepted, otherwise nothing.
// - error: KindPathNotFound if target does not exist, or the read error.
func CollectImagePaths(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, images.NewError(images.KindPathNotFound, "collect", target, err)
		}
		return nil, errors.Wrapf(err, "failed to stat %s", target)
	}

	if !info.IsDir() {
		if IsSupportedImage(target) {
			return []string{target}, nil
		}
		return nil, nil
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read directory %s", target)
	}

	var paths []string
	for _, entry := range entries {
		path := filepath.Join(target, entry.Name())
		if !IsSupportedImage(path) {
			continue
		}

		// Stat follows symlinks, so a link to a regular file is accepted.
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		paths = append(paths, path)
	}

	sort.Strings(paths)

	return paths, nil
}

// IsSupportedImage reports whether path has an accepted image extension.
func IsSupportedImage(path string) bool {
	_, ok := images.FormatFromExtension(Extension(path))
	return ok
}

// Extension returns the text after the last dot of the base name of path,
// without the dot. A name whose only dot is the leading one has none.
func Extension(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return ""
	}
	return base[i+1:]
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return base
	}
	return base[:i]
}
