// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/quizdoc/pkg/types"
)

// ErrUnsupportedImage marks inputs whose extension is not jpg, jpeg or png.
var ErrUnsupportedImage = errors.New("unsupported image type")

var supportedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Supported reports whether name has an accepted image extension.
func Supported(name string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(name))]
}

// CollectImages expands args into images. Directories contribute their
// supported files in name order; other arguments are taken as given, so a
// missing or unsupported file surfaces as a per-image failure.
func CollectImages(args []string) ([]types.Image, error) {
	var images []types.Image
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			images = append(images, types.Image{Name: filepath.Base(arg), Path: arg})
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("reading image directory %s: %w", arg, err)
		}
		var names []string
		for _, e := range entries {
			if !e.IsDir() && Supported(e.Name()) {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			images = append(images, types.Image{Name: name, Path: filepath.Join(arg, name)})
		}
	}
	return images, nil
}
