package main

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/pixfilter/surface"
)

type encodeFunc func(w io.Writer, img image.Image) error

var encoders = map[string]encodeFunc{
	".png":  png.Encode,
	".jpg":  encodeJPEG,
	".jpeg": encodeJPEG,
	".bmp":  bmp.Encode,
	".tif":  encodeTIFF,
	".tiff": encodeTIFF,
}

func encodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 92})
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

// decodeFormats lists the registered image decoders.
func decodeFormats() []string {
	return []string{"bmp", "gif", "jpeg", "png", "tiff", "webp"}
}

// encodeExtensions lists the output file extensions.
func encodeExtensions() []string {
	exts := make([]string, 0, len(encoders))
	for ext := range encoders {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// loadSurface decodes the image at path into a surface of format f.
func loadSurface(path string, f surface.Format) (*surface.Surface, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, newExitCodeError(fmt.Errorf("could not open input file %s: %w", path, err), ExitCodeInvalidInput)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, newExitCodeError(fmt.Errorf("could not decode %s: %w", path, err), ExitCodeInvalidInput)
	}
	s, err := surface.FromImage(img, f)
	if err != nil {
		return nil, newExitCodeError(fmt.Errorf("could not load %s: %w", path, err), ExitCodeInvalidInput)
	}
	return s, nil
}

// saveSurface encodes s to path, choosing the codec from the extension.
func saveSurface(path string, s *surface.Surface) (err error) {
	enc, ok := encoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return newExitCodeError(fmt.Errorf("unsupported output format %q (want one of %s)",
			filepath.Ext(path), strings.Join(encodeExtensions(), ", ")), ExitCodeInvalidOutput)
	}
	img, err := surface.ToNRGBA(s)
	if err != nil {
		return newExitCodeError(err, ExitCodeInvalidOutput)
	}

	file, err := os.Create(path)
	if err != nil {
		return newExitCodeError(fmt.Errorf("could not create %s: %w", path, err), ExitCodeInvalidOutput)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = newExitCodeError(cerr, ExitCodeInvalidOutput)
		}
	}()
	if err := enc(file, img); err != nil {
		return newExitCodeError(fmt.Errorf("could not encode %s: %w", path, err), ExitCodeInvalidOutput)
	}
	return nil
}
