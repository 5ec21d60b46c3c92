package artwork

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG format support
	_ "image/png"  // PNG format support

	"github.com/disintegration/imaging"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const iconPattern = "mprisctl-art-*.png"

// IconWriter scales album art down to a notification icon and stores it in a
// temporary file
type IconWriter struct {
	logger *zap.Logger
	fs     afero.Fs
	dir    string
	size   int
}

// NewIconWriter creates a writer producing icons of at most size x size pixels in dir
func NewIconWriter(logger *zap.Logger, fs afero.Fs, dir string, size int) *IconWriter {
	return &IconWriter{
		logger: logger,
		fs:     fs,
		dir:    dir,
		size:   size,
	}
}

// Process decodes the artwork and fits it into the icon box, encoded as PNG
func (w *IconWriter) Process(imageData []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dy() == 0 || bounds.Dx() == 0 {
		return nil, fmt.Errorf("invalid image dimensions: %dx%d", bounds.Dx(), bounds.Dy())
	}

	// Fit never upscales, small covers are kept as they are
	icon := imaging.Fit(img, w.size, w.size, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, icon, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode icon: %w", err)
	}

	w.logger.Debug("Artwork scaled",
		zap.Int("srcW", bounds.Dx()),
		zap.Int("srcH", bounds.Dy()),
		zap.Int("w", icon.Bounds().Dx()),
		zap.Int("h", icon.Bounds().Dy()))
	return buf.Bytes(), nil
}

// Write stores the artwork in a new temporary file and returns its path.
// Images that cannot be decoded are written unchanged, the notification
// daemon may still understand them. The cleanup func removes the file.
func (w *IconWriter) Write(imageData []byte) (string, func() error, error) {
	data, err := w.Process(imageData)
	if err != nil {
		w.logger.Debug("Using artwork as is", zap.Error(err))
		data = imageData
	}

	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("failed to create artwork directory: %w", err)
	}

	file, err := afero.TempFile(w.fs, w.dir, iconPattern)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create artwork file: %w", err)
	}
	path := file.Name()

	cleanup := func() error {
		if err := w.fs.Remove(path); err != nil {
			return fmt.Errorf("failed to remove artwork file: %w", err)
		}
		w.logger.Debug("Artwork file removed", zap.String("path", path))
		return nil
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = w.fs.Remove(path)
		return "", nil, fmt.Errorf("failed to write artwork file: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = w.fs.Remove(path)
		return "", nil, fmt.Errorf("failed to close artwork file: %w", err)
	}

	w.logger.Debug("Artwork written", zap.String("path", path), zap.Int("bytes", len(data)))
	return path, cleanup, nil
}
