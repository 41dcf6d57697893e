package portfolio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1600
	jpegQuality   = 80
	imagesSubdir  = "images"
)

// allowedWidths bounds the variant cache: arbitrary ?w= values would let
// a crawler mint unlimited cache entries.
var allowedWidths = map[int]bool{320: true, 640: true, 960: true, 1280: true, 1600: true}

// imageCache holds resized variants in memory, keyed by filename and width.
type imageCache struct {
	mu       sync.RWMutex
	variants map[string][]byte
}

func newImageCache() *imageCache {
	return &imageCache{variants: make(map[string][]byte)}
}

func (ic *imageCache) get(key string) ([]byte, bool) {
	ic.mu.RLock()
	defer ic.mu.RUnlock()
	data, ok := ic.variants[key]
	return data, ok
}

func (ic *imageCache) put(key string, data []byte) {
	ic.mu.Lock()
	ic.variants[key] = data
	ic.mu.Unlock()
}

// handleImage serves images from the static images directory, optionally
// downscaled to one of the allowed widths via ?w=. Resizing is the one
// CPU-heavy path, so cache misses pass through the rate limiter.
func (a *App) handleImage(c echo.Context) error {
	name := path.Base(c.Param("name")) // strips any traversal
	if name == "." || name == "/" {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	src := filepath.Join(a.Config.StaticDir, imagesSubdir, name)

	width, _ := strconv.Atoi(c.QueryParam("w"))
	if !allowedWidths[width] {
		return c.File(src)
	}

	key := fmt.Sprintf("%s|%d", name, width)
	if data, ok := a.images.get(key); ok {
		return c.Blob(http.StatusOK, "image/jpeg", data)
	}

	if !a.resizeLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many resize requests. Try again later.")
	}

	data, err := resizeImage(src, width)
	if err != nil {
		if os.IsNotExist(err) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return fmt.Errorf("resize %s: %w", name, err)
	}
	a.images.put(key, data)
	return c.Blob(http.StatusOK, "image/jpeg", data)
}

// resizeImage decodes the image at src, downscales it to the given width
// if it is wider, and re-encodes it as JPEG.
func resizeImage(src string, width int) ([]byte, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if width > maxImageWidth {
		width = maxImageWidth
	}
	if w > width {
		newH := h * width / w
		dst := image.NewRGBA(image.Rect(0, 0, width, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
