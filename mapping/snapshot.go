package mapping

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	"business-heatmap/utils"
)

// Snapshotter renders a saved map document in headless Chrome and stores a
// PNG screenshot of it.
type Snapshotter struct {
	chromeBin string
	settle    time.Duration
	timeout   time.Duration
	logger    *utils.Logger
}

// NewSnapshotter creates a Snapshotter. An empty chromeBin is looked up on
// the PATH and in the usual install locations.
func NewSnapshotter(chromeBin string, logger *utils.Logger) *Snapshotter {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	return &Snapshotter{
		chromeBin: chromeBin,
		settle:    3 * time.Second,
		timeout:   60 * time.Second,
		logger:    logger,
	}
}

// Capture loads the HTML file at htmlPath and writes a full-page screenshot
// to pngPath.
func (s *Snapshotter) Capture(ctx context.Context, htmlPath, pngPath string) error {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("snapshot: resolve %q: %w", htmlPath, err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1280, 900),
	)
	if s.chromeBin != "" {
		s.logger.Debug("[snapshot] Using browser binary: %s", s.chromeBin)
		opts = append(opts, chromedp.ExecPath(s.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	runCtx, cancelTimeout := context.WithTimeout(browserCtx, s.timeout)
	defer cancelTimeout()

	var buf []byte
	if err := chromedp.Run(runCtx,
		chromedp.Navigate("file://"+abs),
		chromedp.WaitVisible("#map", chromedp.ByQuery),
		chromedp.Sleep(s.settle),
		chromedp.FullScreenshot(&buf, 90),
	); err != nil {
		return fmt.Errorf("snapshot: capture %q: %w", abs, err)
	}

	if err := os.MkdirAll(filepath.Dir(pngPath), 0755); err != nil {
		return fmt.Errorf("snapshot: create output dir: %w", err)
	}
	if err := os.WriteFile(pngPath, buf, 0644); err != nil {
		return fmt.Errorf("snapshot: write %q: %w", pngPath, err)
	}
	s.logger.Info("[snapshot] Saved map screenshot to %s (%d bytes)", pngPath, len(buf))
	return nil
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
