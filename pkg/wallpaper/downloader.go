package wallpaper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"

	"wallman/util/log"
)

// Downloader fetches remote images into temp files under the storage root.
// One timed streamed GET per import; no retries.
type Downloader struct {
	client *http.Client
	fm     *FileManager
}

// NewDownloader creates a Downloader writing temp files through fm.
func NewDownloader(fm *FileManager) *Downloader {
	return &Downloader{
		fm: fm,
		client: &http.Client{
			Timeout: DownloadTimeout,
			Transport: &identifyingTransport{
				next:      http.DefaultTransport,
				userAgent: UserAgent,
			},
		},
	}
}

// Fetch downloads rawURL to a uniquely named temp file and returns its path.
// The response must declare an image/* content type; the size ceiling is
// enforced incrementally and the download aborts mid-stream when exceeded.
// On any failure the temp file is removed before returning.
func (d *Downloader) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: building request: %v", ErrNetwork, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: URL does not point to an image (content-type: %s)", ErrNetwork, contentType)
	}

	tempPath := d.fm.TempPath("temp_" + uuid.NewString() + downloadExt(contentType, rawURL))
	file, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %v", ErrIO, tempPath, err)
	}

	var downloaded int64
	buf := make([]byte, hashChunkSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			downloaded += int64(n)
			if downloaded > MaxFileSize {
				file.Close()
				os.Remove(tempPath)
				return "", fmt.Errorf("%w: download exceeds %dMB", ErrFileTooLarge, MaxFileSize/1024/1024)
			}
			if _, err := file.Write(buf[:n]); err != nil {
				file.Close()
				os.Remove(tempPath)
				return "", fmt.Errorf("%w: write %s: %v", ErrIO, tempPath, err)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			file.Close()
			os.Remove(tempPath)
			return "", fmt.Errorf("%w: reading response: %v", ErrNetwork, readErr)
		}
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("%w: close %s: %v", ErrIO, tempPath, err)
	}

	log.Debugf("Downloaded %d bytes from %s to %s", downloaded, rawURL, tempPath)
	return tempPath, nil
}
