package export

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultMaxLogoBytes bounds in-memory logo buffering.
const DefaultMaxLogoBytes int64 = 4 * 1024 * 1024

const defaultLogoTimeout = 10 * time.Second

// DefaultLogoResolver loads logos from local file paths or http(s) URLs.
type DefaultLogoResolver struct {
	Client   *http.Client
	MaxBytes int64
}

// NewLogoResolver creates a resolver with a bounded HTTP client.
func NewLogoResolver() *DefaultLogoResolver {
	return &DefaultLogoResolver{
		Client:   &http.Client{Timeout: defaultLogoTimeout},
		MaxBytes: DefaultMaxLogoBytes,
	}
}

// Fetch returns the logo bytes and an image type hint. Errors are meant to
// be logged by the caller, which then renders a textual placeholder.
func (r *DefaultLogoResolver) Fetch(ref string) ([]byte, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, "", NewError(KindValidation, "logo reference is empty", nil)
	}

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return r.fetchURL(ref)
	}
	return r.fetchFile(ref)
}

func (r *DefaultLogoResolver) fetchFile(path string) ([]byte, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", NewError(KindNotFound, fmt.Sprintf("logo file %q not accessible", path), err)
	}
	if max := r.maxBytes(); info.Size() > max {
		return nil, "", NewError(KindValidation, fmt.Sprintf("logo file %q exceeds %d bytes", path, max), nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", NewError(KindInternal, fmt.Sprintf("logo file %q read failed", path), err)
	}
	return data, imageType(path, data), nil
}

func (r *DefaultLogoResolver) fetchURL(url string) ([]byte, string, error) {
	client := r.Client
	if client == nil {
		client = &http.Client{Timeout: defaultLogoTimeout}
	}
	resp, err := client.Get(url)
	if err != nil {
		return nil, "", NewError(KindUnavailable, fmt.Sprintf("logo url %q unreachable", url), err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, "", NewError(KindUnavailable, fmt.Sprintf("logo url %q returned status %d", url, resp.StatusCode), nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes()+1))
	if err != nil {
		return nil, "", NewError(KindInternal, fmt.Sprintf("logo url %q read failed", url), err)
	}
	if int64(len(data)) > r.maxBytes() {
		return nil, "", NewError(KindValidation, fmt.Sprintf("logo url %q exceeds %d bytes", url, r.maxBytes()), nil)
	}
	return data, imageType(url, data), nil
}

func (r *DefaultLogoResolver) maxBytes() int64 {
	if r == nil || r.MaxBytes <= 0 {
		return DefaultMaxLogoBytes
	}
	return r.MaxBytes
}

// imageType sniffs the image format from magic bytes, falling back to the
// reference extension.
func imageType(ref string, data []byte) string {
	switch {
	case len(data) >= 8 && string(data[:8]) == "\x89PNG\r\n\x1a\n":
		return "png"
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return "jpg"
	case len(data) >= 6 && (string(data[:6]) == "GIF87a" || string(data[:6]) == "GIF89a"):
		return "gif"
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(ref)), ".")
	switch ext {
	case "jpeg":
		return "jpg"
	case "png", "jpg", "gif":
		return ext
	}
	return "png"
}
