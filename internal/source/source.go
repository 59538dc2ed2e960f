// Package source fetches graph JSON from a file or an HTTP endpoint.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// maxBody bounds a fetched graph document.
var maxBody int64 = 64 << 20

// ErrTooLarge is returned when a response body exceeds the size limit.
var ErrTooLarge = errors.New("graph exceeds size limit")

// Source yields raw GraphData JSON.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// File reads a graph from disk.
type File struct {
	Path string
}

// Fetch reads the file. ctx is checked before the read.
func (f File) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read graph: %w", err)
	}
	return data, nil
}

func (f File) String() string { return f.Path }

// HTTP fetches a graph with GET from a backend endpoint.
type HTTP struct {
	URL    string
	Client *http.Client
}

// Fetch performs GET URL and returns the body of a 2xx response.
func (h HTTP) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch graph: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch graph: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch graph: %s: %s", h.URL, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("fetch graph: %w", err)
	}
	if int64(len(data)) > maxBody {
		return nil, fmt.Errorf("fetch graph: %s: %w (%d MiB)", h.URL, ErrTooLarge, maxBody>>20)
	}
	return data, nil
}

func (h HTTP) String() string { return h.URL }

// For picks an HTTP source for http(s) URLs and a file source otherwise.
func For(target string) Source {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return HTTP{URL: target}
	}
	return File{Path: target}
}
