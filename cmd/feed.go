package cmd

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// feedCache is an http.RoundTripper that keeps successful responses on disk
// for ttl.
type feedCache struct {
	base http.RoundTripper
	dir  string
	ttl  time.Duration
}

func (c *feedCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key := fmt.Sprintf("%x", sha1.Sum([]byte(req.Method+" "+req.URL.String())))

	if resp, err := c.get(key, req); err == nil {
		logger.Debug().Str("url", req.URL.String()).Msg("feed cache hit")
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("method", req.Method).Str("url", req.URL.String()).Str("status", resp.Status).Msg("feed fetched")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		logger.Warn().Err(err).Msg("feed cache write failed")
	}
	return resp, nil
}

// get returns the cached response, if it is younger than ttl.
func (c *feedCache) get(key string, req *http.Request) (*http.Response, error) {
	file := filepath.Join(c.dir, key)
	info, err := os.Stat(file)
	if err != nil {
		return nil, err
	}
	if time.Since(info.ModTime()) > c.ttl {
		return nil, fmt.Errorf("cached feed expired")
	}
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put stores the response, the body remains readable.
func (c *feedCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o600)
}

// feedClient returns the client fetching feeds, caching them for ttl when
// positive.
func feedClient(ttl time.Duration) *http.Client {
	client := &http.Client{Timeout: 30 * time.Second}
	if ttl > 0 {
		client.Transport = &feedCache{base: http.DefaultTransport, dir: os.TempDir(), ttl: ttl}
	}
	return client
}

// loadFeed reads a JSON feed from a file or an http(s) URL.
func loadFeed(ctx context.Context, client *http.Client, src string) (any, error) {
	var data []byte
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
		}
		if data, err = io.ReadAll(resp.Body); err != nil {
			return nil, err
		}
	} else {
		var err error
		if data, err = os.ReadFile(src); err != nil {
			return nil, err
		}
	}

	var feed any
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("cannot decode feed %q: %w", src, err)
	}
	return feed, nil
}
