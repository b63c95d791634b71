package player

import (
	"context"
	"net/http"
	"strconv"

	"github.com/muurk/vizconnect/internal/logging"
	"github.com/muurk/vizconnect/internal/source"
	"github.com/muurk/vizconnect/internal/version"
	"go.uber.org/zap"
)

// HTTPDriver verifies a remote file with a HEAD request to params["url"].
type HTTPDriver struct {
	// Client defaults to a client bounded by DefaultOpenTimeout.
	Client *http.Client
}

// Open checks the file is reachable without downloading it.
func (d *HTTPDriver) Open(ctx context.Context, sourceID string, sel source.Selection) (*Opened, error) {
	rawURL := sel.Params["url"]
	if rawURL == "" {
		return nil, NewParamsError("missing url parameter")
	}
	address := hostOf(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return nil, NewParamsError("invalid url: " + err.Error())
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := d.client().Do(req)
	if err != nil {
		return nil, ClassifyNetworkError(err, address)
	}
	defer func() { _ = resp.Body.Close() }()

	logging.Debug("Remote file HEAD response",
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Int64("content_length", resp.ContentLength),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewHTTPError(resp.StatusCode, address)
	}

	opened := &Opened{
		Summary: "Remote file reachable",
		Details: map[string]string{
			"url":    rawURL,
			"status": resp.Status,
		},
	}
	if resp.ContentLength >= 0 {
		opened.Details["size"] = strconv.FormatInt(resp.ContentLength, 10)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		opened.Details["content_type"] = ct
	}
	return opened, nil
}

func (d *HTTPDriver) client() *http.Client {
	if d.Client != nil {
		return d.Client
	}
	return &http.Client{Timeout: DefaultOpenTimeout}
}
