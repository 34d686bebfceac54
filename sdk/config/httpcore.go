// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// CatalogueHTTP is the transport seam of the SDK. The catalogue service
// builds URLs and performs JSON requests through it; tests substitute their
// own implementation.
type CatalogueHTTP interface {
	BuildURL(resource, id string, params map[string]string) string
	Do(ctx context.Context, method, url string, data []byte) ([]byte, int, error)
}

type httpCore struct {
	httpClient *http.Client
	conf       CatalogueConfig
}

// NewHTTPCore wraps an http.Client with the catalogue auth and URL scheme.
// A nil client gets a default one with the configured timeout.
func NewHTTPCore(httpClient *http.Client, conf CatalogueConfig) CatalogueHTTP {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: conf.Timeout}
	}
	return &httpCore{httpClient: httpClient, conf: conf}
}

// BuildURL joins the base URL, resource and record id. The id is path
// escaped since PIDs contain a slash.
func (c *httpCore) BuildURL(resource, id string, params map[string]string) string {
	base := c.conf.BaseURL + "/" + resource
	if id != "" {
		base += "/" + url.PathEscape(id)
	}
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			if v != "" {
				q.Set(k, v)
			}
		}
		if enc := q.Encode(); enc != "" {
			base += "?" + enc
		}
	}
	return base
}

// Do performs one request and returns the response body and status code.
//
// Non 2xx responses become an error carrying the status and, when the body is
// the catalogue's JSON error shape, its message. Authentication material is
// never part of the error.
func (c *httpCore) Do(ctx context.Context, method, u string, data []byte) ([]byte, int, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, 0, err
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if tok := c.conf.AccessToken; !tok.IsZero() {
		req.Header.Set("Authorization", "Bearer "+tok.Reveal())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	b, rerr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var m map[string]any
		if json.Unmarshal(b, &m) == nil {
			if msg, ok := m["message"].(string); ok && msg != "" {
				return b, resp.StatusCode, fmt.Errorf("catalogue responded with: %s - %s", resp.Status, msg)
			}
		}
		return b, resp.StatusCode, fmt.Errorf("catalogue responded with: %s", resp.Status)
	}
	return b, resp.StatusCode, rerr
}
