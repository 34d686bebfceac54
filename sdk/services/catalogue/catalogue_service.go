// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package catalogue implements the low-level REST client of the metadata
// catalogue. Every call maps to a single endpoint; coordination between
// metadata and file transfers lives in the client package.
package catalogue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/config"
	"github.com/scc-digitalhub/scicat-go-sdk/sdk/logging"
)

// Service talks to the catalogue REST API.
type Service struct {
	http config.CatalogueHTTP
	log  *logging.Logger
}

func NewService(_ context.Context, conf config.Config) (*Service, error) {
	if conf.Catalogue.BaseURL == "" {
		return nil, errors.New("invalid catalogue config: missing base URL")
	}
	return &Service{
		http: config.NewHTTPCore(nil, conf.Catalogue),
		log:  logging.Discard(),
	}, nil
}

// NewServiceWithHTTP builds a service over an explicit transport, used by
// tests and by the client after a login exchange.
func NewServiceWithHTTP(http config.CatalogueHTTP) *Service {
	return &Service{http: http, log: logging.Discard()}
}

// WithLogger sets the logger used for request level logging.
func (s *Service) WithLogger(log *logging.Logger) *Service {
	s.log = log
	return s
}

// CommError reports a failed exchange with the catalogue. The message carries
// the endpoint and the server's response; credentials are redacted before an
// error is ever built, so they cannot appear here.
type CommError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *CommError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalogue %s failed (HTTP %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("catalogue %s failed: %v", e.Op, e.Err)
}

func (e *CommError) Unwrap() error { return e.Err }

// IsNotFound reports whether the error is a CommError for a missing record.
func IsNotFound(err error) bool {
	var ce *CommError
	return errors.As(err, &ce) && ce.StatusCode == 404
}

func (s *Service) getJSON(ctx context.Context, op, url string, out any) error {
	s.log.Debug("catalogue request", "method", "GET", "url", url)
	body, status, err := s.http.Do(ctx, "GET", url, nil)
	if err != nil {
		return &CommError{Op: op, StatusCode: status, Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &CommError{Op: op, StatusCode: status, Err: fmt.Errorf("cannot decode response: %w", err)}
	}
	return nil
}

func (s *Service) postJSON(ctx context.Context, op, url string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return &CommError{Op: op, Err: fmt.Errorf("cannot encode request: %w", err)}
	}
	s.log.Debug("catalogue request", "method", "POST", "url", url)
	body, status, err := s.http.Do(ctx, "POST", url, data)
	if err != nil {
		return &CommError{Op: op, StatusCode: status, Err: err}
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return &CommError{Op: op, StatusCode: status, Err: fmt.Errorf("cannot decode response: %w", err)}
		}
	}
	return nil
}
