// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package client is the user facing entry point of the SDK. It coordinates
// the metadata catalogue and the file transfer backend so that dataset
// records and the files they describe stay consistent.
package client

import (
	"context"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/config"
	"github.com/scc-digitalhub/scicat-go-sdk/sdk/logging"
	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
	"github.com/scc-digitalhub/scicat-go-sdk/sdk/services/catalogue"
	"github.com/scc-digitalhub/scicat-go-sdk/sdk/services/transfer"
)

// Catalogue is the metadata API surface the client depends on. The catalogue
// service implements it against the real REST API; the testing package ships
// an in-memory fake.
type Catalogue interface {
	GetDataset(ctx context.Context, pid model.PID) (model.DownloadDataset, error)
	CreateDataset(ctx context.Context, ds model.UploadDataset) (model.DownloadDataset, error)
	GetOrigDatablocks(ctx context.Context, pid model.PID) ([]model.DownloadOrigDatablock, error)
	CreateOrigDatablock(ctx context.Context, block model.UploadOrigDatablock) (model.DownloadOrigDatablock, error)
	GetAttachments(ctx context.Context, pid model.PID) ([]model.DownloadAttachment, error)
	CreateAttachment(ctx context.Context, pid model.PID, att model.UploadAttachment) (model.DownloadAttachment, error)
}

// Client bundles catalogue access with a file transfer backend.
type Client struct {
	catalogue Catalogue
	transfer  transfer.FileTransfer
	log       *logging.Logger
}

// New assembles a client from its parts. Most callers use FromToken or
// FromCredentials instead; New exists for tests and custom wiring.
func New(cat Catalogue, ft transfer.FileTransfer) *Client {
	return &Client{catalogue: cat, transfer: ft, log: logging.Discard()}
}

// FromToken builds a client authenticating with the access token in the
// configuration.
func FromToken(ctx context.Context, conf config.Config, ft transfer.FileTransfer) (*Client, error) {
	svc, err := catalogue.NewService(ctx, conf)
	if err != nil {
		return nil, err
	}
	return New(svc, ft), nil
}

// FromCredentials logs in with username and password and builds a client
// using the obtained token.
func FromCredentials(ctx context.Context, conf config.Config, ft transfer.FileTransfer) (*Client, error) {
	svc, err := catalogue.NewService(ctx, conf)
	if err != nil {
		return nil, err
	}
	token, err := svc.Login(ctx, conf.Catalogue.Username, conf.Catalogue.Password)
	if err != nil {
		return nil, err
	}
	authed := conf
	authed.Catalogue.AccessToken = token
	svc, err = catalogue.NewService(ctx, authed)
	if err != nil {
		return nil, err
	}
	return New(svc, ft), nil
}

// WithLogger sets the logger used by the coordination flows.
func (c *Client) WithLogger(log *logging.Logger) *Client {
	c.log = log
	return c
}

// Catalogue exposes the low-level metadata API for calls the high-level
// flows do not cover.
func (c *Client) Catalogue() Catalogue { return c.catalogue }
