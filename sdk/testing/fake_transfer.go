// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package testing

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/dataset"
	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
	"github.com/scc-digitalhub/scicat-go-sdk/sdk/services/transfer"
)

// FakeFileTransfer keeps "remote" file contents in memory. Uploads read the
// local file into the store, downloads write store contents to disk. The
// exported maps can be seeded and inspected while no transfer is in flight.
type FakeFileTransfer struct {
	mu sync.Mutex

	// Pattern is expanded like the real backends' source folder pattern.
	Pattern string

	// Files maps full remote paths to contents.
	Files map[string][]byte
	// Reverted collects full remote paths removed by Revert calls.
	Reverted []string

	// Induced failures per operation; nil means succeed.
	UploadErr   error
	DownloadErr error
	RevertErr   error
}

func NewFakeFileTransfer() *FakeFileTransfer {
	return &FakeFileTransfer{
		Pattern: "/remote/{pid}",
		Files:   map[string][]byte{},
	}
}

func (t *FakeFileTransfer) SourceFolder(ds *dataset.Dataset) (model.RemotePath, error) {
	if !ds.SourceFolder.IsZero() {
		return ds.SourceFolder, nil
	}
	pid := ds.PID()
	if pid.IsZero() {
		pid = model.GeneratePID("")
	}
	flat := strings.ReplaceAll(strings.TrimPrefix(pid.String(), "/"), "/", "-")
	return model.NewRemotePath(strings.ReplaceAll(t.Pattern, "{pid}", flat)), nil
}

func (t *FakeFileTransfer) ConnectForUpload(_ context.Context, ds *dataset.Dataset) (transfer.UploadConnection, error) {
	folder, err := t.SourceFolder(ds)
	if err != nil {
		return nil, err
	}
	return transferUploadConn{t: t, folder: folder}, nil
}

func (t *FakeFileTransfer) ConnectForDownload(_ context.Context, ds *dataset.Dataset) (transfer.DownloadConnection, error) {
	folder, err := t.SourceFolder(ds)
	if err != nil {
		return nil, err
	}
	return transferDownloadConn{t: t, folder: folder}, nil
}

type transferUploadConn struct {
	t      *FakeFileTransfer
	folder model.RemotePath
}

func (c transferUploadConn) SourceFolder() model.RemotePath { return c.folder }

func (c transferUploadConn) Close() error { return nil }

func (c transferUploadConn) Upload(_ context.Context, f *dataset.File) (dataset.RemoteInfo, error) {
	c.t.mu.Lock()
	defer c.t.mu.Unlock()
	if c.t.UploadErr != nil {
		return dataset.RemoteInfo{}, c.t.UploadErr
	}
	content, err := os.ReadFile(f.LocalPath())
	if err != nil {
		return dataset.RemoteInfo{}, err
	}
	c.t.Files[c.folder.Join(f.RemotePath().String()).String()] = content
	return dataset.RemoteInfo{
		Size:         int64(len(content)),
		CreationTime: time.Now().UTC(),
	}, nil
}

func (c transferUploadConn) Revert(_ context.Context, files ...*dataset.File) error {
	c.t.mu.Lock()
	defer c.t.mu.Unlock()
	if c.t.RevertErr != nil {
		return c.t.RevertErr
	}
	for _, f := range files {
		full := c.folder.Join(f.RemotePath().String()).String()
		delete(c.t.Files, full)
		c.t.Reverted = append(c.t.Reverted, full)
	}
	return nil
}

type transferDownloadConn struct {
	t      *FakeFileTransfer
	folder model.RemotePath
}

func (c transferDownloadConn) SourceFolder() model.RemotePath { return c.folder }

func (c transferDownloadConn) Close() error { return nil }

func (c transferDownloadConn) Download(_ context.Context, f *dataset.File, localPath string) error {
	c.t.mu.Lock()
	defer c.t.mu.Unlock()
	if c.t.DownloadErr != nil {
		return c.t.DownloadErr
	}
	full := c.folder.Join(f.RemotePath().String()).String()
	content, ok := c.t.Files[full]
	if !ok {
		return os.ErrNotExist
	}
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(localPath, content, 0o644)
}
