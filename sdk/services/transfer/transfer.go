// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package transfer moves data files between the local filesystem and the
// file server. The catalogue never sees file contents; it only stores the
// metadata the client package derives from these transfers.
package transfer

import (
	"context"
	"fmt"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/dataset"
	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
)

// FileTransfer is the polymorphic backend for file up- and downloads.
// Implementations open scoped connections bound to one dataset's source
// folder; every transferred path stays under that folder.
type FileTransfer interface {
	// SourceFolder resolves the folder files of the dataset live in,
	// from the dataset itself or from the backend's configured pattern.
	SourceFolder(ds *dataset.Dataset) (model.RemotePath, error)
	ConnectForUpload(ctx context.Context, ds *dataset.Dataset) (UploadConnection, error)
	ConnectForDownload(ctx context.Context, ds *dataset.Dataset) (DownloadConnection, error)
}

// UploadConnection writes files into one dataset's source folder.
type UploadConnection interface {
	SourceFolder() model.RemotePath
	// Upload copies the local file to the source folder and returns the
	// metadata reported by the file server.
	Upload(ctx context.Context, f *dataset.File) (dataset.RemoteInfo, error)
	// Revert removes previously uploaded files. Used for cleanup when a
	// later step of an upload fails; best effort.
	Revert(ctx context.Context, files ...*dataset.File) error
	Close() error
}

// DownloadConnection reads files from one dataset's source folder.
type DownloadConnection interface {
	SourceFolder() model.RemotePath
	Download(ctx context.Context, f *dataset.File, localPath string) error
	Close() error
}

// FileUploadError reports a failed upload of one file.
type FileUploadError struct {
	RemotePath model.RemotePath
	Err        error
}

func (e *FileUploadError) Error() string {
	return fmt.Sprintf("upload of file %q failed: %v", e.RemotePath, e.Err)
}

func (e *FileUploadError) Unwrap() error { return e.Err }

// RevertError reports files that could not be cleaned up after a failed
// upload; they remain on the file server.
type RevertError struct {
	RemotePaths []model.RemotePath
	Err         error
}

func (e *RevertError) Error() string {
	return fmt.Sprintf("failed to remove %d uploaded file(s) during cleanup: %v", len(e.RemotePaths), e.Err)
}

func (e *RevertError) Unwrap() error { return e.Err }
