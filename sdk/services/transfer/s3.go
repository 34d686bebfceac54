// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/config"
	"github.com/scc-digitalhub/scicat-go-sdk/sdk/dataset"
	"github.com/scc-digitalhub/scicat-go-sdk/sdk/logging"
	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
)

// S3Transfer moves files to and from an S3 compatible file server.
//
// A dataset's source folder maps to a key prefix. Folders of the form
// "s3://bucket/prefix" select their own bucket; plain paths use the
// configured default bucket.
type S3Transfer struct {
	client  *config.S3Client
	bucket  string
	pattern string
	hook    *config.ProgressHook
	log     *logging.Logger
}

func NewS3Transfer(ctx context.Context, conf config.S3Config) (*S3Transfer, error) {
	client, err := config.NewS3Client(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("S3 init failed: %w", err)
	}
	return &S3Transfer{
		client:  client,
		bucket:  conf.Bucket,
		pattern: conf.SourceFolderPattern,
		log:     logging.Discard(),
	}, nil
}

// WithProgress sets a hook receiving per file transfer progress.
func (t *S3Transfer) WithProgress(hook *config.ProgressHook) *S3Transfer {
	t.hook = hook
	return t
}

// WithLogger sets the logger used for transfer level logging.
func (t *S3Transfer) WithLogger(log *logging.Logger) *S3Transfer {
	t.log = log
	return t
}

// SourceFolder returns the dataset's source folder when set, otherwise it
// expands the configured pattern. "{pid}" in the pattern is replaced by the
// dataset's PID with the slash flattened so the folder nests one level deep.
// A dataset that has no PID yet gets a freshly generated unique id instead.
func (t *S3Transfer) SourceFolder(ds *dataset.Dataset) (model.RemotePath, error) {
	if !ds.SourceFolder.IsZero() {
		return ds.SourceFolder, nil
	}
	if t.pattern == "" {
		return model.RemotePath{}, errors.New("dataset has no source folder and no source folder pattern is configured")
	}
	if strings.Contains(t.pattern, "{pid}") {
		pid := ds.PID()
		if pid.IsZero() {
			pid = model.GeneratePID("")
		}
		flat := strings.ReplaceAll(strings.TrimPrefix(pid.String(), "/"), "/", "-")
		return model.NewRemotePath(strings.ReplaceAll(t.pattern, "{pid}", flat)), nil
	}
	return model.NewRemotePath(t.pattern), nil
}

// bucketAndKey splits a full remote path into bucket and object key.
func (t *S3Transfer) bucketAndKey(full model.RemotePath) (string, string, error) {
	p := full.String()
	if rest, ok := strings.CutPrefix(p, "s3://"); ok {
		bucket, key, found := strings.Cut(rest, "/")
		if !found || bucket == "" {
			return "", "", fmt.Errorf("malformed S3 path %q", p)
		}
		return bucket, key, nil
	}
	if t.bucket == "" {
		return "", "", fmt.Errorf("no bucket configured for path %q", p)
	}
	return t.bucket, strings.TrimPrefix(p, "/"), nil
}

func (t *S3Transfer) ConnectForUpload(ctx context.Context, ds *dataset.Dataset) (UploadConnection, error) {
	folder, err := t.SourceFolder(ds)
	if err != nil {
		return nil, err
	}
	existing, err := t.existingFiles(ctx, folder)
	if err != nil {
		return nil, err
	}
	return &s3UploadConnection{transfer: t, folder: folder, existing: existing}, nil
}

// existingFiles lists the objects already under the source folder. Uploads
// refuse to overwrite them; a shared or recycled folder surfaces as an error
// instead of silently replacing server-side data.
func (t *S3Transfer) existingFiles(ctx context.Context, folder model.RemotePath) (map[string]struct{}, error) {
	bucket, prefix, err := t.bucketAndKey(folder)
	if err != nil {
		return nil, err
	}
	files, err := t.client.ListFilesAll(ctx, bucket, prefix)
	if err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(files))
	for _, f := range files {
		out[f.Name] = struct{}{}
	}
	return out, nil
}

func (t *S3Transfer) ConnectForDownload(ctx context.Context, ds *dataset.Dataset) (DownloadConnection, error) {
	folder, err := t.SourceFolder(ds)
	if err != nil {
		return nil, err
	}
	return &s3DownloadConnection{transfer: t, folder: folder}, nil
}

type s3UploadConnection struct {
	transfer *S3Transfer
	folder   model.RemotePath
	existing map[string]struct{}
}

func (c *s3UploadConnection) SourceFolder() model.RemotePath { return c.folder }

func (c *s3UploadConnection) Close() error { return nil }

func (c *s3UploadConnection) Upload(ctx context.Context, f *dataset.File) (dataset.RemoteInfo, error) {
	if !f.IsOnLocal() {
		return dataset.RemoteInfo{}, &FileUploadError{
			RemotePath: f.RemotePath(),
			Err:        errors.New("file has no local copy"),
		}
	}
	if _, ok := c.existing[f.RemotePath().String()]; ok {
		return dataset.RemoteInfo{}, &FileUploadError{
			RemotePath: f.RemotePath(),
			Err:        fmt.Errorf("already exists under %s: %w", c.folder, fs.ErrExist),
		}
	}
	bucket, key, err := c.transfer.bucketAndKey(c.folder.Join(f.RemotePath().String()))
	if err != nil {
		return dataset.RemoteInfo{}, &FileUploadError{RemotePath: f.RemotePath(), Err: err}
	}

	local, err := os.Open(f.LocalPath())
	if err != nil {
		return dataset.RemoteInfo{}, &FileUploadError{RemotePath: f.RemotePath(), Err: err}
	}
	defer local.Close()

	c.transfer.log.Debug("uploading file", "bucket", bucket, "key", key)
	if c.transfer.hook != nil {
		err = c.transfer.client.UploadFileWithProgress(ctx, bucket, key, local, c.transfer.hook)
	} else {
		err = c.transfer.client.UploadFile(ctx, bucket, key, local)
	}
	if err != nil {
		return dataset.RemoteInfo{}, &FileUploadError{RemotePath: f.RemotePath(), Err: err}
	}

	info := dataset.RemoteInfo{Size: f.Size(), CreationTime: f.CreationTime()}
	if st, err := c.transfer.client.StatFile(ctx, bucket, key); err == nil {
		info.Size = st.Size
		info.CreationTime = st.LastModified.UTC()
	}
	return info, nil
}

func (c *s3UploadConnection) Revert(ctx context.Context, files ...*dataset.File) error {
	var failed []model.RemotePath
	var firstErr error
	for _, f := range files {
		bucket, key, err := c.transfer.bucketAndKey(c.folder.Join(f.RemotePath().String()))
		if err == nil {
			c.transfer.log.Debug("removing uploaded file", "bucket", bucket, "key", key)
			err = c.transfer.client.DeleteFile(ctx, bucket, key)
		}
		if err != nil {
			failed = append(failed, f.RemotePath())
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if len(failed) > 0 {
		return &RevertError{RemotePaths: failed, Err: firstErr}
	}
	return nil
}

type s3DownloadConnection struct {
	transfer *S3Transfer
	folder   model.RemotePath
}

func (c *s3DownloadConnection) SourceFolder() model.RemotePath { return c.folder }

func (c *s3DownloadConnection) Close() error { return nil }

func (c *s3DownloadConnection) Download(ctx context.Context, f *dataset.File, localPath string) error {
	bucket, key, err := c.transfer.bucketAndKey(c.folder.Join(f.RemotePath().String()))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return fmt.Errorf("cannot create download directory: %w", err)
	}
	c.transfer.log.Debug("downloading file", "bucket", bucket, "key", key)
	if c.transfer.hook != nil {
		return c.transfer.client.DownloadFileWithProgress(ctx, bucket, key, localPath, c.transfer.hook)
	}
	return c.transfer.client.DownloadFile(ctx, bucket, key, localPath)
}
