// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/dataset"
	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
)

// GetDataset fetches a dataset record together with its orig datablocks and
// reconstructs the dataset with its files in remote-only state.
func (c *Client) GetDataset(ctx context.Context, pid model.PID) (*dataset.Dataset, error) {
	dm, err := c.catalogue.GetDataset(ctx, pid)
	if err != nil {
		return nil, err
	}
	blocks, err := c.catalogue.GetOrigDatablocks(ctx, pid)
	if err != nil {
		return nil, err
	}
	return dataset.FromDownloadModels(dm, blocks)
}

// GetAttachments fetches all attachments of a dataset.
func (c *Client) GetAttachments(ctx context.Context, pid model.PID) ([]model.Attachment, error) {
	dms, err := c.catalogue.GetAttachments(ctx, pid)
	if err != nil {
		return nil, err
	}
	out := make([]model.Attachment, 0, len(dms))
	for _, dm := range dms {
		out = append(out, model.AttachmentFromDownload(dm))
	}
	return out, nil
}

// FileSelector picks which files of a dataset to download. A nil selector
// selects every file.
type FileSelector func(f *dataset.File) bool

// SelectByName selects files whose base name matches one of the given names.
func SelectByName(names ...string) FileSelector {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(f *dataset.File) bool {
		_, ok := set[f.RemotePath().Name()]
		return ok
	}
}

// DownloadFiles downloads the selected files of a dataset into targetDir,
// recreating the remote directory layout below it.
//
// A file that already exists locally with the recorded checksum (or size,
// when no checksum is known) is not downloaded again. Every downloaded file
// is verified against the dataset's records; a mismatch aborts with an
// IntegrityError. The input is not modified; the returned dataset has the
// downloaded files in local+remote state.
func (c *Client) DownloadFiles(ctx context.Context, ds *dataset.Dataset, targetDir string, selector FileSelector) (*dataset.Dataset, error) {
	var wanted []*dataset.File
	for _, f := range ds.Files() {
		if !f.IsOnRemote() {
			continue
		}
		if selector == nil || selector(f) {
			wanted = append(wanted, f)
		}
	}
	if len(wanted) == 0 {
		return ds, nil
	}

	conn, err := c.transfer.ConnectForDownload(ctx, ds)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	log := c.log.WithDataset(ds.PID().String())
	var downloaded []*dataset.File
	for _, f := range wanted {
		local := filepath.Join(targetDir, filepath.FromSlash(f.RemotePath().String()))
		cand := f.Downloaded(local)

		if _, err := os.Stat(local); err == nil {
			if cand.ValidateLocal() == nil {
				log.Debug("file already present, skipping download", "path", local)
				downloaded = append(downloaded, cand)
				continue
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}

		if err := conn.Download(ctx, f, local); err != nil {
			return nil, err
		}
		if err := cand.ValidateLocal(); err != nil {
			return nil, err
		}
		log.Debug("downloaded file", "path", local)
		downloaded = append(downloaded, cand)
	}

	return ds.WithFiles(downloaded...), nil
}
