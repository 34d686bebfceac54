// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/dataset"
	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
)

// UploadError reports a failed upload after the dataset record was already
// created. The record is never deleted by the SDK; the PID identifies it for
// manual cleanup when file cleanup also failed.
type UploadError struct {
	PID model.PID
	// FilesReverted is true when all files uploaded before the failure were
	// removed from the file server again.
	FilesReverted bool
	Err           error
}

func (e *UploadError) Error() string {
	if e.FilesReverted {
		return fmt.Sprintf("upload of dataset %q failed, uploaded files were removed: %v", e.PID, e.Err)
	}
	return fmt.Sprintf("upload of dataset %q failed and some files remain on the file server: %v", e.PID, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// UploadNewDataset uploads a dataset and all its files as a new entry.
//
// The flow is: validate and build the upload models locally, create the
// dataset record, upload the files into the dataset's source folder, register
// the file list as an orig datablock, then upload attachments. The input is
// not modified; the returned dataset carries the server assigned fields and
// files in local+remote state.
//
// Partial failures follow one policy: the dataset record, once created, is
// never deleted. If a file upload or the datablock registration fails, the
// files uploaded so far are removed again and the error carries the PID.
// Attachment uploads are best effort and only logged.
func (c *Client) UploadNewDataset(ctx context.Context, ds *dataset.Dataset) (*dataset.Dataset, error) {
	folder, err := c.transfer.SourceFolder(ds)
	if err != nil {
		return nil, err
	}
	work, err := ds.Replace(map[string]any{"source_folder": folder})
	if err != nil {
		return nil, err
	}

	// Validate everything before touching the server.
	up, err := work.MakeUploadModel()
	if err != nil {
		return nil, err
	}
	for _, f := range work.Files() {
		if !f.IsOnLocal() {
			return nil, fmt.Errorf("file %q has no local copy to upload", f.RemotePath())
		}
	}
	block, err := work.MakeDatablockUploadModel(model.PID{})
	if err != nil {
		return nil, err
	}
	attachments := make([]model.UploadAttachment, 0, len(work.Attachments))
	for _, a := range work.Attachments {
		am, err := a.MakeUploadModel()
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, am)
	}

	finalized, err := c.catalogue.CreateDataset(ctx, up)
	if err != nil {
		return nil, err
	}
	work = work.WithServerFields(finalized)
	pid := work.PID()
	log := c.log.WithDataset(pid.String())
	log.Info("created dataset", "source_folder", work.SourceFolder.String())

	conn, err := c.transfer.ConnectForUpload(ctx, work)
	if err != nil {
		return nil, &UploadError{PID: pid, FilesReverted: true, Err: err}
	}
	defer conn.Close()

	var uploaded []*dataset.File
	for _, f := range work.Files() {
		info, err := conn.Upload(ctx, f)
		if err != nil {
			return nil, c.revert(ctx, conn, pid, uploaded, err)
		}
		log.Debug("uploaded file", "path", f.RemotePath().String(), "size", info.Size)
		uploaded = append(uploaded, f.Uploaded(info))
	}

	block.DatasetID = pid
	if _, err := c.catalogue.CreateOrigDatablock(ctx, block); err != nil {
		return nil, c.revert(ctx, conn, pid, uploaded, err)
	}

	for _, am := range attachments {
		id := pid
		am.DatasetID = &id
		if _, err := c.catalogue.CreateAttachment(ctx, pid, am); err != nil {
			log.Warn("attachment upload failed", "caption", am.Caption, "error", err)
		}
	}

	return work.WithFiles(uploaded...), nil
}

// revert removes already uploaded files after a failure and wraps the cause.
func (c *Client) revert(ctx context.Context, conn interface {
	Revert(ctx context.Context, files ...*dataset.File) error
}, pid model.PID, uploaded []*dataset.File, cause error) error {
	if len(uploaded) == 0 {
		return &UploadError{PID: pid, FilesReverted: true, Err: cause}
	}
	if err := conn.Revert(ctx, uploaded...); err != nil {
		c.log.WithDataset(pid.String()).Error("cleanup after failed upload did not finish", "error", err)
		return &UploadError{PID: pid, FilesReverted: false, Err: cause}
	}
	return &UploadError{PID: pid, FilesReverted: true, Err: cause}
}
