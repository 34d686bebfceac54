// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package catalogue

import (
	"context"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
)

// GetAttachments fetches all attachments of a dataset.
func (s *Service) GetAttachments(ctx context.Context, pid model.PID) ([]model.DownloadAttachment, error) {
	var out []model.DownloadAttachment
	url := s.http.BuildURL("datasets", pid.String(), nil) + "/attachments"
	if err := s.getJSON(ctx, "get attachments", url, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAttachment registers one attachment of a dataset.
func (s *Service) CreateAttachment(ctx context.Context, pid model.PID, att model.UploadAttachment) (model.DownloadAttachment, error) {
	var out model.DownloadAttachment
	url := s.http.BuildURL("datasets", pid.String(), nil) + "/attachments"
	if err := s.postJSON(ctx, "create attachment", url, att, &out); err != nil {
		return model.DownloadAttachment{}, err
	}
	return out, nil
}
