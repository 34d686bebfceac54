// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package catalogue

import (
	"context"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
)

// GetDataset fetches one dataset record by PID.
func (s *Service) GetDataset(ctx context.Context, pid model.PID) (model.DownloadDataset, error) {
	var out model.DownloadDataset
	url := s.http.BuildURL("datasets", pid.String(), nil)
	if err := s.getJSON(ctx, "get dataset", url, &out); err != nil {
		return model.DownloadDataset{}, err
	}
	return out, nil
}

// CreateDataset registers a new dataset and returns the finalized record,
// including the PID assigned by the server.
func (s *Service) CreateDataset(ctx context.Context, ds model.UploadDataset) (model.DownloadDataset, error) {
	var out model.DownloadDataset
	url := s.http.BuildURL("datasets", "", nil)
	if err := s.postJSON(ctx, "create dataset", url, ds, &out); err != nil {
		return model.DownloadDataset{}, err
	}
	return out, nil
}
