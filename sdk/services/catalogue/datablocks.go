// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package catalogue

import (
	"context"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
)

// GetOrigDatablocks fetches all orig datablocks of a dataset.
func (s *Service) GetOrigDatablocks(ctx context.Context, pid model.PID) ([]model.DownloadOrigDatablock, error) {
	var out []model.DownloadOrigDatablock
	url := s.http.BuildURL("datasets", pid.String(), nil) + "/origdatablocks"
	if err := s.getJSON(ctx, "get orig datablocks", url, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateOrigDatablock registers the file list of a dataset.
func (s *Service) CreateOrigDatablock(ctx context.Context, block model.UploadOrigDatablock) (model.DownloadOrigDatablock, error) {
	var out model.DownloadOrigDatablock
	url := s.http.BuildURL("origdatablocks", "", nil)
	if err := s.postJSON(ctx, "create orig datablock", url, block, &out); err != nil {
		return model.DownloadOrigDatablock{}, err
	}
	return out, nil
}
