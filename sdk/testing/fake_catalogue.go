// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package testing provides in-memory fakes of the catalogue and the file
// transfer backend. They let applications test their dataset handling
// without a running catalogue or file server.
package testing

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
	"github.com/scc-digitalhub/scicat-go-sdk/sdk/services/catalogue"
)

// FakePIDPrefix is the prefix of PIDs assigned by the fake catalogue.
const FakePIDPrefix = "PID.SAMPLE.PREFIX"

// FakeCatalogue implements the client's Catalogue interface with in-memory
// stores. Individual operations can be made to fail via Disable; records can
// be seeded and inspected directly through the exported maps while no call
// is in flight.
type FakeCatalogue struct {
	mu sync.Mutex

	// Disable maps an operation name, e.g. "CreateDataset", to the error the
	// next calls return.
	Disable map[string]error

	Datasets    map[string]model.DownloadDataset
	Datablocks  map[string][]model.DownloadOrigDatablock
	Attachments map[string][]model.DownloadAttachment
}

func NewFakeCatalogue() *FakeCatalogue {
	return &FakeCatalogue{
		Disable:     map[string]error{},
		Datasets:    map[string]model.DownloadDataset{},
		Datablocks:  map[string][]model.DownloadOrigDatablock{},
		Attachments: map[string][]model.DownloadAttachment{},
	}
}

// SeedDataset stores a record under its PID, assigning one if needed.
func (f *FakeCatalogue) SeedDataset(dm model.DownloadDataset) model.PID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if dm.PID == nil {
		pid := model.GeneratePID(FakePIDPrefix)
		dm.PID = &pid
	}
	f.Datasets[dm.PID.String()] = dm
	return *dm.PID
}

func (f *FakeCatalogue) fail(op string) error {
	if err, ok := f.Disable[op]; ok {
		return err
	}
	return nil
}

func notFound(op string) error {
	return &catalogue.CommError{Op: op, StatusCode: 404, Err: errors.New("record not found")}
}

func (f *FakeCatalogue) GetDataset(_ context.Context, pid model.PID) (model.DownloadDataset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GetDataset"); err != nil {
		return model.DownloadDataset{}, err
	}
	dm, ok := f.Datasets[pid.String()]
	if !ok {
		return model.DownloadDataset{}, notFound("get dataset")
	}
	return dm, nil
}

func (f *FakeCatalogue) CreateDataset(_ context.Context, up model.UploadDataset) (model.DownloadDataset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("CreateDataset"); err != nil {
		return model.DownloadDataset{}, err
	}

	pid := model.GeneratePID(FakePIDPrefix)
	now := time.Now().UTC()
	creation := up.CreationTime
	dm := model.DownloadDataset{
		PID:                   &pid,
		Type:                  up.Type,
		ContactEmail:          up.ContactEmail,
		CreationTime:          &creation,
		Owner:                 up.Owner,
		OwnerGroup:            up.OwnerGroup,
		SourceFolder:          up.SourceFolder,
		CreationLocation:      up.CreationLocation,
		PrincipalInvestigator: up.PrincipalInvestigator,
		Investigator:          up.Investigator,
		InputDatasets:         up.InputDatasets,
		UsedSoftware:          up.UsedSoftware,
		AccessGroups:          up.AccessGroups,
		Classification:        up.Classification,
		Comment:               up.Comment,
		DataFormat:            up.DataFormat,
		DataQualityMetrics:    up.DataQualityMetrics,
		Description:           up.Description,
		EndTime:               up.EndTime,
		InstrumentGroup:       up.InstrumentGroup,
		InstrumentID:          up.InstrumentID,
		IsPublished:           up.IsPublished,
		JobLogData:            up.JobLogData,
		JobParameters:         up.JobParameters,
		Keywords:              up.Keywords,
		License:               up.License,
		DatasetName:           up.DatasetName,
		OrcidOfOwner:          up.OrcidOfOwner,
		OwnerEmail:            up.OwnerEmail,
		ProposalID:            up.ProposalID,
		Relationships:         up.Relationships,
		SampleID:              up.SampleID,
		SharedWith:            up.SharedWith,
		SourceFolderHost:      up.SourceFolderHost,
		Techniques:            up.Techniques,
		ValidationStatus:      up.ValidationStatus,
		ScientificMetadata:    up.ScientificMetadata,
		NumberOfFiles:         up.NumberOfFiles,
		NumberOfFilesArchived: up.NumberOfFilesArchived,
		PackedSize:            up.PackedSize,
		Size:                  up.Size,
		APIVersion:            "fake-1.0",
		CreatedAt:             &now,
		CreatedBy:             "fake",
		UpdatedAt:             &now,
		UpdatedBy:             "fake",
	}
	f.Datasets[pid.String()] = dm
	return dm, nil
}

func (f *FakeCatalogue) GetOrigDatablocks(_ context.Context, pid model.PID) ([]model.DownloadOrigDatablock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GetOrigDatablocks"); err != nil {
		return nil, err
	}
	if _, ok := f.Datasets[pid.String()]; !ok {
		return nil, notFound("get orig datablocks")
	}
	return f.Datablocks[pid.String()], nil
}

func (f *FakeCatalogue) CreateOrigDatablock(_ context.Context, block model.UploadOrigDatablock) (model.DownloadOrigDatablock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("CreateOrigDatablock"); err != nil {
		return model.DownloadOrigDatablock{}, err
	}
	key := block.DatasetID.String()
	if _, ok := f.Datasets[key]; !ok {
		return model.DownloadOrigDatablock{}, notFound("create orig datablock")
	}

	id := block.DatasetID
	now := time.Now().UTC()
	dm := model.DownloadOrigDatablock{
		ID:              model.GeneratePID("").ID(),
		DatasetID:       &id,
		Size:            block.Size,
		ChkAlg:          block.ChkAlg,
		DataFileList:    downloadFileList(block.DataFileList),
		OwnerGroup:      block.OwnerGroup,
		AccessGroups:    block.AccessGroups,
		InstrumentGroup: block.InstrumentGroup,
		CreatedAt:       &now,
		CreatedBy:       "fake",
	}
	f.Datablocks[key] = append(f.Datablocks[key], dm)
	return dm, nil
}

func (f *FakeCatalogue) GetAttachments(_ context.Context, pid model.PID) ([]model.DownloadAttachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GetAttachments"); err != nil {
		return nil, err
	}
	if _, ok := f.Datasets[pid.String()]; !ok {
		return nil, notFound("get attachments")
	}
	return f.Attachments[pid.String()], nil
}

func (f *FakeCatalogue) CreateAttachment(_ context.Context, pid model.PID, att model.UploadAttachment) (model.DownloadAttachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("CreateAttachment"); err != nil {
		return model.DownloadAttachment{}, err
	}
	key := pid.String()
	if _, ok := f.Datasets[key]; !ok {
		return model.DownloadAttachment{}, notFound("create attachment")
	}

	id := pid
	now := time.Now().UTC()
	dm := model.DownloadAttachment{
		ID:              model.GeneratePID("").ID(),
		DatasetID:       &id,
		Caption:         att.Caption,
		Thumbnail:       att.Thumbnail,
		OwnerGroup:      att.OwnerGroup,
		AccessGroups:    att.AccessGroups,
		InstrumentGroup: att.InstrumentGroup,
		ProposalID:      att.ProposalID,
		SampleID:        att.SampleID,
		CreatedAt:       &now,
		CreatedBy:       "fake",
	}
	f.Attachments[key] = append(f.Attachments[key], dm)
	return dm, nil
}

func downloadFileList(files []model.UploadDataFile) []model.DownloadDataFile {
	out := make([]model.DownloadDataFile, 0, len(files))
	for _, fm := range files {
		t := fm.Time
		out = append(out, model.DownloadDataFile{
			Path: fm.Path,
			Size: fm.Size,
			Time: &t,
			Chk:  fm.Chk,
			UID:  fm.UID,
			GID:  fm.GID,
			Perm: fm.Perm,
		})
	}
	return out
}
