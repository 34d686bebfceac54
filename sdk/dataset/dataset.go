// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package dataset implements the user facing dataset and file entities and
// their reconciliation with the catalogue wire models.
package dataset

import (
	"fmt"
	"io/fs"
	"reflect"
	"time"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
)

// Dataset is the aggregate root of the SDK: metadata fields, the files that
// belong to the dataset, and ancillary records (orig datablocks, attachments).
//
// Writable metadata fields are exported and can be set directly. Server
// assigned fields (PID, creation and update bookkeeping, lifecycle) are
// unexported and only populated by FromDownloadModels or by the client after
// an upload; they are exposed through getter methods and cannot be set.
//
// The dataset type is fixed at construction. Which fields are legal for which
// type is governed by model.DatasetFields; MakeUploadModel enforces it.
//
// Derived quantities (total size, file counts) are computed from the current
// file list on every call, never stored.
type Dataset struct {
	AccessGroups          []string
	Classification        string
	Comment               string
	ContactEmail          string
	CreationLocation      string
	CreationTime          time.Time
	DataFormat            string
	DataQualityMetrics    int
	Description           string
	EndTime               time.Time
	InputDatasets         []model.PID
	InstrumentGroup       string
	InstrumentID          string
	Investigator          string
	IsPublished           bool
	JobLogData            string
	JobParameters         map[string]any
	Keywords              []string
	License               string
	Name                  string
	OrcidOfOwner          string
	Owner                 string
	OwnerEmail            string
	OwnerGroup            string
	PrincipalInvestigator string
	ProposalID            string
	Relationships         []model.Relationship
	SampleID              string
	SharedWith            []string
	SourceFolder          model.RemotePath
	SourceFolderHost      string
	Techniques            []model.Technique
	UsedSoftware          []string
	ValidationStatus      string

	// Meta is the free form scientific metadata. It is not validated by the
	// SDK; the server may still reject it.
	Meta map[string]any

	// ChecksumAlgorithm is used for file checksums at upload time.
	ChecksumAlgorithm string

	// Attachments are uploaded best-effort after the dataset itself.
	Attachments []model.Attachment

	dtype model.DatasetType

	pid        model.PID
	apiVersion string
	createdAt  time.Time
	createdBy  string
	updatedAt  time.Time
	updatedBy  string
	lifecycle  *model.Lifecycle

	files          []*File
	origDatablocks []*OrigDatablock
}

// New creates an empty dataset of the given type with the creation time set
// to the current UTC time and the default checksum algorithm.
func New(t model.DatasetType) *Dataset {
	return &Dataset{
		dtype:             t,
		CreationTime:      time.Now().UTC(),
		Meta:              map[string]any{},
		ChecksumAlgorithm: DefaultChecksumAlgorithm,
	}
}

// Type returns the dataset type, fixed at construction.
func (d *Dataset) Type() model.DatasetType { return d.dtype }

// PID returns the persistent identifier, zero until assigned by the server.
func (d *Dataset) PID() model.PID { return d.pid }

// APIVersion returns the server API version the record was created with.
func (d *Dataset) APIVersion() string { return d.apiVersion }

// CreatedAt returns when the record was created on the server.
func (d *Dataset) CreatedAt() time.Time { return d.createdAt }

// CreatedBy returns the user who created the record on the server.
func (d *Dataset) CreatedBy() string { return d.createdBy }

// UpdatedAt returns when the record was last updated on the server.
func (d *Dataset) UpdatedAt() time.Time { return d.updatedAt }

// UpdatedBy returns the user who last updated the record on the server.
func (d *Dataset) UpdatedBy() string { return d.updatedBy }

// Lifecycle returns the archival state of the dataset, nil for new datasets.
func (d *Dataset) Lifecycle() *model.Lifecycle { return d.lifecycle }

// Files returns the files of this dataset. The returned slice is a copy but
// shares the File objects.
func (d *Dataset) Files() []*File {
	out := make([]*File, len(d.files))
	copy(out, d.files)
	return out
}

// OrigDatablocks returns the datablocks reconstructed from a download.
func (d *Dataset) OrigDatablocks() []*OrigDatablock {
	out := make([]*OrigDatablock, len(d.origDatablocks))
	copy(out, d.origDatablocks)
	return out
}

// Size returns the total size of all files in bytes.
func (d *Dataset) Size() int64 {
	var total int64
	for _, f := range d.files {
		total += f.Size()
	}
	return total
}

// NumberOfFiles returns the number of files in the dataset.
func (d *Dataset) NumberOfFiles() int { return len(d.files) }

// NumberOfFilesArchived is always 0; the SDK does not manage archived
// datablocks.
func (d *Dataset) NumberOfFilesArchived() int { return 0 }

// AddFiles appends files to the dataset. A file whose remote path collides
// with one already in the dataset is rejected with an error wrapping
// fs.ErrExist; nothing is silently overwritten.
func (d *Dataset) AddFiles(files ...*File) error {
	for _, file := range files {
		for _, existing := range d.files {
			if existing.RemotePath() == file.RemotePath() {
				return fmt.Errorf("file with remote path %q already exists in dataset: %w",
					file.RemotePath(), fs.ErrExist)
			}
		}
		d.files = append(d.files, file)
	}
	return nil
}

// AddLocalFiles builds Files from local paths and appends them. Checksums are
// computed lazily when the upload models are built; use ChecksumFiles to
// compute them eagerly.
func (d *Dataset) AddLocalFiles(paths ...string) error {
	for _, path := range paths {
		f, err := FromLocal(path)
		if err != nil {
			return err
		}
		if err := d.AddFiles(f); err != nil {
			return err
		}
	}
	return nil
}

// ChecksumFiles computes the checksum of every local file now, using the
// dataset's checksum algorithm.
func (d *Dataset) ChecksumFiles() error {
	for _, f := range d.files {
		if !f.IsOnLocal() {
			continue
		}
		if _, err := f.Checksum(d.ChecksumAlgorithm); err != nil {
			return err
		}
	}
	return nil
}

// clone returns a deep enough copy: field values are copied, slices and maps
// are duplicated, File pointers are shared (Files are immutable values).
func (d *Dataset) clone() *Dataset {
	c := *d
	c.AccessGroups = cloneSlice(d.AccessGroups)
	c.InputDatasets = cloneSlice(d.InputDatasets)
	c.Keywords = cloneSlice(d.Keywords)
	c.Relationships = cloneSlice(d.Relationships)
	c.SharedWith = cloneSlice(d.SharedWith)
	c.Techniques = cloneSlice(d.Techniques)
	c.UsedSoftware = cloneSlice(d.UsedSoftware)
	c.Attachments = cloneSlice(d.Attachments)
	c.JobParameters = cloneMap(d.JobParameters)
	c.Meta = cloneMap(d.Meta)
	c.files = cloneSlice(d.files)
	c.origDatablocks = cloneSlice(d.origDatablocks)
	return &c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Replace returns a new dataset with the named writable fields overridden,
// preserving everything else including files and meta. Field names are the
// snake_case names of the field table, plus "meta" and "checksum_algorithm".
// Datetime fields also accept a string value, including the literal "now".
// Naming a read-only or unknown field is an error; the receiver is never
// modified.
func (d *Dataset) Replace(overrides map[string]any) (*Dataset, error) {
	c := d.clone()
	v := reflect.ValueOf(c).Elem()
	for name, value := range overrides {
		switch name {
		case "meta":
			meta, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("field \"meta\" requires a map[string]any, got %T", value)
			}
			c.Meta = meta
			continue
		case "checksum_algorithm":
			alg, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("field \"checksum_algorithm\" requires a string, got %T", value)
			}
			c.ChecksumAlgorithm = alg
			continue
		}
		spec, ok := model.DatasetFieldByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown dataset field %q", name)
		}
		if spec.ReadOnly {
			return nil, fmt.Errorf("cannot set read-only field %q", name)
		}
		target := v.FieldByName(spec.GoName)
		if value == nil {
			target.SetZero()
			continue
		}
		if s, ok := value.(string); ok && target.Type() == reflect.TypeOf(time.Time{}) {
			parsed, err := model.ParseTime(name, s)
			if err != nil {
				return nil, err
			}
			target.Set(reflect.ValueOf(parsed))
			continue
		}
		val := reflect.ValueOf(value)
		if !val.Type().AssignableTo(target.Type()) {
			return nil, fmt.Errorf("field %q requires %s, got %T", name, target.Type(), value)
		}
		target.Set(val)
	}
	return c, nil
}

// AsNew returns a copy with all server assigned fields cleared and the
// creation time reset, suitable for uploading as a fresh dataset.
func (d *Dataset) AsNew() *Dataset {
	c := d.clone()
	c.pid = model.PID{}
	c.apiVersion = ""
	c.createdAt = time.Time{}
	c.createdBy = ""
	c.updatedAt = time.Time{}
	c.updatedBy = ""
	c.lifecycle = nil
	c.origDatablocks = nil
	c.CreationTime = time.Now().UTC()
	return c
}

// DefaultDeriveKeep is the set of fields Derive copies when none are named.
var DefaultDeriveKeep = []string{
	"contact_email", "investigator", "orcid_of_owner", "owner", "owner_email",
}

// Derive produces a new derived dataset referencing the receiver as its input
// dataset. Only the named fields (or DefaultDeriveKeep) are copied; fields
// that only exist on raw datasets, such as the instrument id, can never carry
// over. The receiver must have a PID, i.e. must have been downloaded from or
// uploaded to the catalogue.
func (d *Dataset) Derive(keep ...string) (*Dataset, error) {
	if d.pid.IsZero() {
		return nil, fmt.Errorf("cannot derive from dataset without a PID")
	}
	if keep == nil {
		keep = DefaultDeriveKeep
	}
	derived := New(model.DatasetTypeDerived)
	derived.InputDatasets = []model.PID{d.pid}
	derived.ChecksumAlgorithm = d.ChecksumAlgorithm

	src := reflect.ValueOf(d).Elem()
	dst := reflect.ValueOf(derived).Elem()
	for _, name := range keep {
		spec, ok := model.DatasetFieldByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown dataset field %q", name)
		}
		if spec.ReadOnly {
			return nil, fmt.Errorf("cannot carry read-only field %q into a derived dataset", name)
		}
		if !spec.UsedByDerived {
			return nil, fmt.Errorf("field %q is not allowed in derived datasets", name)
		}
		// Slices and maps are duplicated so the derived dataset never shares
		// backing storage with its source.
		val := src.FieldByName(spec.GoName)
		switch val.Kind() {
		case reflect.Slice:
			if !val.IsNil() {
				cp := reflect.MakeSlice(val.Type(), val.Len(), val.Len())
				reflect.Copy(cp, val)
				val = cp
			}
		case reflect.Map:
			if !val.IsNil() {
				cp := reflect.MakeMapWithSize(val.Type(), val.Len())
				for it := val.MapRange(); it.Next(); {
					cp.SetMapIndex(it.Key(), it.Value())
				}
				val = cp
			}
		}
		dst.FieldByName(spec.GoName).Set(val)
	}
	return derived, nil
}

// MakeUploadModel converts the dataset into its upload shape.
//
// It fails if a server assigned field is set (the dataset is not new), if a
// required field for this dataset type is missing, or if a field that the
// other dataset type owns is set. Field format validation (emails, ORCID,
// datetimes, sizes) happens here, synchronously.
func (d *Dataset) MakeUploadModel() (model.UploadDataset, error) {
	var zero model.UploadDataset
	if !d.pid.IsZero() {
		return zero, fmt.Errorf("dataset already has PID %q, server assigned fields must be unset for upload", d.pid)
	}
	if !d.createdAt.IsZero() || d.createdBy != "" || d.apiVersion != "" {
		return zero, fmt.Errorf("server assigned fields must be unset for upload")
	}

	v := reflect.ValueOf(d).Elem()
	for _, spec := range model.DatasetFields {
		if spec.ReadOnly {
			continue
		}
		field := v.FieldByName(spec.GoName)
		if spec.UsedBy(d.dtype) {
			if spec.Required && field.IsZero() {
				return zero, &model.MissingRequiredFieldError{Field: spec.Name}
			}
		} else if !field.IsZero() {
			return zero, &model.ValidationError{
				Field:  spec.Name,
				Reason: fmt.Sprintf("not allowed in %s datasets", d.dtype),
			}
		}
	}

	contactEmail, err := model.ValidateEmails("contact_email", d.ContactEmail)
	if err != nil {
		return zero, err
	}
	ownerEmail, err := model.ValidateEmails("owner_email", d.OwnerEmail)
	if err != nil {
		return zero, err
	}
	if err := model.ValidateORCID("orcid_of_owner", d.OrcidOfOwner); err != nil {
		return zero, err
	}

	up := model.UploadDataset{
		Type:                  d.dtype,
		ContactEmail:          contactEmail,
		CreationTime:          d.CreationTime,
		Owner:                 d.Owner,
		OwnerGroup:            d.OwnerGroup,
		SourceFolder:          d.SourceFolder,
		CreationLocation:      d.CreationLocation,
		PrincipalInvestigator: d.PrincipalInvestigator,
		Investigator:          d.Investigator,
		InputDatasets:         d.InputDatasets,
		UsedSoftware:          d.UsedSoftware,
		AccessGroups:          d.AccessGroups,
		Classification:        d.Classification,
		Comment:               d.Comment,
		DataFormat:            d.DataFormat,
		DataQualityMetrics:    d.DataQualityMetrics,
		Description:           d.Description,
		InstrumentGroup:       d.InstrumentGroup,
		InstrumentID:          d.InstrumentID,
		IsPublished:           d.IsPublished,
		JobLogData:            d.JobLogData,
		JobParameters:         d.JobParameters,
		Keywords:              d.Keywords,
		License:               d.License,
		DatasetName:           d.Name,
		OrcidOfOwner:          d.OrcidOfOwner,
		OwnerEmail:            ownerEmail,
		ProposalID:            d.ProposalID,
		Relationships:         d.Relationships,
		SampleID:              d.SampleID,
		SharedWith:            d.SharedWith,
		SourceFolderHost:      d.SourceFolderHost,
		Techniques:            d.Techniques,
		ValidationStatus:      d.ValidationStatus,
		NumberOfFiles:         d.NumberOfFiles(),
		NumberOfFilesArchived: d.NumberOfFilesArchived(),
		Size:                  d.Size(),
	}
	if !d.EndTime.IsZero() {
		t := d.EndTime
		up.EndTime = &t
	}
	if len(d.Meta) > 0 {
		up.ScientificMetadata = d.Meta
	}
	if err := model.ValidateSize("size", up.Size); err != nil {
		return zero, err
	}
	return up, nil
}

// FromDownloadModels reconstructs a dataset from a download model and the
// orig datablock models belonging to it. All fields are populated, including
// the server assigned ones; files are rebuilt from the datablock entries in
// remote-only state.
func FromDownloadModels(dm model.DownloadDataset, blocks []model.DownloadOrigDatablock) (*Dataset, error) {
	t, err := model.ParseDatasetType(string(dm.Type))
	if err != nil {
		return nil, err
	}
	d := New(t)
	d.AccessGroups = dm.AccessGroups
	d.Classification = dm.Classification
	d.Comment = dm.Comment
	d.ContactEmail = dm.ContactEmail
	d.CreationLocation = dm.CreationLocation
	d.DataFormat = dm.DataFormat
	d.DataQualityMetrics = dm.DataQualityMetrics
	d.Description = dm.Description
	d.InputDatasets = dm.InputDatasets
	d.InstrumentGroup = dm.InstrumentGroup
	d.InstrumentID = dm.InstrumentID
	d.Investigator = dm.Investigator
	d.IsPublished = dm.IsPublished
	d.JobLogData = dm.JobLogData
	d.JobParameters = dm.JobParameters
	d.Keywords = dm.Keywords
	d.License = dm.License
	d.Name = dm.DatasetName
	d.OrcidOfOwner = dm.OrcidOfOwner
	d.Owner = dm.Owner
	d.OwnerEmail = dm.OwnerEmail
	d.OwnerGroup = dm.OwnerGroup
	d.PrincipalInvestigator = dm.PrincipalInvestigator
	d.ProposalID = dm.ProposalID
	d.Relationships = dm.Relationships
	d.SampleID = dm.SampleID
	d.SharedWith = dm.SharedWith
	d.SourceFolder = dm.SourceFolder
	d.SourceFolderHost = dm.SourceFolderHost
	d.Techniques = dm.Techniques
	d.UsedSoftware = dm.UsedSoftware
	d.ValidationStatus = dm.ValidationStatus
	if dm.CreationTime != nil {
		d.CreationTime = *dm.CreationTime
	}
	if dm.EndTime != nil {
		d.EndTime = *dm.EndTime
	}
	if dm.ScientificMetadata != nil {
		d.Meta = dm.ScientificMetadata
	}

	if dm.PID != nil {
		d.pid = *dm.PID
	}
	d.apiVersion = dm.APIVersion
	d.createdBy = dm.CreatedBy
	d.updatedBy = dm.UpdatedBy
	d.lifecycle = dm.Lifecycle
	if dm.CreatedAt != nil {
		d.createdAt = *dm.CreatedAt
	}
	if dm.UpdatedAt != nil {
		d.updatedAt = *dm.UpdatedAt
	}

	for _, block := range blocks {
		ob := OrigDatablockFromDownload(block)
		d.origDatablocks = append(d.origDatablocks, ob)
		if err := d.AddFiles(ob.Files()...); err != nil {
			return nil, err
		}
		if ob.ChecksumAlgorithm != "" {
			d.ChecksumAlgorithm = ob.ChecksumAlgorithm
		}
	}
	return d, nil
}

// WithServerFields returns a copy of the dataset with the server assigned
// fields taken from a download model, typically the response of a create
// call. Writable fields, files and meta are preserved.
func (d *Dataset) WithServerFields(dm model.DownloadDataset) *Dataset {
	c := d.clone()
	if dm.PID != nil {
		c.pid = *dm.PID
	}
	c.apiVersion = dm.APIVersion
	c.createdBy = dm.CreatedBy
	c.updatedBy = dm.UpdatedBy
	c.lifecycle = dm.Lifecycle
	if dm.CreatedAt != nil {
		c.createdAt = *dm.CreatedAt
	}
	if dm.UpdatedAt != nil {
		c.updatedAt = *dm.UpdatedAt
	}
	if !dm.SourceFolder.IsZero() {
		c.SourceFolder = dm.SourceFolder
	}
	return c
}

// WithFiles returns a copy of the dataset where files matching the given ones
// (per File.SameFile) are replaced and new ones are appended.
func (d *Dataset) WithFiles(files ...*File) *Dataset {
	c := d.clone()
	for _, file := range files {
		replaced := false
		for i, existing := range c.files {
			if existing.SameFile(file) {
				c.files[i] = file
				replaced = true
				break
			}
		}
		if !replaced {
			c.files = append(c.files, file)
		}
	}
	return c
}
