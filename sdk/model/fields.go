// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package model

// Field describes one dataset metadata field. The table below is the single
// source of truth for which fields exist, how they map to the wire schema,
// whether they can be written by clients and which dataset type uses them.
// Generic conversion and validation code consults this table so that the
// download, upload and user facing shapes cannot drift apart.
type Field struct {
	// Name is the user facing snake_case name, e.g. "owner_group".
	Name string
	// ScicatName is the camelCase name on the wire, e.g. "ownerGroup".
	ScicatName string
	// GoName is the corresponding field of dataset.Dataset. Empty for
	// read-only fields, which are stored unexported.
	GoName string
	// Description as published by the catalogue schema.
	Description string
	Required      bool
	ReadOnly      bool
	UsedByRaw     bool
	UsedByDerived bool
}

// UsedBy reports whether the field is meaningful for the given dataset type.
func (f Field) UsedBy(t DatasetType) bool {
	if t == DatasetTypeRaw {
		return f.UsedByRaw
	}
	return f.UsedByDerived
}

// DatasetFields is the full dataset field table.
var DatasetFields = []Field{
	{Name: "access_groups", ScicatName: "accessGroups", GoName: "AccessGroups", Description: "Groups which have read access to the data.", UsedByRaw: true, UsedByDerived: true},
	{Name: "classification", ScicatName: "classification", GoName: "Classification", Description: "ACIA information about the dataset, e.g. 'AV=medium,CO=low'.", UsedByRaw: true, UsedByDerived: true},
	{Name: "comment", ScicatName: "comment", GoName: "Comment", Description: "Comment the user has about the dataset.", UsedByRaw: true, UsedByDerived: true},
	{Name: "contact_email", ScicatName: "contactEmail", GoName: "ContactEmail", Description: "Email of the contact person, may be a semicolon separated list.", Required: true, UsedByRaw: true, UsedByDerived: true},
	{Name: "creation_location", ScicatName: "creationLocation", GoName: "CreationLocation", Description: "Unique location identifier where data was taken.", Required: true, UsedByRaw: true},
	{Name: "creation_time", ScicatName: "creationTime", GoName: "CreationTime", Description: "Time when the dataset became fully available on disk.", Required: true, UsedByRaw: true, UsedByDerived: true},
	{Name: "data_format", ScicatName: "dataFormat", GoName: "DataFormat", Description: "Format of the data files, e.g. Nexus version x.y.", UsedByRaw: true},
	{Name: "data_quality_metrics", ScicatName: "dataQualityMetrics", GoName: "DataQualityMetrics", Description: "Rating of the dataset given by the user.", UsedByRaw: true, UsedByDerived: true},
	{Name: "description", ScicatName: "description", GoName: "Description", Description: "Free text explanation of the dataset contents.", UsedByRaw: true, UsedByDerived: true},
	{Name: "end_time", ScicatName: "endTime", GoName: "EndTime", Description: "End time of data taking.", UsedByRaw: true},
	{Name: "input_datasets", ScicatName: "inputDatasets", GoName: "InputDatasets", Description: "PIDs of the datasets this one was derived from.", Required: true, UsedByDerived: true},
	{Name: "instrument_group", ScicatName: "instrumentGroup", GoName: "InstrumentGroup", Description: "Group of the instrument this dataset was taken at.", UsedByRaw: true, UsedByDerived: true},
	{Name: "instrument_id", ScicatName: "instrumentId", GoName: "InstrumentID", Description: "ID of the instrument where the data was created.", UsedByRaw: true},
	{Name: "investigator", ScicatName: "investigator", GoName: "Investigator", Description: "Email of the person who produced the derived data.", Required: true, UsedByDerived: true},
	{Name: "is_published", ScicatName: "isPublished", GoName: "IsPublished", Description: "Flag whether the dataset is publicly available.", UsedByRaw: true, UsedByDerived: true},
	{Name: "job_log_data", ScicatName: "jobLogData", GoName: "JobLogData", Description: "The output job log file of the process that produced the data.", UsedByDerived: true},
	{Name: "job_parameters", ScicatName: "jobParameters", GoName: "JobParameters", Description: "Input parameters of the job that produced the derived data.", UsedByDerived: true},
	{Name: "keywords", ScicatName: "keywords", GoName: "Keywords", Description: "Keywords describing the data.", UsedByRaw: true, UsedByDerived: true},
	{Name: "license", ScicatName: "license", GoName: "License", Description: "Name of the license under which the data can be used.", UsedByRaw: true, UsedByDerived: true},
	{Name: "name", ScicatName: "datasetName", GoName: "Name", Description: "A name for the dataset.", UsedByRaw: true, UsedByDerived: true},
	{Name: "orcid_of_owner", ScicatName: "orcidOfOwner", GoName: "OrcidOfOwner", Description: "ORCID of the owner, may be a semicolon separated list.", UsedByRaw: true, UsedByDerived: true},
	{Name: "owner", ScicatName: "owner", GoName: "Owner", Description: "Owner or custodian of the dataset.", Required: true, UsedByRaw: true, UsedByDerived: true},
	{Name: "owner_email", ScicatName: "ownerEmail", GoName: "OwnerEmail", Description: "Email of the owner, may be a semicolon separated list.", UsedByRaw: true, UsedByDerived: true},
	{Name: "owner_group", ScicatName: "ownerGroup", GoName: "OwnerGroup", Description: "Group of the owner of the dataset.", Required: true, UsedByRaw: true, UsedByDerived: true},
	{Name: "principal_investigator", ScicatName: "principalInvestigator", GoName: "PrincipalInvestigator", Description: "Principal investigator of the measurement.", Required: true, UsedByRaw: true},
	{Name: "proposal_id", ScicatName: "proposalId", GoName: "ProposalID", Description: "ID of the proposal this dataset belongs to.", UsedByRaw: true},
	{Name: "relationships", ScicatName: "relationships", GoName: "Relationships", Description: "Relationships between this and other datasets.", UsedByRaw: true, UsedByDerived: true},
	{Name: "sample_id", ScicatName: "sampleId", GoName: "SampleID", Description: "ID of the sample the data was taken from.", UsedByRaw: true},
	{Name: "shared_with", ScicatName: "sharedWith", GoName: "SharedWith", Description: "Users the dataset has been shared with.", UsedByRaw: true, UsedByDerived: true},
	{Name: "source_folder", ScicatName: "sourceFolder", GoName: "SourceFolder", Description: "Folder on the file server containing the data files.", Required: true, UsedByRaw: true, UsedByDerived: true},
	{Name: "source_folder_host", ScicatName: "sourceFolderHost", GoName: "SourceFolderHost", Description: "DNS host name of the machine serving the source folder.", UsedByRaw: true, UsedByDerived: true},
	{Name: "techniques", ScicatName: "techniques", GoName: "Techniques", Description: "Techniques used to produce the data.", UsedByRaw: true, UsedByDerived: true},
	{Name: "used_software", ScicatName: "usedSoftware", GoName: "UsedSoftware", Description: "Software used to produce the derived data.", Required: true, UsedByDerived: true},
	{Name: "validation_status", ScicatName: "validationStatus", GoName: "ValidationStatus", Description: "Level of trust, e.g. how much the data was verified.", UsedByRaw: true, UsedByDerived: true},

	{Name: "pid", ScicatName: "pid", Description: "Persistent identifier assigned by the catalogue.", ReadOnly: true, UsedByRaw: true, UsedByDerived: true},
	{Name: "api_version", ScicatName: "version", Description: "Version of the API used in creation of the dataset.", ReadOnly: true, UsedByRaw: true, UsedByDerived: true},
	{Name: "created_at", ScicatName: "createdAt", Description: "Time when the record was created on the server.", ReadOnly: true, UsedByRaw: true, UsedByDerived: true},
	{Name: "created_by", ScicatName: "createdBy", Description: "User who created the record.", ReadOnly: true, UsedByRaw: true, UsedByDerived: true},
	{Name: "updated_at", ScicatName: "updatedAt", Description: "Time when the record was last updated.", ReadOnly: true, UsedByRaw: true, UsedByDerived: true},
	{Name: "updated_by", ScicatName: "updatedBy", Description: "User who last updated the record.", ReadOnly: true, UsedByRaw: true, UsedByDerived: true},
	{Name: "lifecycle", ScicatName: "datasetlifecycle", Description: "Archival and retrieval state of the dataset.", ReadOnly: true, UsedByRaw: true, UsedByDerived: true},
}

var datasetFieldsByName = func() map[string]Field {
	m := make(map[string]Field, len(DatasetFields))
	for _, f := range DatasetFields {
		m[f.Name] = f
	}
	return m
}()

// DatasetFieldByName looks up a field table entry by its snake_case name.
func DatasetFieldByName(name string) (Field, bool) {
	f, ok := datasetFieldsByName[name]
	return f, ok
}
