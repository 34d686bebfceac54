// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
)

// File represents one data file associated with a dataset.
//
// A file is on the local filesystem, on the remote file server, or both.
// A file on neither is meaningless and rejected at construction. Files are
// value objects: the transfer related methods Uploaded and Downloaded return
// a new File and never mutate the receiver. The only internal mutation is the
// checksum cache.
//
// The remote path is relative to the dataset's source folder; use
// RemoteAccessPath to obtain the full path on the file server.
type File struct {
	remotePath   model.RemotePath
	localPath    string
	size         int64
	creationTime time.Time
	onRemote     bool

	checksumAlgorithm string
	checksum          string

	remoteUID  string
	remoteGID  string
	remotePerm string
}

// RemoteInfo carries per file metadata reported by the file server after an
// upload.
type RemoteInfo struct {
	UID          string
	GID          string
	Perm         string
	Size         int64
	CreationTime time.Time
}

// FromLocal creates a File in local-only state. Size and creation time are
// read from the filesystem immediately; the checksum is computed lazily.
// The remote path defaults to the file's base name.
func FromLocal(path string) (*File, error) {
	return FromLocalAt(path, model.NewRemotePath(filepath.Base(path)))
}

// FromLocalAt is FromLocal with an explicit remote path relative to the
// dataset's source folder.
func FromLocalAt(path string, remotePath model.RemotePath) (*File, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access local file: %w", err)
	}
	return &File{
		remotePath: remotePath,
		localPath:  path,
		size:       st.Size(),
		// The catalogue only cares about the latest version of the file, so
		// the modification time stands in for the creation time.
		creationTime: st.ModTime().UTC(),
	}, nil
}

// FromDownloadModel creates a File in remote-only state from a datablock
// entry. No local filesystem access happens.
func FromDownloadModel(m model.DownloadDataFile, checksumAlgorithm string) *File {
	f := &File{
		remotePath:        model.NewRemotePath(m.Path),
		size:              m.Size,
		onRemote:          true,
		checksum:          m.Chk,
		checksumAlgorithm: checksumAlgorithm,
		remoteUID:         m.UID,
		remoteGID:         m.GID,
		remotePerm:        m.Perm,
	}
	if m.Time != nil {
		f.creationTime = *m.Time
	}
	return f
}

// RemotePath returns the file's path relative to the dataset's source folder.
func (f *File) RemotePath() model.RemotePath { return f.remotePath }

// LocalPath returns the path of the local copy, or "" if there is none.
func (f *File) LocalPath() string { return f.localPath }

// Size returns the file size in bytes.
func (f *File) Size() int64 { return f.size }

// CreationTime returns the file creation time in UTC.
func (f *File) CreationTime() time.Time { return f.creationTime }

// IsOnLocal reports whether a local copy of the file exists.
func (f *File) IsOnLocal() bool { return f.localPath != "" }

// IsOnRemote reports whether the file exists on the file server.
func (f *File) IsOnRemote() bool { return f.onRemote }

// RemoteUID returns the owning user on the file server, if known.
func (f *File) RemoteUID() string { return f.remoteUID }

// RemoteGID returns the owning group on the file server, if known.
func (f *File) RemoteGID() string { return f.remoteGID }

// RemotePerm returns the file permissions on the file server, if known.
func (f *File) RemotePerm() string { return f.remotePerm }

// ChecksumAlgorithm returns the algorithm of the cached checksum, or "".
func (f *File) ChecksumAlgorithm() string { return f.checksumAlgorithm }

// RemoteAccessPath returns the full path of the file on the file server,
// or the zero value if the file is not on the server.
func (f *File) RemoteAccessPath(sourceFolder model.RemotePath) model.RemotePath {
	if !f.onRemote {
		return model.RemotePath{}
	}
	return sourceFolder.Join(f.remotePath.String())
}

// Checksum returns the file checksum for the given algorithm.
//
// The digest is computed from the local copy on first use and cached;
// a different algorithm triggers a recomputation. For a remote-only file the
// recorded checksum is returned if its algorithm matches, otherwise an error
// since there is no local data to hash.
func (f *File) Checksum(algorithm string) (string, error) {
	if f.checksum != "" && f.checksumAlgorithm == algorithm {
		return f.checksum, nil
	}
	if f.localPath == "" {
		if f.checksum != "" {
			return "", fmt.Errorf(
				"file %s has a checksum with algorithm %q, cannot compute %q without a local copy",
				f.remotePath, f.checksumAlgorithm, algorithm)
		}
		return "", fmt.Errorf("cannot compute checksum of %s: file has no local copy", f.remotePath)
	}
	chk, err := ChecksumOfFile(f.localPath, algorithm)
	if err != nil {
		return "", err
	}
	f.checksum = chk
	f.checksumAlgorithm = algorithm
	return chk, nil
}

// Uploaded returns a new File in local+remote state with metadata reported by
// the file server. The receiver is not modified.
func (f *File) Uploaded(info RemoteInfo) *File {
	up := *f
	up.onRemote = true
	up.remoteUID = info.UID
	up.remoteGID = info.GID
	up.remotePerm = info.Perm
	if info.Size > 0 {
		up.size = info.Size
	}
	if !info.CreationTime.IsZero() {
		up.creationTime = info.CreationTime
	}
	return &up
}

// Downloaded returns a new File in local+remote state with the given local
// path. The receiver is not modified.
func (f *File) Downloaded(localPath string) *File {
	down := *f
	down.localPath = localPath
	return &down
}

// SameFile reports whether two File objects refer to the same file for merge
// purposes: matching remote paths when both have one, matching local paths
// otherwise.
func (f *File) SameFile(other *File) bool {
	if f.onRemote && other.onRemote {
		return f.remotePath == other.remotePath
	}
	if f.localPath != "" && other.localPath != "" {
		return f.localPath == other.localPath
	}
	return f.remotePath == other.remotePath
}

// ValidateLocal checks the local copy against the recorded checksum, falling
// back to a size comparison when no checksum or algorithm is known.
func (f *File) ValidateLocal() error {
	if f.localPath == "" {
		return fmt.Errorf("file %s has no local copy to validate", f.remotePath)
	}
	if f.checksum == "" || f.checksumAlgorithm == "" {
		st, err := os.Stat(f.localPath)
		if err != nil {
			return err
		}
		if st.Size() != f.size {
			return &IntegrityError{
				Path:   f.localPath,
				Reason: fmt.Sprintf("size %dB does not match size stored in dataset (%dB)", st.Size(), f.size),
			}
		}
		return nil
	}
	actual, err := ChecksumOfFile(f.localPath, f.checksumAlgorithm)
	if err != nil {
		return err
	}
	if actual != f.checksum {
		return &IntegrityError{
			Path: f.localPath,
			Reason: fmt.Sprintf("checksum %s does not match checksum stored in dataset (%s), using algorithm %q",
				actual, f.checksum, f.checksumAlgorithm),
		}
	}
	return nil
}

// MakeUploadModel builds the datablock entry for this file, computing the
// checksum with the given algorithm if the file has a local copy.
func (f *File) MakeUploadModel(algorithm string) (model.UploadDataFile, error) {
	m := model.UploadDataFile{
		Path: f.remotePath.String(),
		Size: f.size,
		Time: f.creationTime,
		UID:  f.remoteUID,
		GID:  f.remoteGID,
		Perm: f.remotePerm,
	}
	if err := model.ValidateSize("size", m.Size); err != nil {
		return model.UploadDataFile{}, err
	}
	if f.localPath != "" && algorithm != "" {
		chk, err := f.Checksum(algorithm)
		if err != nil {
			return model.UploadDataFile{}, err
		}
		m.Chk = chk
	} else if f.checksumAlgorithm == algorithm {
		m.Chk = f.checksum
	}
	return m, nil
}
