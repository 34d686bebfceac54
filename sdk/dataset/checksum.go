// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
)

// DefaultChecksumAlgorithm is used when a dataset does not specify one.
const DefaultChecksumAlgorithm = "blake2b"

// NewHash returns a hash for one of the supported checksum algorithms.
func NewHash(algorithm string) (hash.Hash, error) {
	switch algorithm {
	case "md5":
		return md5.New(), nil
	case "sha1":
		return sha1.New(), nil
	case "sha256":
		return sha256.New(), nil
	case "sha512":
		return sha512.New(), nil
	case "blake2b":
		h, err := blake2b.New512(nil)
		if err != nil {
			return nil, err
		}
		return h, nil
	}
	return nil, &model.ValidationError{
		Field:  "checksum_algorithm",
		Reason: fmt.Sprintf("checksum algorithm not recognized: %q", algorithm),
	}
}

// ChecksumOfFile computes the hex digest of a local file.
func ChecksumOfFile(path, algorithm string) (string, error) {
	h, err := NewHash(algorithm)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, 128*1024)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// IntegrityError reports a downloaded file whose checksum or size does not
// match the value recorded in the dataset.
type IntegrityError struct {
	Path   string
	Reason string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity check of file %q failed: %s", e.Path, e.Reason)
}
