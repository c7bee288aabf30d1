// Package storage persists uploaded evidence media. Two backends are
// provided: a local filesystem store served under /uploads, and an S3 store
// for deployments where cameras and the API server do not share a disk.
package storage

import (
	"context"
	"io"
)

// EvidenceStore saves evidence files and returns the path recorded on the
// violation. For the filesystem backend this is a server-relative path
// (uploads/<name>); for S3 it is an s3:// URL.
type EvidenceStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}
