// Package blobstore abstracts the storage of snapshot blobs.
//
// The local and in-memory implementations live here; S3 and MinIO backends
// live in subpackages so their SDK dependencies stay out of the import graph
// of programs that do not need them.
//
// Blobs are immutable once written: Create stages the content and publishes
// it atomically on Close, so readers never observe a partially written
// snapshot.
package blobstore
