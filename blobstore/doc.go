// Package blobstore provides the storage abstraction behind vector archives.
//
// BlobStore is the interface for reading and writing named data blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and ephemeral archives
//   - LocalStore: local filesystem with mmap reads and atomic renames
//   - CachingStore: LRU block cache in front of any other store
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Create(ctx, name) (WritableBlob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Missing blobs must satisfy errors.Is(err, ErrNotFound).
package blobstore
