// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works with MinIO and other S3-compatible systems such as Ceph,
// SeaweedFS and Garage without pulling in the AWS SDK.
//
// # Basic Usage
//
//	store, err := minio.Connect("localhost:9000", "minioadmin", "minioadmin", false,
//	    "my-bucket", "vectors/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	arc, err := archive.New(store)
//
// Use NewStore to wrap a client built with custom minio.Options.
package minio
