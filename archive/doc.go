// Package archive stores named vectors in a blobstore.BlobStore.
//
//	store := blobstore.NewLocalStore("./vectors")
//	arc, err := archive.New(store,
//	    archive.WithCodec(codec.Zstd{}),
//	    archive.WithCacheSize(1024),
//	)
//	if err != nil { ... }
//
//	err = arc.Put(ctx, "embeddings/doc-1", v)
//	v, err = arc.Get(ctx, "embeddings/doc-1")
//
// Every blob is a self-describing frame, so archives written with different
// codecs can be read by the same Archive. Stat reads only the frame header.
package archive
