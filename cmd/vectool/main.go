// Command vectool inspects, converts and archives vector documents.
//
//	vectool inspect a.vec
//	vectool dot a.vec b.vec
//	vectool convert --to zstd a.vec a.zst
//	vectool --config vectool.yaml put embeddings/a a.vec
//	vectool --config vectool.yaml list embeddings/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
