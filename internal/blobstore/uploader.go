package blobstore

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"
)

// File is one pending upload.
type File struct {
	Name   string
	Reader io.Reader
}

// UploadFailure records one file that did not make it.
type UploadFailure struct {
	Name string
	Err  error
}

// Uploader fans product image uploads out with bounded concurrency instead of
// one serialized request per file, and collects partial failures explicitly
// so the caller can tell the user which images were lost.
type Uploader struct {
	store       Store
	concurrency int
}

func NewUploader(store Store, concurrency int) *Uploader {
	if concurrency < 1 {
		concurrency = 4
	}
	return &Uploader{
		store:       store,
		concurrency: concurrency,
	}
}

// UploadAll uploads every file and returns the public URLs of the ones that
// succeeded, in input order, plus the failures. One bad file never aborts the
// batch.
func (u *Uploader) UploadAll(ctx context.Context, files []File) ([]string, []UploadFailure) {
	urls := make([]string, len(files))
	errs := make([]error, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(u.concurrency)

	for i, f := range files {
		g.Go(func() error {
			key := fmt.Sprintf("%d-%s", time.Now().UnixNano(), f.Name)
			url, err := u.store.Put(ctx, key, f.Reader)
			if err != nil {
				errs[i] = err
				return nil // record, don't cancel the rest
			}
			urls[i] = url
			return nil
		})
	}

	g.Wait()

	var (
		ok       []string
		failures []UploadFailure
	)
	for i, f := range files {
		if errs[i] != nil {
			failures = append(failures, UploadFailure{Name: f.Name, Err: errs[i]})
			continue
		}
		ok = append(ok, urls[i])
	}

	return ok, failures
}
