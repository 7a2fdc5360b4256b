package blobstore

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// ThrottledReader wraps an io.Reader and limits read throughput with a token
// bucket. It is used to keep snapshot uploads from saturating shared links.
type ThrottledReader struct {
	ctx     context.Context
	r       io.Reader
	limiter *rate.Limiter
}

// NewThrottledReader limits reads from r to bytesPerSec. The context bounds
// the time spent waiting for tokens.
func NewThrottledReader(ctx context.Context, r io.Reader, bytesPerSec int64) *ThrottledReader {
	return &ThrottledReader{
		ctx:     ctx,
		r:       r,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSec), int(bytesPerSec)),
	}
}

// Read implements io.Reader.
func (t *ThrottledReader) Read(p []byte) (int, error) {
	// Never request more tokens than the bucket can hold.
	if burst := t.limiter.Burst(); len(p) > burst {
		p = p[:burst]
	}

	n, err := t.r.Read(p)
	if n > 0 {
		if werr := t.limiter.WaitN(t.ctx, n); werr != nil {
			return n, werr
		}
	}
	return n, err
}

// UploadOptions contains options for Upload.
type UploadOptions struct {
	// BytesPerSec limits upload throughput. 0 means unlimited.
	BytesPerSec int64
}

// Upload copies r into a new blob. The blob is published atomically on success.
func Upload(ctx context.Context, store Store, name string, r io.Reader, optFns ...func(o *UploadOptions)) error {
	var opts UploadOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.BytesPerSec > 0 {
		r = NewThrottledReader(ctx, r, opts.BytesPerSec)
	}

	w, err := store.Create(ctx, name)
	if err != nil {
		return err
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Abort()
		return err
	}

	return w.Close()
}
