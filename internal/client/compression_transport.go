package client

import (
	"compress/gzip"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

const acceptEncoding = "gzip, br, zstd"

// decoders maps a content coding to a function that wraps a body in its decoder.
var decoders = map[string]func(io.Reader) (io.ReadCloser, error){
	"gzip": func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	},
	"br": func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(r)), nil
	},
	"zstd": func(r io.Reader) (io.ReadCloser, error) {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	},
}

// compressionTransport advertises gzip, brotli and zstd support and
// transparently decodes compressed response bodies.
type compressionTransport struct {
	next http.RoundTripper
}

func newCompressionTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &compressionTransport{next: next}
}

func (t *compressionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request
	if req.Header.Get("Accept-Encoding") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	codings := parseContentEncoding(resp.Header.Get("Content-Encoding"))
	if len(codings) == 0 {
		return resp, nil
	}
	for _, coding := range codings {
		if _, ok := decoders[coding]; !ok {
			// Unknown coding anywhere in the chain, hand the body over untouched
			return resp, nil
		}
	}

	body := &layeredBody{layers: []io.Closer{resp.Body}}
	var reader io.Reader = resp.Body
	// Codings are listed in the order they were applied, undo them in reverse
	for i := len(codings) - 1; i >= 0; i-- {
		rc, err := decoders[codings[i]](reader)
		if err != nil {
			_ = body.Close()
			return nil, err
		}
		body.layers = append(body.layers, rc)
		reader = rc
	}
	body.reader = reader

	resp.Body = body
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true

	return resp, nil
}

// layeredBody reads from the outermost decoder and closes every layer.
type layeredBody struct {
	reader io.Reader
	layers []io.Closer
}

func (b *layeredBody) Read(p []byte) (int, error) {
	return b.reader.Read(p)
}

func (b *layeredBody) Close() error {
	var errs []error
	for i := len(b.layers) - 1; i >= 0; i-- {
		if err := b.layers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// parseContentEncoding splits a Content-Encoding header into lower-cased codings,
// dropping "identity" and empty entries.
func parseContentEncoding(header string) []string {
	var codings []string
	for _, part := range strings.Split(header, ",") {
		coding := strings.ToLower(strings.TrimSpace(part))
		if coding == "" || coding == "identity" {
			continue
		}
		codings = append(codings, coding)
	}
	return codings
}
