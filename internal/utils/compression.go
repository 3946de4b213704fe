package utils

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// DecompressPayload wraps r in a decompressor for the given RPM payload
// compressor name (the PAYLOADCOMPRESSOR header tag). The returned close
// function releases decoder resources.
func DecompressPayload(compressor string, r io.Reader) (io.Reader, func(), error) {
	noop := func() {}

	switch compressor {
	case "", "none", "identity":
		return r, noop, nil
	case "gzip":
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, noop, err
		}
		return gr, func() { gr.Close() }, nil
	case "zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, noop, err
		}
		return zr, zr.Close, nil
	case "xz":
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, noop, err
		}
		return xr, noop, nil
	case "lzma":
		lr, err := lzma.NewReader(r)
		if err != nil {
			return nil, noop, err
		}
		return lr, noop, nil
	default:
		return nil, noop, fmt.Errorf("unsupported payload compressor %q", compressor)
	}
}
