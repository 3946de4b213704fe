package utils

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"io"
)

// Digest holds the size and digests of a package file
type Digest struct {
	SHA256 string
	SHA512 string
	Size   int64
}

// DigestReader hashes everything read through it, so a package can be
// parsed and digested in one pass
type DigestReader struct {
	r      io.Reader
	sha256 hash.Hash
	sha512 hash.Hash
	n      int64
}

// NewDigestReader wraps r
func NewDigestReader(r io.Reader) *DigestReader {
	return &DigestReader{r: r, sha256: sha256.New(), sha512: sha512.New()}
}

func (d *DigestReader) Read(p []byte) (int, error) {
	n, err := d.r.Read(p)
	if n > 0 {
		d.sha256.Write(p[:n])
		d.sha512.Write(p[:n])
		d.n += int64(n)
	}
	return n, err
}

// Digest reads whatever is left of the underlying reader and returns the
// digest of all the data
func (d *DigestReader) Digest() (*Digest, error) {
	if _, err := io.Copy(io.Discard, d); err != nil {
		return nil, err
	}
	return &Digest{
		SHA256: hex.EncodeToString(d.sha256.Sum(nil)),
		SHA512: hex.EncodeToString(d.sha512.Sum(nil)),
		Size:   d.n,
	}, nil
}
