package utils

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

func TestDecompressPayload(t *testing.T) {
	content := []byte("070701 payload content for every compressor\n")

	compressors := map[string]func(io.Writer) (io.WriteCloser, error){
		"gzip": func(w io.Writer) (io.WriteCloser, error) {
			return gzip.NewWriter(w), nil
		},
		"zstd": func(w io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(w)
		},
		"xz": func(w io.Writer) (io.WriteCloser, error) {
			return xz.NewWriter(w)
		},
		"lzma": func(w io.Writer) (io.WriteCloser, error) {
			return lzma.NewWriter(w)
		},
	}

	for name, newWriter := range compressors {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			w, err := newWriter(&buf)
			if err != nil {
				t.Fatalf("Failed to create %s writer: %v", name, err)
			}
			if _, err := w.Write(content); err != nil {
				t.Fatalf("Failed to compress: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Failed to close writer: %v", err)
			}

			r, closeFn, err := DecompressPayload(name, &buf)
			if err != nil {
				t.Fatalf("DecompressPayload failed: %v", err)
			}
			defer closeFn()

			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("Failed to decompress: %v", err)
			}
			if !bytes.Equal(got, content) {
				t.Errorf("Expected %q, got %q", content, got)
			}
		})
	}
}

func TestDecompressPayloadPassthrough(t *testing.T) {
	r, closeFn, err := DecompressPayload("", bytes.NewReader([]byte("raw")))
	if err != nil {
		t.Fatalf("DecompressPayload failed: %v", err)
	}
	defer closeFn()

	got, _ := io.ReadAll(r)
	if string(got) != "raw" {
		t.Errorf("Expected raw, got %q", got)
	}
}

func TestDecompressPayloadUnsupported(t *testing.T) {
	if _, _, err := DecompressPayload("bzip2", bytes.NewReader(nil)); err == nil {
		t.Error("Expected error for unsupported compressor")
	}
}
