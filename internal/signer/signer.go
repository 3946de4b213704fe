package signer

import (
	"fmt"
	"io"
	"os"
)

// SignatureExtension is appended to a package path for its detached signature
const SignatureExtension = ".asc"

// Signer produces detached signatures of built packages
type Signer interface {
	// Sign writes an armored detached signature of message to w
	Sign(w io.Writer, message io.Reader) error

	// PublicKey returns the armored public key that verifies the signatures
	PublicKey() ([]byte, error)
}

// SignFile streams the file at path through s and writes the signature to
// path + SignatureExtension, which it returns
func SignFile(s Signer, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sigPath := path + SignatureExtension
	out, err := os.OpenFile(sigPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", sigPath, err)
	}

	if err := s.Sign(out, f); err != nil {
		out.Close()
		os.Remove(sigPath)
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", sigPath, err)
	}
	return sigPath, nil
}
