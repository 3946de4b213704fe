package signer

import (
	"bytes"
	"crypto"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

// GPGSigner signs packages with an OpenPGP private key
type GPGSigner struct {
	entity *openpgp.Entity
}

// NewGPGSigner loads the first private key of an armored or binary key file
// and unlocks it with passphrase
func NewGPGSigner(keyPath, passphrase string) (*GPGSigner, error) {
	if keyPath == "" {
		return nil, errors.New("key path is empty")
	}

	data, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open key file: %w", err)
	}

	entity, err := readPrivateKey(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", keyPath, err)
	}
	if err := unlock(entity, []byte(passphrase)); err != nil {
		return nil, fmt.Errorf("%s: %w", keyPath, err)
	}

	return &GPGSigner{entity: entity}, nil
}

func readPrivateKey(data []byte) (*openpgp.Entity, error) {
	entities, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		entities, err = openpgp.ReadKeyRing(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}

	for _, entity := range entities {
		if entity.PrivateKey != nil {
			return entity, nil
		}
	}
	return nil, errors.New("key file does not contain a private key")
}

// unlock decrypts the primary key and every subkey
func unlock(entity *openpgp.Entity, passphrase []byte) error {
	keys := []*packet.PrivateKey{entity.PrivateKey}
	for _, subkey := range entity.Subkeys {
		if subkey.PrivateKey != nil {
			keys = append(keys, subkey.PrivateKey)
		}
	}

	for _, key := range keys {
		if !key.Encrypted {
			continue
		}
		if len(passphrase) == 0 {
			return errors.New("private key is encrypted but no passphrase provided")
		}
		if err := key.Decrypt(passphrase); err != nil {
			return fmt.Errorf("failed to decrypt private key: %w", err)
		}
	}
	return nil
}

// KeyID returns the hexadecimal ID of the signing key
func (s *GPGSigner) KeyID() string {
	return fmt.Sprintf("%016X", s.entity.PrimaryKey.KeyId)
}

// Sign writes an armored detached SHA-512 signature of message to w
func (s *GPGSigner) Sign(w io.Writer, message io.Reader) error {
	err := openpgp.ArmoredDetachSign(w, s.entity, message, &packet.Config{
		DefaultHash: crypto.SHA512,
	})
	if err != nil {
		return fmt.Errorf("failed to create detached signature: %w", err)
	}
	return nil
}

// PublicKey returns the public key in armored format
func (s *GPGSigner) PublicKey() ([]byte, error) {
	var buf bytes.Buffer

	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	if err != nil {
		return nil, err
	}
	if err := s.entity.Serialize(w); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
