package scanner

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrInvalidAsar is returned for archives whose header is inconsistent
var ErrInvalidAsar = errors.New("invalid asar archive")

// asarEntry is one node of the JSON header of an asar archive
type asarEntry struct {
	Files    map[string]*asarEntry `json:"files"`
	Size     int64                 `json:"size"`
	Offset   string                `json:"offset"`
	Unpacked bool                  `json:"unpacked"`
}

// ReadAsarFile extracts the file at name (slash separated) from an asar
// archive. Files marked as unpacked are read from the ".unpacked" directory
// next to the archive.
func ReadAsarFile(archive, name string) ([]byte, error) {
	f, err := os.Open(archive)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	archiveSize := info.Size()

	// Header layout: uint32 4, uint32 header pickle size, then the pickle:
	// uint32 payload size, uint32 JSON length, JSON string.
	var sizes [4]uint32
	if err := binary.Read(f, binary.LittleEndian, &sizes); err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %v", ErrInvalidAsar, err)
	}
	if sizes[0] != 4 {
		return nil, fmt.Errorf("not an asar archive: %s", archive)
	}

	// The JSON string lives inside the header pickle, which lives in the file
	base := int64(8) + int64(sizes[1])
	if base > archiveSize || int64(sizes[3]) > int64(sizes[1]) {
		return nil, fmt.Errorf("%w: header of %s exceeds the archive", ErrInvalidAsar, archive)
	}

	headerJSON := make([]byte, sizes[3])
	if _, err := io.ReadFull(f, headerJSON); err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %v", ErrInvalidAsar, err)
	}

	var root asarEntry
	if err := json.Unmarshal(headerJSON, &root); err != nil {
		return nil, fmt.Errorf("%w: failed to parse header: %v", ErrInvalidAsar, err)
	}

	entry := &root
	for _, part := range strings.Split(strings.Trim(name, "/"), "/") {
		if entry.Files == nil || entry.Files[part] == nil {
			return nil, fmt.Errorf("%s: %w", name, os.ErrNotExist)
		}
		entry = entry.Files[part]
	}
	if entry.Files != nil {
		return nil, fmt.Errorf("%s is a directory", name)
	}

	if entry.Unpacked {
		return os.ReadFile(filepath.Join(archive+".unpacked", filepath.FromSlash(name)))
	}

	offset, err := strconv.ParseInt(entry.Offset, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid offset for %s: %v", ErrInvalidAsar, name, err)
	}
	if entry.Size < 0 || offset < 0 || entry.Size > archiveSize-base || offset > archiveSize-base-entry.Size {
		return nil, fmt.Errorf("%w: %s (offset %d, size %d) is outside the archive", ErrInvalidAsar, name, offset, entry.Size)
	}

	data := make([]byte, entry.Size)
	if _, err := f.ReadAt(data, base+offset); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}
