package rpm

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ralt/rpmbundle/internal/models"
	"github.com/ralt/rpmbundle/internal/utils"
	"github.com/sassoftware/go-rpmutils"
	"github.com/sassoftware/go-rpmutils/cpio"
)

// scriptTags maps lifecycle hooks to their header tags
var scriptTags = map[string]int{
	"pre":    rpmutils.PREIN,
	"post":   rpmutils.POSTIN,
	"preun":  rpmutils.PREUN,
	"postun": rpmutils.POSTUN,
}

// PayloadFile is one entry of a package payload
type PayloadFile struct {
	Name string
	Size int64
	Mode int
}

// ParsePackage parses an RPM file and extracts metadata
func ParsePackage(path string) (*models.Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Read RPM header
	digest := utils.NewDigestReader(f)
	rpm, err := rpmutils.ReadRpm(digest)
	if err != nil {
		return nil, fmt.Errorf("failed to read RPM: %w", err)
	}

	// Extract metadata
	pkg := &models.Package{
		Name:              getStringTag(rpm, rpmutils.NAME),
		Version:           getStringTag(rpm, rpmutils.VERSION),
		Release:           getStringTag(rpm, rpmutils.RELEASE),
		Architecture:      getStringTag(rpm, rpmutils.ARCH),
		Summary:           getStringTag(rpm, rpmutils.SUMMARY),
		Description:       getStringTag(rpm, rpmutils.DESCRIPTION),
		Packager:          getStringTag(rpm, rpmutils.PACKAGER),
		Homepage:          getStringTag(rpm, rpmutils.URL),
		License:           getStringTag(rpm, rpmutils.LICENSE),
		Group:             getStringTag(rpm, rpmutils.GROUP),
		Requires:          getStringSliceTag(rpm, rpmutils.REQUIRENAME),
		BuildTime:         getIntTag(rpm, rpmutils.BUILDTIME),
		PayloadCompressor: getStringTag(rpm, rpmutils.PAYLOADCOMPRESSOR),
		Scripts:           make(map[string]string),
	}

	for hook, tag := range scriptTags {
		if body := getStringTag(rpm, tag); body != "" {
			pkg.Scripts[hook] = body
		}
	}

	// The payload is only hashed
	sums, err := digest.Digest()
	if err != nil {
		return nil, fmt.Errorf("failed to digest %s: %w", path, err)
	}
	pkg.Filename = path
	pkg.Size = sums.Size
	pkg.SHA256Sum = sums.SHA256
	pkg.SHA512Sum = sums.SHA512

	return pkg, nil
}

// ListPayload returns the files stored in the payload of an RPM file
func ListPayload(path string) ([]PayloadFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// The reader is left at the start of the payload
	rpm, err := rpmutils.ReadRpm(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read RPM: %w", err)
	}

	compressor := getStringTag(rpm, rpmutils.PAYLOADCOMPRESSOR)
	payload, closeFn, err := utils.DecompressPayload(compressor, f)
	if err != nil {
		return nil, fmt.Errorf("failed to open payload: %w", err)
	}
	defer closeFn()

	var files []PayloadFile
	archive := cpio.NewReader(payload)
	for {
		hdr, err := archive.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read payload: %w", err)
		}
		if hdr.Filename() == "TRAILER!!!" {
			break
		}

		files = append(files, PayloadFile{
			Name: strings.TrimPrefix(hdr.Filename(), "."),
			Size: int64(hdr.Filesize()),
			Mode: int(hdr.Mode()),
		})
	}
	return files, nil
}

// getStringTag safely gets a string tag from RPM
func getStringTag(rpm *rpmutils.Rpm, tag int) string {
	val, err := rpm.Header.Get(tag)
	if err != nil {
		return ""
	}

	// Handle different types that might be returned
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	default:
		// Try to convert to string using fmt
		return fmt.Sprintf("%v", v)
	}

	return ""
}

// getIntTag safely gets an integer tag from RPM
func getIntTag(rpm *rpmutils.Rpm, tag int) int64 {
	val, err := rpm.Header.Get(tag)
	if err != nil {
		return 0
	}
	switch v := val.(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case []int32:
		if len(v) > 0 {
			return int64(v[0])
		}
	case []uint32:
		if len(v) > 0 {
			return int64(v[0])
		}
	}
	return 0
}

// getStringSliceTag safely gets a string slice tag from RPM
func getStringSliceTag(rpm *rpmutils.Rpm, tag int) []string {
	val, err := rpm.Header.Get(tag)
	if err != nil {
		return nil
	}
	if slice, ok := val.([]string); ok {
		// Filter out empty strings
		var result []string
		for _, s := range slice {
			s = strings.TrimSpace(s)
			if s != "" {
				result = append(result, s)
			}
		}
		return result
	}
	return nil
}
