package common

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Version is set via ldflags at build time: -ldflags "-X github.com/mhmt/navgen/internal/codegen/common.Version=x.y.z"
var Version = ""

const (
	generatedMarker = "// Code generated by navgen"
	checksumPrefix  = "// checksum: blake2b-256:"
)

// ErrNoChecksum is returned by SplitStamped for files without a navgen header.
var ErrNoChecksum = errors.New("no navgen checksum header")

// GetVersion returns the version recorded in generated file headers.
// Returns "0.0.1-dev" if Version is empty (development builds only).
func GetVersion() (string, error) {
	if Version == "" {
		return "0.0.1-dev", nil
	}

	version := strings.TrimPrefix(Version, "v")
	baseVersion := strings.SplitN(version, "-", 2)[0]
	if !strings.Contains(baseVersion, ".") {
		return "", fmt.Errorf("invalid version format: %s (expected x.y.z)", Version)
	}
	return version, nil
}

// Checksum returns the hex blake2b-256 digest of body.
func Checksum(body []byte) string {
	sum := blake2b.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// Stamp prefixes body with the generated-code marker and its checksum.
func Stamp(body []byte) ([]byte, error) {
	version, err := GetVersion()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %s. DO NOT EDIT.\n", generatedMarker, version)
	fmt.Fprintf(&buf, "%s%s\n", checksumPrefix, Checksum(body))
	buf.Write(body)
	return buf.Bytes(), nil
}

// SplitStamped separates a stamped file into the recorded checksum and the
// body that follows the header.
func SplitStamped(content []byte) (recorded string, body []byte, err error) {
	first, rest, ok := bytes.Cut(content, []byte("\n"))
	if !ok || !bytes.HasPrefix(first, []byte(generatedMarker)) {
		return "", nil, ErrNoChecksum
	}
	second, body, ok := bytes.Cut(rest, []byte("\n"))
	if !ok || !bytes.HasPrefix(second, []byte(checksumPrefix)) {
		return "", nil, ErrNoChecksum
	}
	return string(bytes.TrimPrefix(second, []byte(checksumPrefix))), body, nil
}

// Intact reports whether the body of a stamped file still matches its
// recorded checksum.
func Intact(content []byte) (bool, error) {
	recorded, body, err := SplitStamped(content)
	if err != nil {
		return false, err
	}
	return recorded == Checksum(body), nil
}
