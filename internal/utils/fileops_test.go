package utils

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCopyDir(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src")
	dst := filepath.Join(tmpDir, "dst")

	// Setup bundle-like tree with an executable and a symlink
	os.MkdirAll(filepath.Join(src, "resources"), 0755)
	os.WriteFile(filepath.Join(src, "footest"), []byte("#!/bin/sh\n"), 0755)
	os.WriteFile(filepath.Join(src, "resources", "app.asar"), []byte("asar"), 0644)
	if err := os.Symlink("footest", filepath.Join(src, "link")); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	if err := CopyDir(src, dst); err != nil {
		t.Fatalf("CopyDir failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(dst, "footest"))
	if err != nil {
		t.Fatalf("Executable was not copied: %v", err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("Expected mode 0755, got %v", info.Mode().Perm())
	}

	data, err := os.ReadFile(filepath.Join(dst, "resources", "app.asar"))
	if err != nil || string(data) != "asar" {
		t.Errorf("Nested file was not copied: %v", err)
	}

	link, err := os.Readlink(filepath.Join(dst, "link"))
	if err != nil {
		t.Fatalf("Symlink was not recreated: %v", err)
	}
	if link != "footest" {
		t.Errorf("Expected link to footest, got %s", link)
	}
}

func TestMoveFile(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "RPMS", "x86_64", "footest-1.0.0-1.x86_64.rpm")
	dst := filepath.Join(tmpDir, "out", "footest.rpm")

	os.MkdirAll(filepath.Dir(src), 0755)
	os.WriteFile(src, []byte("rpm"), 0644)

	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile failed: %v", err)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("Source file should be gone after move")
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "rpm" {
		t.Errorf("Destination file missing or wrong: %v", err)
	}
}

func TestDigestReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	os.WriteFile(path, []byte("hello\n"), 0644)

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()

	sums, err := NewDigestReader(f).Digest()
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	if sums.Size != 6 {
		t.Errorf("Expected size 6, got %d", sums.Size)
	}
	if sums.SHA256 != "5891b5b522d5df086d0ff0b110fbd9d21bb4fc7163af34d08286a2e846f6be03" {
		t.Errorf("Unexpected SHA256: %s", sums.SHA256)
	}
}

func TestDigestReaderPartialRead(t *testing.T) {
	d := NewDigestReader(strings.NewReader("hello\n"))
	buf := make([]byte, 2)
	if _, err := io.ReadFull(d, buf); err != nil {
		t.Fatalf("read failed: %v", err)
	}

	sums, err := d.Digest()
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	if sums.Size != 6 {
		t.Errorf("Expected size 6, got %d", sums.Size)
	}
	if sums.SHA256 != "5891b5b522d5df086d0ff0b110fbd9d21bb4fc7163af34d08286a2e846f6be03" {
		t.Errorf("Unexpected SHA256: %s", sums.SHA256)
	}
}
