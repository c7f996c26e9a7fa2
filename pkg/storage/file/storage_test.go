// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-cipher.
//
// go-cipher is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package file

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jeremyhahn/go-cipher/pkg/storage"
)

func TestNew(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("New(\"\") succeeded, want error")
	}

	dir := filepath.Join(t.TempDir(), "nested", "keys")
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("root directory was not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0700 {
		t.Errorf("root directory permissions = %o, want 0700", perm)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	// Keys with separators and metadata characters must be escaped, not
	// treated as paths.
	key := "secret:backup:aes:gcm:nopadding"
	value := []byte("key material")
	if err := s.Put(key, value); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	got, err := s.Get(key)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !bytes.Equal(got, value) {
		t.Errorf("Get() = %q, want %q", got, value)
	}

	exists, err := s.Exists(key)
	if err != nil || !exists {
		t.Errorf("Exists() = %v, %v, want true, nil", exists, err)
	}
	exists, err = s.Exists("missing")
	if err != nil || exists {
		t.Errorf("Exists(\"missing\") = %v, %v, want false, nil", exists, err)
	}
}

func TestFilePermissions(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Put("key", []byte("sensitive")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("found %d files, want 1", len(entries))
	}
	info, err := entries[0].Info()
	if err != nil {
		t.Fatalf("Info() failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("key file permissions = %o, want 0600", perm)
	}
}

func TestDelete(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Put("key", []byte("v")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := s.Delete("key"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := s.Get("key"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete("key"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestList(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	for _, key := range []string{"secret:b", "secret:a", "other:c"} {
		if err := s.Put(key, []byte("v")); err != nil {
			t.Fatalf("Put(%q) failed: %v", key, err)
		}
	}

	keys, err := s.List("secret:")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != "secret:a" || keys[1] != "secret:b" {
		t.Errorf("List(\"secret:\") = %v, want sorted [secret:a secret:b]", keys)
	}
}

func TestPersistence(t *testing.T) {
	dir := t.TempDir()

	s1, err := New(dir)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := s1.Put("durable", []byte("survives reopen")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	s2, err := New(dir)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = s2.Close() }()
	value, err := s2.Get("durable")
	if err != nil {
		t.Fatalf("Get() after reopen failed: %v", err)
	}
	if !bytes.Equal(value, []byte("survives reopen")) {
		t.Errorf("Get() = %q, want %q", value, "survives reopen")
	}
}

func TestClosed(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := s.Put("key", []byte("v")); !errors.Is(err, storage.ErrClosed) {
		t.Errorf("Put() after Close error = %v, want ErrClosed", err)
	}
	if _, err := s.Get("key"); !errors.Is(err, storage.ErrClosed) {
		t.Errorf("Get() after Close error = %v, want ErrClosed", err)
	}
}

func TestEmptyKey(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Put("", []byte("v")); !errors.Is(err, storage.ErrInvalidKey) {
		t.Errorf("Put(\"\") error = %v, want ErrInvalidKey", err)
	}
}
