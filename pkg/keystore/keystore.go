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

// Package keystore persists named symmetric keys through a storage.Backend.
// Each entry records the full cipher identity alongside the raw material,
// so a loaded key is immediately usable for encryption. Entries may be
// password-protected: the material is sealed with AES-256-GCM under an
// Argon2id-derived key, using the cipher core's own streaming interface.
package keystore

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jeremyhahn/go-cipher/pkg/logging"
	"github.com/jeremyhahn/go-cipher/pkg/storage"
	"github.com/jeremyhahn/go-cipher/pkg/symmetric"
	"github.com/jeremyhahn/go-cipher/pkg/types"
	"golang.org/x/crypto/argon2"
)

const (
	// Entry key prefix in the underlying storage.
	// Format: secret:<name>:<algorithm>:<mode>:<padding>
	entryPrefix = "secret:"

	// Blob layout: [version(1)][flags(1)][uuid(16)][payload]
	// Protected payload: [salt(32)][nonce(12)][ciphertext+tag]
	blobVersion   = 1
	flagProtected = 0x01
	blobHeaderLen = 2 + 16
	sealSaltLen   = 32
	sealNonceLen  = 12
	sealTagLen    = 16
	sealedMinLen  = sealSaltLen + sealNonceLen + sealTagLen
)

// Argon2id parameters for password-derived sealing keys:
// time=1, memory=64MB, threads=4, keyLen=32 (AES-256).
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// Entry describes a stored key without exposing its material.
type Entry struct {
	// ID is the UUID assigned when the entry was first stored.
	ID string

	// Name is the caller-chosen key name, unique within the store.
	Name string

	// Algorithm, Mode and Padding form the cipher identity the key was
	// created with.
	Algorithm types.Algorithm
	Mode      types.Mode
	Padding   types.Padding

	// KeySize is the key size in bits.
	KeySize int

	// Protected reports whether the material is password-sealed.
	Protected bool
}

// Config contains configuration for the keystore.
type Config struct {
	// Storage is the underlying storage for key entries. Required.
	Storage storage.Backend

	// Logger receives operational logging. Defaults to a quiet logger.
	Logger *logging.Logger
}

// Validate checks if the Config is valid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	if c.Storage == nil {
		return fmt.Errorf("Storage is required")
	}
	return nil
}

// Store manages named symmetric keys over a storage backend.
// Thread-safe: guarded by a read-write mutex.
type Store struct {
	storage storage.Backend
	logger  *logging.Logger
	mu      sync.RWMutex
	closed  bool
}

// New creates a keystore with the given configuration.
func New(config *Config) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger := config.Logger
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	return &Store{storage: config.Storage, logger: logger}, nil
}

// Generate creates a new random key under the given name and stores it.
// bits selects the key size; 0 picks the algorithm default (AES-256,
// DES-64, TripleDES-192, RC4-128). A non-empty password seals the stored
// material. Returns the ready-to-use key; the caller owns it and must
// close it.
func (s *Store) Generate(name string, alg types.Algorithm, mode types.Mode, padding types.Padding, bits int, password []byte) (*symmetric.Key, error) {
	if bits == 0 {
		bits = defaultKeySize(alg)
	}
	if bits <= 0 || bits%8 != 0 {
		return nil, fmt.Errorf("%w: invalid key size %d bits", symmetric.ErrInvalidArgument, bits)
	}
	material := make([]byte, bits/8)
	if _, err := rand.Read(material); err != nil {
		return nil, fmt.Errorf("failed to generate random key: %w", err)
	}
	return s.Save(name, alg, mode, padding, material, password)
}

// Save stores existing key material under the given name and returns the
// usable key. The cipher identity is validated before anything is written.
func (s *Store) Save(name string, alg types.Algorithm, mode types.Mode, padding types.Padding, material, password []byte) (*symmetric.Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	// Reject unsupported configurations before touching storage.
	key, err := symmetric.NewKey(nil, alg, mode, padding, material)
	if err != nil {
		return nil, err
	}

	if existing, err := s.findEntryID(name); err != nil {
		_ = key.Close()
		return nil, err
	} else if existing != "" {
		_ = key.Close()
		return nil, fmt.Errorf("%w: %s", ErrKeyExists, name)
	}

	blob, err := encodeBlob(uuid.New(), material, password)
	if err != nil {
		_ = key.Close()
		return nil, err
	}

	id := entryID(name, alg, mode, padding)
	if err := s.storage.Put(id, blob); err != nil {
		_ = key.Close()
		return nil, fmt.Errorf("failed to save key: %w", err)
	}

	s.logger.Debug("keystore: saved key", "name", name, "cipher", key.Descriptor().String())
	return key, nil
}

// Load retrieves a stored key by name. password must match the one used at
// save time for protected entries and must be empty for unprotected ones.
func (s *Store) Load(name string, password []byte) (*symmetric.Key, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, blob, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	material, err := decodeMaterial(blob, password)
	if err != nil {
		return nil, err
	}
	return symmetric.NewKey(nil, entry.Algorithm, entry.Mode, entry.Padding, material)
}

// Info returns the metadata for a stored key.
func (s *Store) Info(name string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, _, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns metadata for all stored keys.
func (s *Store) List() ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	ids, err := s.storage.List(entryPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	entries := make([]*Entry, 0, len(ids))
	for _, id := range ids {
		entry, err := s.entryFromID(id)
		if err != nil {
			// Skip foreign or corrupt entries rather than failing the
			// whole listing.
			s.logger.Debug("keystore: skipping unparseable entry", "id", id)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Delete removes a stored key by name.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if err := validateName(name); err != nil {
		return err
	}
	id, err := s.findEntryID(name)
	if err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, name)
	}
	if err := s.storage.Delete(id); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}
	return nil
}

// Close releases the underlying storage. Safe to call multiple times.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.storage.Close()
}

// lookup finds the entry and raw blob for a name. Caller holds the lock.
func (s *Store) lookup(name string) (*Entry, []byte, error) {
	if s.closed {
		return nil, nil, ErrStoreClosed
	}
	if err := validateName(name); err != nil {
		return nil, nil, err
	}
	id, err := s.findEntryID(name)
	if err != nil {
		return nil, nil, err
	}
	if id == "" {
		return nil, nil, fmt.Errorf("%w: %s", ErrKeyNotFound, name)
	}
	blob, err := s.storage.Get(id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve key: %w", err)
	}
	entry, err := s.entryFromID(id)
	if err != nil {
		return nil, nil, err
	}
	if len(blob) < blobHeaderLen || blob[0] != blobVersion {
		return nil, nil, ErrCorruptEntry
	}
	entry.Protected = blob[1]&flagProtected != 0
	entry.ID = uuid.Must(uuid.FromBytes(blob[2:18])).String()
	if entry.Protected {
		entry.KeySize = (len(blob) - blobHeaderLen - sealedMinLen) * 8
	} else {
		entry.KeySize = (len(blob) - blobHeaderLen) * 8
	}
	return entry, blob, nil
}

// findEntryID scans for the storage ID carrying the given name. Returns ""
// when no entry matches.
func (s *Store) findEntryID(name string) (string, error) {
	ids, err := s.storage.List(entryPrefix + name + ":")
	if err != nil {
		return "", fmt.Errorf("failed to list keys: %w", err)
	}
	for _, id := range ids {
		if entry, err := s.entryFromID(id); err == nil && entry.Name == name {
			return id, nil
		}
	}
	return "", nil
}

// entryID builds the storage ID for an entry.
// Format: secret:<name>:<algorithm>:<mode>:<padding>
func entryID(name string, alg types.Algorithm, mode types.Mode, padding types.Padding) string {
	return fmt.Sprintf("%s%s:%s:%s:%s", entryPrefix, name, alg.Lower(), mode.Lower(), padding.Lower())
}

// entryFromID parses a storage ID back into entry metadata.
func (s *Store) entryFromID(id string) (*Entry, error) {
	rest, ok := strings.CutPrefix(id, entryPrefix)
	if !ok {
		return nil, ErrCorruptEntry
	}
	parts := strings.Split(rest, ":")
	if len(parts) != 4 {
		return nil, ErrCorruptEntry
	}
	alg := types.ParseAlgorithm(parts[1])
	mode := types.ParseMode(parts[2])
	padding := types.ParsePadding(parts[3])
	if parts[0] == "" || alg == "" || mode == "" || padding == "" {
		return nil, ErrCorruptEntry
	}
	return &Entry{Name: parts[0], Algorithm: alg, Mode: mode, Padding: padding}, nil
}

func validateName(name string) error {
	if name == "" || strings.Contains(name, ":") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// defaultKeySize returns the default key size in bits for an algorithm.
func defaultKeySize(alg types.Algorithm) int {
	switch alg {
	case types.AlgorithmDES:
		return 64
	case types.AlgorithmTripleDES:
		return 192
	case types.AlgorithmRC4:
		return 128
	default:
		return 256
	}
}

// encodeBlob serializes key material, sealing it when a password is given.
func encodeBlob(id uuid.UUID, material, password []byte) ([]byte, error) {
	flags := byte(0)
	payload := material
	if len(password) > 0 {
		sealed, err := sealMaterial(material, password)
		if err != nil {
			return nil, err
		}
		flags |= flagProtected
		payload = sealed
	}
	blob := make([]byte, 0, blobHeaderLen+len(payload))
	blob = append(blob, blobVersion, flags)
	blob = append(blob, id[:]...)
	blob = append(blob, payload...)
	return blob, nil
}

// decodeMaterial extracts key material from a stored blob, unsealing it
// when the entry is password-protected.
func decodeMaterial(blob, password []byte) ([]byte, error) {
	if len(blob) < blobHeaderLen || blob[0] != blobVersion {
		return nil, ErrCorruptEntry
	}
	payload := blob[blobHeaderLen:]
	if blob[1]&flagProtected == 0 {
		return payload, nil
	}
	if len(password) == 0 {
		return nil, ErrInvalidPassword
	}
	return openMaterial(payload, password)
}

// sealMaterial encrypts key material with AES-256-GCM under an
// Argon2id-derived key, via the cipher core's streaming interface.
// Output: [salt(32)][nonce(12)][ciphertext+tag]
func sealMaterial(material, password []byte) ([]byte, error) {
	salt := make([]byte, sealSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	nonce := make([]byte, sealNonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	derived := argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	key, err := symmetric.NewKey(nil, types.AlgorithmAES, types.ModeGCM, types.PaddingNone, derived)
	if err != nil {
		return nil, fmt.Errorf("failed to create sealing key: %w", err)
	}
	defer func() { _ = key.Close() }()

	enc, err := key.NewEncrypter(nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to create sealer: %w", err)
	}
	sealed, err := enc.Finalize(material)
	if err != nil {
		return nil, fmt.Errorf("failed to seal key material: %w", err)
	}

	out := make([]byte, 0, len(salt)+len(nonce)+len(sealed))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, sealed...)
	return out, nil
}

// openMaterial reverses sealMaterial. A failed tag check maps to
// ErrInvalidPassword.
func openMaterial(payload, password []byte) ([]byte, error) {
	if len(payload) < sealedMinLen {
		return nil, ErrCorruptEntry
	}
	salt := payload[:sealSaltLen]
	nonce := payload[sealSaltLen : sealSaltLen+sealNonceLen]
	sealed := payload[sealSaltLen+sealNonceLen:]

	derived := argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	key, err := symmetric.NewKey(nil, types.AlgorithmAES, types.ModeGCM, types.PaddingNone, derived)
	if err != nil {
		return nil, fmt.Errorf("failed to create sealing key: %w", err)
	}
	defer func() { _ = key.Close() }()

	dec, err := key.NewDecrypter(nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to create unsealer: %w", err)
	}
	material, err := dec.Finalize(sealed)
	if err != nil {
		return nil, ErrInvalidPassword
	}
	return material, nil
}
