// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrNoKeysDecrypted is returned by [KeyChain.Unlock] when neither a
	// user key nor any address key could be unlocked.
	ErrNoKeysDecrypted = errors.New("no keys could be decrypted")
	// ErrKeysNotInitialized is returned when key material is requested
	// before the key chain was unlocked or after it was cleared.
	ErrKeysNotInitialized = errors.New("keys are not initialized")
	// ErrNoPrimaryAddress is returned when no address has a usable key.
	ErrNoPrimaryAddress = errors.New("no usable primary address")
	// ErrAddressNotFound is returned when an address is unknown or has no
	// usable key.
	ErrAddressNotFound = errors.New("address not found")
	// ErrDecryptionFailed wraps any failure while unlocking a share or node
	// or decrypting one of their fields.
	ErrDecryptionFailed = errors.New("decryption failed")
	// ErrEncryptionFailed wraps failures while producing encrypted material.
	ErrEncryptionFailed = errors.New("encryption failed")
	// ErrBlockIntegrity is returned when the SHA-256 of a block ciphertext
	// differs from the recorded hash.
	ErrBlockIntegrity = errors.New("block integrity check failed")
	// ErrBlockSignature is returned when a block's detached signature does
	// not verify against its plaintext.
	ErrBlockSignature = errors.New("block signature verification failed")
	// ErrManifestSignature is returned when the manifest signature does not
	// verify against the concatenated block hashes.
	ErrManifestSignature = errors.New("manifest signature verification failed")

	errNoCandidates = errors.New("no candidate keys")
)
