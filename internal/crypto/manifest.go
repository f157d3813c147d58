// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	pgp "github.com/ProtonMail/gopenpgp/v2/crypto"
)

// BlockHash is the ciphertext hash of one block.
type BlockHash struct {
	Index int
	Hash  []byte
}

// BuildManifest concatenates the raw block hashes in ascending index order.
// The input is not modified.
func BuildManifest(hashes []BlockHash) []byte {
	sorted := slices.Clone(hashes)
	slices.SortFunc(sorted, func(a, b BlockHash) int {
		return cmp.Compare(a.Index, b.Index)
	})

	size := 0
	for _, h := range sorted {
		size += len(h.Hash)
	}

	manifest := make([]byte, 0, size)
	for _, h := range sorted {
		manifest = append(manifest, h.Hash...)
	}

	return manifest
}

// SignManifest returns the armored detached signature of the manifest.
func SignManifest(signer *pgp.KeyRing, manifest []byte) (string, error) {
	sig, err := signDetachedArmored(signer, manifest)
	if err != nil {
		return "", fmt.Errorf("%w: manifest: %w", ErrEncryptionFailed, err)
	}

	return sig, nil
}

// VerifyManifest verifies the armored detached manifest signature.
func VerifyManifest(verifier *pgp.KeyRing, manifest []byte, armoredSignature string) error {
	sig, err := pgp.NewPGPSignatureFromArmored(armoredSignature)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrManifestSignature, err)
	}

	if err := verifier.VerifyDetached(pgp.NewPlainMessage(manifest), sig, pgp.GetUnixTime()); err != nil {
		return fmt.Errorf("%w: %w", ErrManifestSignature, err)
	}

	return nil
}

// SignerMatches reports whether a revision signer is the given address.
// Emails are compared case-insensitively.
func SignerMatches(signerEmail, addressEmail string) bool {
	return signerEmail != "" && strings.EqualFold(signerEmail, addressEmail)
}
