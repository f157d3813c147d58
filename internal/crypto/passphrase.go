// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/base64"
	"fmt"
	"slices"

	"github.com/ProtonMail/go-srp"
	"golang.org/x/text/unicode/norm"
)

// saltedPassphraseLen is the number of trailing bytes of the bcrypt output
// kept as key passphrase. The leading "$2y$10$" and 22-char salt are dropped.
const saltedPassphraseLen = 31

// NormalizePassword returns the NFC form of password in a new slice.
func NormalizePassword(password []byte) []byte {
	normalized := norm.NFC.Bytes(password)
	return append([]byte(nil), normalized...)
}

// SaltedKeyPassphrase derives the key passphrase from the mailbox password
// and the base64 per-key salt.
func SaltedKeyPassphrase(password []byte, keySalt string) ([]byte, error) {
	salt, err := base64.StdEncoding.DecodeString(keySalt)
	if err != nil {
		return nil, fmt.Errorf("decode key salt: %w", err)
	}

	hashed, err := srp.MailboxPassword(slices.Clip(password), salt)
	if err != nil {
		return nil, fmt.Errorf("derive mailbox password: %w", err)
	}

	if len(hashed) < saltedPassphraseLen {
		return nil, fmt.Errorf("derive mailbox password: short hash of %d bytes", len(hashed))
	}

	return hashed[len(hashed)-saltedPassphraseLen:], nil
}
