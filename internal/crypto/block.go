// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	pgp "github.com/ProtonMail/gopenpgp/v2/crypto"
)

// EncryptedBlock is one encrypted content block ready for upload.
type EncryptedBlock struct {
	Index      int
	Ciphertext []byte
	// Hash is the raw SHA-256 of Ciphertext.
	Hash []byte
	// EncSignature is the armored detached signature of the plaintext,
	// encrypted to the node key with the content session key.
	EncSignature string
	PlainSize    int
}

// BlockCipher encrypts and decrypts the blocks of one file revision.
type BlockCipher struct {
	sessionKey *pgp.SessionKey
	nodeKR     *pgp.KeyRing
	signer     *pgp.KeyRing
}

// NewBlockCipher returns a cipher using the content session key. nodeKR is
// the file's node key; signer is the address key signing block plaintexts
// and may be nil when only decrypting.
func NewBlockCipher(sessionKey *pgp.SessionKey, nodeKR, signer *pgp.KeyRing) *BlockCipher {
	return &BlockCipher{
		sessionKey: sessionKey,
		nodeKR:     nodeKR,
		signer:     signer,
	}
}

// Encrypt signs the plaintext, encrypts it with the session key and hashes
// the ciphertext.
func (c *BlockCipher) Encrypt(index int, plaintext []byte) (*EncryptedBlock, error) {
	plain := pgp.NewPlainMessage(plaintext)

	sig, err := c.signer.SignDetached(plain)
	if err != nil {
		return nil, fmt.Errorf("%w: block %d signature: %w", ErrEncryptionFailed, index, err)
	}

	ciphertext, err := c.sessionKey.Encrypt(plain)
	if err != nil {
		return nil, fmt.Errorf("%w: block %d: %w", ErrEncryptionFailed, index, err)
	}

	sum := sha256.Sum256(ciphertext)

	encSig, err := c.encryptSignature(sig.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("%w: block %d signature: %w", ErrEncryptionFailed, index, err)
	}

	return &EncryptedBlock{
		Index:        index,
		Ciphertext:   ciphertext,
		Hash:         sum[:],
		EncSignature: encSig,
		PlainSize:    len(plaintext),
	}, nil
}

// encryptSignature encrypts the raw signature with the content session key
// and prepends the session key packet for the node key.
func (c *BlockCipher) encryptSignature(signature []byte) (string, error) {
	keyPacket, err := c.nodeKR.EncryptSessionKey(c.sessionKey)
	if err != nil {
		return "", err
	}

	dataPacket, err := c.sessionKey.Encrypt(pgp.NewPlainMessage(signature))
	if err != nil {
		return "", err
	}

	return pgp.NewPGPSplitMessage(keyPacket, dataPacket).GetPGPMessage().GetArmored()
}

// Decrypt checks the ciphertext against expectedHash unless verify is false
// and decrypts it with the session key.
func (c *BlockCipher) Decrypt(index int, ciphertext, expectedHash []byte, verify bool) ([]byte, error) {
	if verify {
		sum := sha256.Sum256(ciphertext)
		if !bytes.Equal(sum[:], expectedHash) {
			return nil, fmt.Errorf("%w: block %d", ErrBlockIntegrity, index)
		}
	}

	plain, err := c.sessionKey.Decrypt(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: block %d: %w", ErrDecryptionFailed, index, err)
	}

	return plain.GetBinary(), nil
}

// VerifySignature decrypts the encrypted block signature with the node key
// and verifies it over plaintext with verifier.
func (c *BlockCipher) VerifySignature(index int, plaintext []byte, encSignature string, verifier *pgp.KeyRing) error {
	plain, err := decryptArmored(c.nodeKR, encSignature)
	if err != nil {
		return fmt.Errorf("%w: block %d signature: %w", ErrDecryptionFailed, index, err)
	}

	sig := pgp.NewPGPSignature(plain.GetBinary())
	if err := verifier.VerifyDetached(pgp.NewPlainMessage(plaintext), sig, pgp.GetUnixTime()); err != nil {
		return fmt.Errorf("%w: block %d: %w", ErrBlockSignature, index, err)
	}

	return nil
}
