// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	pgp "github.com/ProtonMail/gopenpgp/v2/crypto"

	"github.com/MKhiriev/go-drive-cli/internal/utils"
	"github.com/MKhiriev/go-drive-cli/models"
)

const (
	nodeKeyName  = "Drive key"
	nodeKeyEmail = "no-reply@drive.local"
	nodeKeyType  = "x25519"

	randomSecretSize = 32
)

// NodeKeys is the freshly generated key material of a new node.
type NodeKeys struct {
	// Context is the unlocked node key and its passphrase.
	Context *DecryptedContext

	// ArmoredKey is the node key locked with the passphrase.
	ArmoredKey string
	// EncryptedPassphrase is the passphrase encrypted to the container key.
	EncryptedPassphrase string
	// PassphraseSignature is the detached signature of the passphrase made
	// by the address key.
	PassphraseSignature string
}

// GenerateNodeKeys creates a node key locked with a random passphrase. The
// passphrase is encrypted to container and signed by signer.
func GenerateNodeKeys(container, signer *pgp.KeyRing) (*NodeKeys, error) {
	secret, err := pgp.RandomToken(randomSecretSize)
	if err != nil {
		return nil, fmt.Errorf("%w: node passphrase: %w", ErrEncryptionFailed, err)
	}
	passphrase := []byte(base64.StdEncoding.EncodeToString(secret))

	key, err := pgp.GenerateKey(nodeKeyName, nodeKeyEmail, nodeKeyType, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: node key: %w", ErrEncryptionFailed, err)
	}

	locked, err := key.Lock(passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: lock node key: %w", ErrEncryptionFailed, err)
	}

	armored, err := locked.Armor()
	if err != nil {
		return nil, fmt.Errorf("%w: armor node key: %w", ErrEncryptionFailed, err)
	}

	kr, err := pgp.NewKeyRing(key)
	if err != nil {
		return nil, fmt.Errorf("%w: node keyring: %w", ErrEncryptionFailed, err)
	}

	encrypted, err := container.Encrypt(pgp.NewPlainMessage(passphrase), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: node passphrase: %w", ErrEncryptionFailed, err)
	}

	armoredPassphrase, err := encrypted.GetArmored()
	if err != nil {
		return nil, fmt.Errorf("%w: node passphrase: %w", ErrEncryptionFailed, err)
	}

	signature, err := signDetachedArmored(signer, passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: node passphrase signature: %w", ErrEncryptionFailed, err)
	}

	return &NodeKeys{
		Context:             &DecryptedContext{KeyRing: kr, Passphrase: passphrase},
		ArmoredKey:          armored,
		EncryptedPassphrase: armoredPassphrase,
		PassphraseSignature: signature,
	}, nil
}

// ContentKey is the content session key of a new revision.
type ContentKey struct {
	SessionKey *pgp.SessionKey

	// KeyPacket is the base64 key packet of SessionKey encrypted to the
	// node key.
	KeyPacket string
	// Signature is the armored detached signature of the raw session key
	// made by the node key.
	Signature string
}

// GenerateContentKey creates a session key and encrypts it to the node's own
// key, so that whoever can unlock the node can recover its content.
func GenerateContentKey(nodeKeyRing *pgp.KeyRing) (*ContentKey, error) {
	sessionKey, err := pgp.GenerateSessionKey()
	if err != nil {
		return nil, fmt.Errorf("%w: content key: %w", ErrEncryptionFailed, err)
	}

	keyPacket, err := nodeKeyRing.EncryptSessionKey(sessionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: content key packet: %w", ErrEncryptionFailed, err)
	}

	signature, err := signDetachedArmored(nodeKeyRing, sessionKey.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: content key signature: %w", ErrEncryptionFailed, err)
	}

	return &ContentKey{
		SessionKey: sessionKey,
		KeyPacket:  base64.StdEncoding.EncodeToString(keyPacket),
		Signature:  signature,
	}, nil
}

// EncryptName encrypts a node name to the container key, signed by signer.
func EncryptName(container, signer *pgp.KeyRing, name string) (string, error) {
	return encryptArmored(container, signer, pgp.NewPlainMessageFromString(name))
}

// EncryptMIMEType encrypts a file MIME type the same way as its name.
func EncryptMIMEType(container, signer *pgp.KeyRing, mimeType string) (string, error) {
	return encryptArmored(container, signer, pgp.NewPlainMessageFromString(mimeType))
}

// GenerateNodeHashKey creates a random folder hash key and encrypts it to the
// folder's own key.
func GenerateNodeHashKey(folderKeyRing, signer *pgp.KeyRing) ([]byte, string, error) {
	hashKey, err := pgp.RandomToken(randomSecretSize)
	if err != nil {
		return nil, "", fmt.Errorf("%w: hash key: %w", ErrEncryptionFailed, err)
	}

	armored, err := encryptArmored(folderKeyRing, signer, pgp.NewPlainMessage(hashKey))
	if err != nil {
		return nil, "", err
	}

	return hashKey, armored, nil
}

// NameHash returns the lookup hash of a child name under a folder hash key.
func NameHash(hashKey []byte, name string) string {
	return utils.HashString(name, hashKey)
}

// EncryptXAttr serializes and encrypts revision attributes to the node key.
func EncryptXAttr(nodeKeyRing, signer *pgp.KeyRing, xattr models.XAttr) (string, error) {
	data, err := json.Marshal(xattr)
	if err != nil {
		return "", fmt.Errorf("%w: xattr: %w", ErrEncryptionFailed, err)
	}

	return encryptArmored(nodeKeyRing, signer, pgp.NewPlainMessage(data))
}

// DecryptXAttr decrypts revision attributes with the node key.
func DecryptXAttr(nodeKeyRing *pgp.KeyRing, armored string) (models.XAttr, error) {
	var xattr models.XAttr

	plain, err := decryptArmored(nodeKeyRing, armored)
	if err != nil {
		return xattr, fmt.Errorf("%w: xattr: %w", ErrDecryptionFailed, err)
	}

	if err := json.Unmarshal(plain.GetBinary(), &xattr); err != nil {
		return xattr, fmt.Errorf("%w: xattr: %w", ErrDecryptionFailed, err)
	}

	return xattr, nil
}

func encryptArmored(to, signer *pgp.KeyRing, plain *pgp.PlainMessage) (string, error) {
	msg, err := to.Encrypt(plain, signer)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}

	armored, err := msg.GetArmored()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}

	return armored, nil
}

func signDetachedArmored(signer *pgp.KeyRing, data []byte) (string, error) {
	sig, err := signer.SignDetached(pgp.NewPlainMessage(data))
	if err != nil {
		return "", err
	}

	return sig.GetArmored()
}
