// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/base64"
	"fmt"
	"sync"

	pgp "github.com/ProtonMail/gopenpgp/v2/crypto"
	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-drive-cli/internal/logger"
	"github.com/MKhiriev/go-drive-cli/models"
)

// DecryptedContext is the unlocked key of a share or node together with the
// passphrase it was locked with.
type DecryptedContext struct {
	KeyRing    *pgp.KeyRing
	Passphrase []byte
}

// AddressKeyProvider gives access to unlocked address keys.
// [KeyChain] implements it.
type AddressKeyProvider interface {
	AddressKeys(addressID string) (*AddressKeys, error)
	AllAddressKeys() []*AddressKeys
}

// NodeDecryptor unlocks shares and nodes and caches their contexts.
//
// Contexts are cached by share id for shares and by share id and link id for
// nodes. Populating the same entry twice yields an equivalent value, so
// concurrent misses are harmless.
type NodeDecryptor struct {
	keys AddressKeyProvider
	log  *logger.Logger

	mu    sync.RWMutex
	cache map[string]*DecryptedContext
}

// NewNodeDecryptor returns a decryptor using keys for share passphrases.
func NewNodeDecryptor(keys AddressKeyProvider, log *logger.Logger) *NodeDecryptor {
	return &NodeDecryptor{
		keys:  keys,
		log:   log,
		cache: make(map[string]*DecryptedContext),
	}
}

func shareCacheKey(shareID string) string { return shareID }

func nodeCacheKey(shareID, linkID string) string { return shareID + "/" + linkID }

func (d *NodeDecryptor) cached(key string) (*DecryptedContext, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	dc, ok := d.cache[key]
	return dc, ok
}

func (d *NodeDecryptor) store(key string, dc *DecryptedContext) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cache[key] = dc
}

// cachedNode returns the cached context of a node, if any.
func (d *NodeDecryptor) cachedNode(shareID, linkID string) (*DecryptedContext, bool) {
	return d.cached(nodeCacheKey(shareID, linkID))
}

// DecryptShare unlocks the share key. The share passphrase is tried against
// every key of the owning address, or of every address when the owner is
// unknown.
func (d *NodeDecryptor) DecryptShare(share models.Share) (*DecryptedContext, error) {
	if dc, ok := d.cached(shareCacheKey(share.ShareID)); ok {
		return dc, nil
	}

	candidates, err := d.shareCandidates(share)
	if err != nil {
		return nil, fmt.Errorf("%w: share %s: %w", ErrDecryptionFailed, share.ShareID, err)
	}

	msg, err := pgp.NewPGPMessageFromArmored(share.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: share %s passphrase: %w", ErrDecryptionFailed, share.ShareID, err)
	}

	passphrase, at := tryEach(candidates, func(kr *pgp.KeyRing) ([]byte, error) {
		plain, err := kr.Decrypt(msg, nil, 0)
		if err != nil {
			return nil, err
		}
		return plain.GetBinary(), nil
	})
	if !at.ok() {
		return nil, fmt.Errorf("%w: share %s passphrase: %w", ErrDecryptionFailed, share.ShareID, at.err)
	}

	kr, err := unlockArmored(share.Key, passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: share %s key: %w", ErrDecryptionFailed, share.ShareID, err)
	}

	d.log.Debug().
		Str("share_id", share.ShareID).
		Int("key_index", at.index).
		Msg("share decrypted")

	dc := &DecryptedContext{KeyRing: kr, Passphrase: passphrase}
	d.store(shareCacheKey(share.ShareID), dc)

	return dc, nil
}

func (d *NodeDecryptor) shareCandidates(share models.Share) ([]*pgp.KeyRing, error) {
	if share.AddressID != "" {
		ak, err := d.keys.AddressKeys(share.AddressID)
		if err != nil {
			return nil, err
		}
		return ak.Candidates(), nil
	}

	var candidates []*pgp.KeyRing
	for _, ak := range d.keys.AllAddressKeys() {
		candidates = append(candidates, ak.Candidates()...)
	}

	return candidates, nil
}

// DecryptRootNode unlocks a top-level node of a share using the share context.
func (d *NodeDecryptor) DecryptRootNode(shareID string, shareCtx *DecryptedContext, link models.Link) (*DecryptedContext, error) {
	return d.decryptNode(shareID, shareCtx, link)
}

// DecryptChildNode unlocks a nested node using its parent folder context.
func (d *NodeDecryptor) DecryptChildNode(shareID string, parentCtx *DecryptedContext, link models.Link) (*DecryptedContext, error) {
	return d.decryptNode(shareID, parentCtx, link)
}

// decryptNode extracts the session key of the node passphrase with the
// container key, decrypts the passphrase with it and unlocks the node key.
func (d *NodeDecryptor) decryptNode(shareID string, container *DecryptedContext, link models.Link) (*DecryptedContext, error) {
	key := nodeCacheKey(shareID, link.LinkID)
	if dc, ok := d.cached(key); ok {
		return dc, nil
	}

	msg, err := pgp.NewPGPMessageFromArmored(link.NodePassphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: node %s passphrase: %w", ErrDecryptionFailed, link.LinkID, err)
	}

	split, err := msg.SplitMessage()
	if err != nil {
		return nil, fmt.Errorf("%w: node %s split passphrase: %w", ErrDecryptionFailed, link.LinkID, err)
	}

	sessionKey, err := container.KeyRing.DecryptSessionKey(split.GetBinaryKeyPacket())
	if err != nil {
		return nil, fmt.Errorf("%w: node %s session key: %w", ErrDecryptionFailed, link.LinkID, err)
	}

	plain, err := sessionKey.Decrypt(split.GetBinaryDataPacket())
	if err != nil {
		return nil, fmt.Errorf("%w: node %s passphrase data: %w", ErrDecryptionFailed, link.LinkID, err)
	}
	passphrase := plain.GetBinary()

	kr, err := unlockArmored(link.NodeKey, passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: node %s key: %w", ErrDecryptionFailed, link.LinkID, err)
	}

	dc := &DecryptedContext{KeyRing: kr, Passphrase: passphrase}
	d.store(key, dc)

	return dc, nil
}

// DecryptName decrypts a node name with the context of its container.
func (d *NodeDecryptor) DecryptName(container *DecryptedContext, encryptedName string) (string, error) {
	plain, err := decryptArmored(container.KeyRing, encryptedName)
	if err != nil {
		return "", fmt.Errorf("%w: name: %w", ErrDecryptionFailed, err)
	}

	return plain.GetString(), nil
}

// DecryptMIMEType decrypts a node MIME type with the context of its container.
func (d *NodeDecryptor) DecryptMIMEType(container *DecryptedContext, encryptedMIMEType string) (string, error) {
	plain, err := decryptArmored(container.KeyRing, encryptedMIMEType)
	if err != nil {
		return "", fmt.Errorf("%w: mime type: %w", ErrDecryptionFailed, err)
	}

	return plain.GetString(), nil
}

// DecryptNodeHashKey decrypts the name lookup key of a folder with the
// folder's own context.
func (d *NodeDecryptor) DecryptNodeHashKey(folderCtx *DecryptedContext, link models.Link) ([]byte, error) {
	if link.FolderProperties == nil || link.FolderProperties.NodeHashKey == "" {
		return nil, fmt.Errorf("%w: node %s has no hash key", ErrDecryptionFailed, link.LinkID)
	}

	plain, err := decryptArmored(folderCtx.KeyRing, link.FolderProperties.NodeHashKey)
	if err != nil {
		return nil, fmt.Errorf("%w: node %s hash key: %w", ErrDecryptionFailed, link.LinkID, err)
	}

	return plain.GetBinary(), nil
}

// DecryptContentKey recovers the content session key of a file from its
// content key packet with the file's own context.
func (d *NodeDecryptor) DecryptContentKey(fileCtx *DecryptedContext, link models.Link) (*pgp.SessionKey, error) {
	if link.FileProperties == nil || link.FileProperties.ContentKeyPacket == "" {
		return nil, fmt.Errorf("%w: node %s has no content key packet", ErrDecryptionFailed, link.LinkID)
	}

	keyPacket, err := base64.StdEncoding.DecodeString(link.FileProperties.ContentKeyPacket)
	if err != nil {
		return nil, fmt.Errorf("%w: node %s content key packet: %w", ErrDecryptionFailed, link.LinkID, err)
	}

	sessionKey, err := fileCtx.KeyRing.DecryptSessionKey(keyPacket)
	if err != nil {
		return nil, fmt.Errorf("%w: node %s content key: %w", ErrDecryptionFailed, link.LinkID, err)
	}

	return sessionKey, nil
}

// Clear drops every cached context and wipes its key material.
func (d *NodeDecryptor) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, dc := range d.cache {
		dc.KeyRing.ClearPrivateParams()
		memguard.WipeBytes(dc.Passphrase)
		delete(d.cache, key)
	}
}

func decryptArmored(kr *pgp.KeyRing, armored string) (*pgp.PlainMessage, error) {
	msg, err := pgp.NewPGPMessageFromArmored(armored)
	if err != nil {
		return nil, err
	}

	return kr.Decrypt(msg, nil, 0)
}

func unlockArmored(armoredKey string, passphrase []byte) (*pgp.KeyRing, error) {
	locked, err := pgp.NewKeyFromArmored(armoredKey)
	if err != nil {
		return nil, err
	}

	unlocked, err := locked.Unlock(passphrase)
	if err != nil {
		return nil, err
	}

	return pgp.NewKeyRing(unlocked)
}
