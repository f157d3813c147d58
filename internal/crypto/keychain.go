// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	pgp "github.com/ProtonMail/gopenpgp/v2/crypto"
	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-drive-cli/internal/logger"
	"github.com/MKhiriev/go-drive-cli/models"
)

// AddressKeys holds every unlocked key of one usable address.
type AddressKeys struct {
	Address models.Address

	// KeyRing contains all unlocked keys of the address, the primary key
	// first, so that signing with it uses the primary key.
	KeyRing *pgp.KeyRing

	// KeyIDs lists the ids of the unlocked keys in KeyRing order.
	KeyIDs []string

	candidates []*pgp.KeyRing
}

// Candidates returns one single-key keyring per unlocked key, in KeyRing
// order, for try-each decryption.
func (a *AddressKeys) Candidates() []*pgp.KeyRing {
	return a.candidates
}

// KeyChain owns the decrypted user and address keys of one session.
//
// Keys are unlocked once by [KeyChain.Initialize] or [KeyChain.Unlock] and
// live in process memory until [KeyChain.Clear]. A KeyChain is safe for
// concurrent use.
type KeyChain struct {
	source KeySource
	log    *logger.Logger

	initMu sync.Mutex

	mu          sync.RWMutex
	initialized bool
	userKeys    []*pgp.KeyRing
	userKeyRing *pgp.KeyRing
	addresses   map[string]*AddressKeys
	// ordered by ascending Order, ties keep the listing order
	ordered []*AddressKeys
}

// NewKeyChain returns an empty key chain reading key material from source.
func NewKeyChain(source KeySource, log *logger.Logger) *KeyChain {
	return &KeyChain{
		source:    source,
		log:       log,
		addresses: make(map[string]*AddressKeys),
	}
}

// Initialize fetches salts, user and addresses from the key source and
// unlocks them with password. Calls after a successful one are no-ops until
// [KeyChain.Clear]. password is wiped before Initialize returns.
func (kc *KeyChain) Initialize(ctx context.Context, password []byte) error {
	defer memguard.WipeBytes(password)

	kc.initMu.Lock()
	defer kc.initMu.Unlock()

	if kc.Initialized() {
		return nil
	}

	salts, err := kc.source.GetKeySalts(ctx)
	if err != nil {
		return fmt.Errorf("get key salts: %w", err)
	}

	user, err := kc.source.GetUser(ctx)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	addresses, err := kc.source.GetAddresses(ctx)
	if err != nil {
		return fmt.Errorf("get addresses: %w", err)
	}

	return kc.Unlock(password, salts, user, addresses)
}

// Initialized reports whether keys are unlocked.
func (kc *KeyChain) Initialized() bool {
	kc.mu.RLock()
	defer kc.mu.RUnlock()
	return kc.initialized
}

// Unlock decrypts the user keys and the address keys with the mailbox
// password. Keys that cannot be unlocked are skipped with a warning; the
// call fails only when nothing at all could be unlocked.
//
// The password slice is wiped.
func (kc *KeyChain) Unlock(password []byte, salts []models.KeySalt, user models.User, addresses []models.Address) error {
	normalized := NormalizePassword(password)
	memguard.WipeBytes(password)

	locked := memguard.NewBufferFromBytes(normalized)
	defer locked.Destroy()
	pass := locked.Bytes()

	saltByKeyID := make(map[string]string, len(salts))
	for _, s := range salts {
		saltByKeyID[s.ID] = s.KeySalt
	}

	var failures []error

	userKeys := make([]*pgp.KeyRing, 0, len(user.Keys))
	for _, k := range user.Keys {
		key, err := unlockWithPassword(k, pass, saltByKeyID[k.ID])
		if err != nil {
			kc.log.Warn().Err(err).Str("key_id", k.ID).Msg("skipping user key that cannot be unlocked")
			failures = append(failures, fmt.Errorf("user key %s: %w", k.ID, err))
			continue
		}

		kr, err := pgp.NewKeyRing(key)
		if err != nil {
			failures = append(failures, fmt.Errorf("user key %s: %w", k.ID, err))
			continue
		}
		userKeys = append(userKeys, kr)
	}

	byID := make(map[string]*AddressKeys, len(addresses))
	ordered := make([]*AddressKeys, 0, len(addresses))
	for _, addr := range addresses {
		ak, errs := kc.unlockAddress(addr, pass, saltByKeyID, userKeys)
		failures = append(failures, errs...)
		if ak == nil {
			kc.log.Warn().Str("address_id", addr.ID).Msg("address has no usable key")
			continue
		}
		byID[addr.ID] = ak
		ordered = append(ordered, ak)
	}

	if len(userKeys) == 0 && len(ordered) == 0 {
		if len(failures) == 0 {
			return ErrNoKeysDecrypted
		}
		return fmt.Errorf("%w: %w", ErrNoKeysDecrypted, errors.Join(failures...))
	}

	slices.SortStableFunc(ordered, func(a, b *AddressKeys) int {
		return cmp.Compare(a.Address.Order, b.Address.Order)
	})

	userKeyRing, err := mergeKeyRings(userKeys)
	if err != nil {
		return err
	}

	kc.mu.Lock()
	defer kc.mu.Unlock()

	kc.clearLocked()
	kc.userKeys = userKeys
	kc.userKeyRing = userKeyRing
	kc.addresses = byID
	kc.ordered = ordered
	kc.initialized = true

	kc.log.Info().
		Int("user_keys", len(userKeys)).
		Int("addresses", len(ordered)).
		Int("failures", len(failures)).
		Msg("key chain unlocked")

	return nil
}

func (kc *KeyChain) unlockAddress(addr models.Address, pass []byte, salts map[string]string, userKeys []*pgp.KeyRing) (*AddressKeys, []error) {
	var failures []error

	keys := slices.Clone(addr.Keys)
	slices.SortStableFunc(keys, func(a, b models.Key) int {
		return cmp.Compare(b.Primary, a.Primary)
	})

	ak := &AddressKeys{Address: addr}
	for _, k := range keys {
		key, err := kc.unlockAddressKey(k, pass, salts[k.ID], userKeys)
		if err != nil {
			kc.log.Warn().Err(err).
				Str("address_id", addr.ID).
				Str("key_id", k.ID).
				Msg("skipping address key that cannot be unlocked")
			failures = append(failures, fmt.Errorf("address %s key %s: %w", addr.ID, k.ID, err))
			continue
		}

		kr, err := pgp.NewKeyRing(key)
		if err != nil {
			failures = append(failures, fmt.Errorf("address %s key %s: %w", addr.ID, k.ID, err))
			continue
		}
		ak.candidates = append(ak.candidates, kr)
		ak.KeyIDs = append(ak.KeyIDs, k.ID)
	}

	if len(ak.candidates) == 0 {
		return nil, failures
	}

	merged, err := mergeKeyRings(ak.candidates)
	if err != nil {
		return nil, append(failures, err)
	}
	ak.KeyRing = merged

	return ak, failures
}

// unlockAddressKey resolves the passphrase of an address key from its token
// when any user key can decrypt it, and from the password otherwise.
func (kc *KeyChain) unlockAddressKey(k models.Key, pass []byte, salt string, userKeys []*pgp.KeyRing) (*pgp.Key, error) {
	if k.Token == "" || len(userKeys) == 0 {
		return unlockWithPassword(k, pass, salt)
	}

	token, err := pgp.NewPGPMessageFromArmored(k.Token)
	if err != nil {
		kc.log.Debug().Err(err).Str("key_id", k.ID).Msg("malformed key token, using password")
		return unlockWithPassword(k, pass, salt)
	}

	passphrase, at := tryEach(userKeys, func(kr *pgp.KeyRing) ([]byte, error) {
		return decryptToken(kr, token, k.Signature)
	})
	if !at.ok() {
		kc.log.Debug().Err(at.err).Str("key_id", k.ID).Msg("no user key decrypts the key token, using password")
		return unlockWithPassword(k, pass, salt)
	}

	locked, err := pgp.NewKeyFromArmored(k.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("parse key: %w", err)
	}

	return locked.Unlock(passphrase)
}

func decryptToken(kr *pgp.KeyRing, token *pgp.PGPMessage, armoredSignature string) ([]byte, error) {
	plain, err := kr.Decrypt(token, nil, 0)
	if err != nil {
		return nil, err
	}

	if armoredSignature != "" {
		sig, err := pgp.NewPGPSignatureFromArmored(armoredSignature)
		if err != nil {
			return nil, fmt.Errorf("parse token signature: %w", err)
		}
		if err := kr.VerifyDetached(plain, sig, pgp.GetUnixTime()); err != nil {
			return nil, fmt.Errorf("verify token signature: %w", err)
		}
	}

	return plain.GetBinary(), nil
}

// unlockWithPassword tries the password itself, then the salted derivation
// when the key has a salt.
func unlockWithPassword(k models.Key, pass []byte, salt string) (*pgp.Key, error) {
	locked, err := pgp.NewKeyFromArmored(k.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("parse key: %w", err)
	}

	unlocked, rawErr := locked.Unlock(pass)
	if rawErr == nil {
		return unlocked, nil
	}

	if salt == "" {
		return nil, rawErr
	}

	derived, err := SaltedKeyPassphrase(pass, salt)
	if err != nil {
		return nil, errors.Join(rawErr, err)
	}
	defer memguard.WipeBytes(derived)

	unlocked, err = locked.Unlock(derived)
	if err != nil {
		return nil, errors.Join(rawErr, err)
	}

	return unlocked, nil
}

func mergeKeyRings(krs []*pgp.KeyRing) (*pgp.KeyRing, error) {
	merged, err := pgp.NewKeyRing(nil)
	if err != nil {
		return nil, err
	}

	for _, kr := range krs {
		for _, key := range kr.GetKeys() {
			if err := merged.AddKey(key); err != nil {
				return nil, fmt.Errorf("merge keyrings: %w", err)
			}
		}
	}

	return merged, nil
}

// PrimaryAddress returns the usable address with the lowest Order.
func (kc *KeyChain) PrimaryAddress() (*AddressKeys, error) {
	kc.mu.RLock()
	defer kc.mu.RUnlock()

	if !kc.initialized {
		return nil, ErrKeysNotInitialized
	}
	if len(kc.ordered) == 0 {
		return nil, ErrNoPrimaryAddress
	}

	return kc.ordered[0], nil
}

// AddressKeys returns the unlocked keys of the address with the given id.
func (kc *KeyChain) AddressKeys(addressID string) (*AddressKeys, error) {
	kc.mu.RLock()
	defer kc.mu.RUnlock()

	if !kc.initialized {
		return nil, ErrKeysNotInitialized
	}

	ak, ok := kc.addresses[addressID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAddressNotFound, addressID)
	}

	return ak, nil
}

// AddressByEmail returns the unlocked keys of the address with the given
// email, compared case-insensitively.
func (kc *KeyChain) AddressByEmail(email string) (*AddressKeys, error) {
	kc.mu.RLock()
	defer kc.mu.RUnlock()

	if !kc.initialized {
		return nil, ErrKeysNotInitialized
	}

	for _, ak := range kc.ordered {
		if strings.EqualFold(ak.Address.Email, email) {
			return ak, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrAddressNotFound, email)
}

// AllAddressKeys returns every usable address ordered by Order.
func (kc *KeyChain) AllAddressKeys() []*AddressKeys {
	kc.mu.RLock()
	defer kc.mu.RUnlock()

	return slices.Clone(kc.ordered)
}

// unlockedUserKeys returns a keyring holding every unlocked user key.
func (kc *KeyChain) unlockedUserKeys() (*pgp.KeyRing, error) {
	kc.mu.RLock()
	defer kc.mu.RUnlock()

	if !kc.initialized {
		return nil, ErrKeysNotInitialized
	}

	return kc.userKeyRing, nil
}

// Clear wipes all private key material. The key chain can be unlocked again
// afterwards.
func (kc *KeyChain) Clear() {
	kc.mu.Lock()
	defer kc.mu.Unlock()

	kc.clearLocked()
}

func (kc *KeyChain) clearLocked() {
	for _, kr := range kc.userKeys {
		kr.ClearPrivateParams()
	}
	if kc.userKeyRing != nil {
		kc.userKeyRing.ClearPrivateParams()
	}
	for _, ak := range kc.ordered {
		for _, kr := range ak.candidates {
			kr.ClearPrivateParams()
		}
		ak.KeyRing.ClearPrivateParams()
	}

	kc.userKeys = nil
	kc.userKeyRing = nil
	kc.addresses = make(map[string]*AddressKeys)
	kc.ordered = nil
	kc.initialized = false
}
