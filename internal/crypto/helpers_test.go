package crypto

import (
	"testing"

	pgp "github.com/ProtonMail/gopenpgp/v2/crypto"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-drive-cli/internal/logger"
	"github.com/MKhiriev/go-drive-cli/models"
)

// ── helpers ───────────────────────────────────────────────────────────────────

// newLockedKey generates a key, locks it with passphrase and returns the
// armored form together with an unlocked keyring of the same key.
func newLockedKey(t *testing.T, id string, passphrase []byte) (models.Key, *pgp.KeyRing) {
	t.Helper()

	key, err := pgp.GenerateKey(id, id+"@example.com", "x25519", 0)
	require.NoError(t, err)

	locked, err := key.Lock(passphrase)
	require.NoError(t, err)

	armored, err := locked.Armor()
	require.NoError(t, err)

	kr, err := pgp.NewKeyRing(key)
	require.NoError(t, err)

	return models.Key{ID: id, PrivateKey: armored, Active: 1}, kr
}

// newTokenKey generates an address key locked with a random token that is
// encrypted and signed by userKR.
func newTokenKey(t *testing.T, id string, userKR *pgp.KeyRing) (models.Key, *pgp.KeyRing) {
	t.Helper()

	token, err := pgp.RandomToken(32)
	require.NoError(t, err)

	k, kr := newLockedKey(t, id, token)

	msg, err := userKR.Encrypt(pgp.NewPlainMessage(token), userKR)
	require.NoError(t, err)
	k.Token, err = msg.GetArmored()
	require.NoError(t, err)

	sig, err := userKR.SignDetached(pgp.NewPlainMessage(token))
	require.NoError(t, err)
	k.Signature, err = sig.GetArmored()
	require.NoError(t, err)

	return k, kr
}

// unlockedKeyChain returns a key chain with one user key and one address
// whose single key is wrapped by a token.
func unlockedKeyChain(t *testing.T) (*KeyChain, *AddressKeys) {
	t.Helper()

	userKey, userKR := newLockedKey(t, "user-key", []byte("password"))
	addrKey, _ := newTokenKey(t, "addr-key", userKR)

	kc := NewKeyChain(nil, logger.Nop())
	err := kc.Unlock([]byte("password"), nil,
		models.User{ID: "user", Keys: []models.Key{userKey}},
		[]models.Address{{ID: "addr", Email: "me@example.com", Order: 1, Keys: []models.Key{addrKey}}},
	)
	require.NoError(t, err)

	primary, err := kc.PrimaryAddress()
	require.NoError(t, err)

	return kc, primary
}
