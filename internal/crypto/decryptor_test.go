package crypto

import (
	"testing"

	pgp "github.com/ProtonMail/gopenpgp/v2/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-drive-cli/internal/logger"
	"github.com/MKhiriev/go-drive-cli/models"
)

type testTree struct {
	kc      *KeyChain
	address *AddressKeys
	share   models.Share
	root    models.Link
	child   models.Link
}

// newTestTree builds a share owned by the primary address with a root
// folder and one child folder named "docs".
func newTestTree(t *testing.T) *testTree {
	t.Helper()

	kc, address := unlockedKeyChain(t)

	shareKeys, err := GenerateNodeKeys(address.KeyRing, address.KeyRing)
	require.NoError(t, err)
	share := models.Share{
		ShareID:             "share-1",
		LinkID:              "root",
		AddressID:           address.Address.ID,
		Key:                 shareKeys.ArmoredKey,
		Passphrase:          shareKeys.EncryptedPassphrase,
		PassphraseSignature: shareKeys.PassphraseSignature,
	}

	root := newFolderLink(t, "root", "", "root", shareKeys.Context.KeyRing, address.KeyRing)
	rootCtx, err := NewNodeDecryptor(kc, logger.Nop()).DecryptRootNode(share.ShareID, shareKeys.Context, root)
	require.NoError(t, err)
	child := newFolderLink(t, "child", "root", "docs", rootCtx.KeyRing, address.KeyRing)

	return &testTree{kc: kc, address: address, share: share, root: root, child: child}
}

func newFolderLink(t *testing.T, id, parentID, name string, container, signer *pgp.KeyRing) models.Link {
	t.Helper()

	nk, err := GenerateNodeKeys(container, signer)
	require.NoError(t, err)

	encName, err := EncryptName(container, signer, name)
	require.NoError(t, err)

	_, hashKey, err := GenerateNodeHashKey(nk.Context.KeyRing, signer)
	require.NoError(t, err)

	return models.Link{
		LinkID:                  id,
		ParentLinkID:            parentID,
		Type:                    models.LinkTypeFolder,
		Name:                    encName,
		NodeKey:                 nk.ArmoredKey,
		NodePassphrase:          nk.EncryptedPassphrase,
		NodePassphraseSignature: nk.PassphraseSignature,
		FolderProperties:        &models.FolderProperties{NodeHashKey: hashKey},
	}
}

func TestNodeDecryptor_DecryptShare(t *testing.T) {
	tree := newTestTree(t)
	d := NewNodeDecryptor(tree.kc, logger.Nop())

	first, err := d.DecryptShare(tree.share)
	require.NoError(t, err)
	require.NotNil(t, first.KeyRing)
	assert.NotEmpty(t, first.Passphrase)

	second, err := d.DecryptShare(tree.share)
	require.NoError(t, err)
	assert.Same(t, first, second, "second call must hit the cache")
}

func TestNodeDecryptor_DecryptShare_UnknownOwnerTriesAllAddresses(t *testing.T) {
	tree := newTestTree(t)
	share := tree.share
	share.AddressID = ""

	d := NewNodeDecryptor(tree.kc, logger.Nop())
	_, err := d.DecryptShare(share)
	require.NoError(t, err)
}

func TestNodeDecryptor_DecryptShare_WrongKey(t *testing.T) {
	tree := newTestTree(t)

	_, stranger := newLockedKey(t, "stranger", []byte("x"))
	foreign, err := GenerateNodeKeys(stranger, stranger)
	require.NoError(t, err)

	share := tree.share
	share.Passphrase = foreign.EncryptedPassphrase

	d := NewNodeDecryptor(tree.kc, logger.Nop())
	_, err = d.DecryptShare(share)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestNodeDecryptor_DecryptShare_UnknownAddress(t *testing.T) {
	tree := newTestTree(t)
	share := tree.share
	share.AddressID = "missing"

	d := NewNodeDecryptor(tree.kc, logger.Nop())
	_, err := d.DecryptShare(share)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestNodeDecryptor_RootAndChild(t *testing.T) {
	tree := newTestTree(t)
	d := NewNodeDecryptor(tree.kc, logger.Nop())

	shareCtx, err := d.DecryptShare(tree.share)
	require.NoError(t, err)

	rootCtx, err := d.DecryptRootNode(tree.share.ShareID, shareCtx, tree.root)
	require.NoError(t, err)

	rootName, err := d.DecryptName(shareCtx, tree.root.Name)
	require.NoError(t, err)
	assert.Equal(t, "root", rootName)

	childCtx, err := d.DecryptChildNode(tree.share.ShareID, rootCtx, tree.child)
	require.NoError(t, err)

	childName, err := d.DecryptName(rootCtx, tree.child.Name)
	require.NoError(t, err)
	assert.Equal(t, "docs", childName)

	cached, ok := d.cachedNode(tree.share.ShareID, tree.child.LinkID)
	require.True(t, ok)
	assert.Same(t, childCtx, cached)

	hashKey, err := d.DecryptNodeHashKey(childCtx, tree.child)
	require.NoError(t, err)
	assert.Len(t, hashKey, 32)
}

// TestNodeDecryptor_NameUsesContainerKey verifies that the node's own key
// cannot decrypt its name.
func TestNodeDecryptor_NameUsesContainerKey(t *testing.T) {
	tree := newTestTree(t)
	d := NewNodeDecryptor(tree.kc, logger.Nop())

	shareCtx, err := d.DecryptShare(tree.share)
	require.NoError(t, err)
	rootCtx, err := d.DecryptRootNode(tree.share.ShareID, shareCtx, tree.root)
	require.NoError(t, err)
	childCtx, err := d.DecryptChildNode(tree.share.ShareID, rootCtx, tree.child)
	require.NoError(t, err)

	_, err = d.DecryptName(childCtx, tree.child.Name)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestNodeDecryptor_ChildWithWrongContainer(t *testing.T) {
	tree := newTestTree(t)
	d := NewNodeDecryptor(tree.kc, logger.Nop())

	shareCtx, err := d.DecryptShare(tree.share)
	require.NoError(t, err)

	// the child passphrase is encrypted to the root node key, not the share key
	_, err = d.DecryptChildNode(tree.share.ShareID, shareCtx, tree.child)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestNodeDecryptor_MIMETypeAndContentKey(t *testing.T) {
	tree := newTestTree(t)
	d := NewNodeDecryptor(tree.kc, logger.Nop())

	shareCtx, err := d.DecryptShare(tree.share)
	require.NoError(t, err)
	rootCtx, err := d.DecryptRootNode(tree.share.ShareID, shareCtx, tree.root)
	require.NoError(t, err)

	fileKeys, err := GenerateNodeKeys(rootCtx.KeyRing, tree.address.KeyRing)
	require.NoError(t, err)
	contentKey, err := GenerateContentKey(fileKeys.Context.KeyRing)
	require.NoError(t, err)
	mime, err := EncryptName(rootCtx.KeyRing, tree.address.KeyRing, "text/plain")
	require.NoError(t, err)

	file := models.Link{
		LinkID:         "file",
		ParentLinkID:   "root",
		Type:           models.LinkTypeFile,
		MIMEType:       mime,
		NodeKey:        fileKeys.ArmoredKey,
		NodePassphrase: fileKeys.EncryptedPassphrase,
		FileProperties: &models.FileProperties{ContentKeyPacket: contentKey.KeyPacket},
	}

	gotMIME, err := d.DecryptMIMEType(rootCtx, file.MIMEType)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", gotMIME)

	fileCtx, err := d.DecryptChildNode(tree.share.ShareID, rootCtx, file)
	require.NoError(t, err)

	sk, err := d.DecryptContentKey(fileCtx, file)
	require.NoError(t, err)
	assert.Equal(t, contentKey.SessionKey.Key, sk.Key)

	_, err = d.DecryptContentKey(fileCtx, models.Link{LinkID: "no-props"})
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestNodeDecryptor_Clear(t *testing.T) {
	tree := newTestTree(t)
	d := NewNodeDecryptor(tree.kc, logger.Nop())

	shareCtx, err := d.DecryptShare(tree.share)
	require.NoError(t, err)
	_, err = d.DecryptRootNode(tree.share.ShareID, shareCtx, tree.root)
	require.NoError(t, err)

	d.Clear()

	_, ok := d.cachedNode(tree.share.ShareID, tree.root.LinkID)
	assert.False(t, ok)
}
