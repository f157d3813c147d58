// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package drivetest provides an in-memory drive backend for tests.
//
// [Drive] implements [adapter.DriveAdapter] on top of a freshly generated
// account: one user key locked with [Password], one address whose key is
// wrapped by a token, one active volume and its main share with an empty
// root folder. It enforces the server side checks of the upload protocol
// (storage tokens, ciphertext hashes and verification tokens) so that
// clients are exercised against realistic rules.
package drivetest

import (
	"bytes"
	"cmp"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"slices"
	"sync"

	pgp "github.com/ProtonMail/gopenpgp/v2/crypto"

	"github.com/MKhiriev/go-drive-cli/internal/adapter"
	"github.com/MKhiriev/go-drive-cli/internal/crypto"
	"github.com/MKhiriev/go-drive-cli/models"
)

const (
	Password   = "correct horse battery staple"
	Email      = "me@example.com"
	AddressID  = "address-1"
	VolumeID   = "volume-1"
	ShareID    = "share-1"
	RootLinkID = "root"
)

var _ adapter.DriveAdapter = (*Drive)(nil)

type revision struct {
	id     string
	linkID string
	state  int
	code   []byte

	manifestSignature string
	signatureAddress  string
	xattr             string

	blocks map[int]*storedBlock
}

type storedBlock struct {
	index        int
	revisionID   string
	bareURL      string
	token        string
	hash         string
	encSignature string
	verifier     string
	data         []byte
	uploaded     bool
}

// Drive is an in-memory drive backend. It is safe for concurrent use.
type Drive struct {
	mu sync.Mutex

	user      models.User
	addresses []models.Address
	addressKR *pgp.KeyRing
	share     models.Share
	volume    models.Volume

	links    map[string]*models.Link
	order    []string
	keyrings map[string]*pgp.KeyRing
	hashKeys map[string][]byte

	revisions map[string]*revision
	storage   map[string]*storedBlock
	nextID    int

	failures map[string]error
	calls    map[string]int
}

// New generates an account and an empty main share.
func New() (*Drive, error) {
	userKey, userKR, err := lockedKey("user", []byte(Password))
	if err != nil {
		return nil, err
	}

	token, err := pgp.RandomToken(32)
	if err != nil {
		return nil, err
	}
	addrKey, addrKR, err := lockedKey("address", token)
	if err != nil {
		return nil, err
	}

	encToken, err := userKR.Encrypt(pgp.NewPlainMessage(token), userKR)
	if err != nil {
		return nil, err
	}
	if addrKey.Token, err = encToken.GetArmored(); err != nil {
		return nil, err
	}
	sig, err := userKR.SignDetached(pgp.NewPlainMessage(token))
	if err != nil {
		return nil, err
	}
	if addrKey.Signature, err = sig.GetArmored(); err != nil {
		return nil, err
	}

	shareKeys, err := crypto.GenerateNodeKeys(addrKR, addrKR)
	if err != nil {
		return nil, err
	}

	d := &Drive{
		user: models.User{ID: "user-1", Name: "me", Email: Email, Keys: []models.Key{userKey}},
		addresses: []models.Address{{
			ID: AddressID, Email: Email, Status: 1, Order: 1, Keys: []models.Key{addrKey},
		}},
		addressKR: addrKR,
		share: models.Share{
			ShareID:             ShareID,
			VolumeID:            VolumeID,
			LinkID:              RootLinkID,
			AddressID:           AddressID,
			Creator:             Email,
			Key:                 shareKeys.ArmoredKey,
			Passphrase:          shareKeys.EncryptedPassphrase,
			PassphraseSignature: shareKeys.PassphraseSignature,
		},
		volume: models.Volume{
			VolumeID: VolumeID,
			State:    models.VolumeStateActive,
			Share:    models.VolumeShare{ShareID: ShareID, LinkID: RootLinkID},
		},
		links:     make(map[string]*models.Link),
		keyrings:  make(map[string]*pgp.KeyRing),
		hashKeys:  make(map[string][]byte),
		revisions: make(map[string]*revision),
		storage:   make(map[string]*storedBlock),
		failures:  make(map[string]error),
		calls:     make(map[string]int),
	}

	if err := d.addFolder(RootLinkID, "", "root", shareKeys.Context.KeyRing); err != nil {
		return nil, err
	}

	return d, nil
}

func lockedKey(name string, passphrase []byte) (models.Key, *pgp.KeyRing, error) {
	key, err := pgp.GenerateKey(name, Email, "x25519", 0)
	if err != nil {
		return models.Key{}, nil, err
	}
	locked, err := key.Lock(passphrase)
	if err != nil {
		return models.Key{}, nil, err
	}
	armored, err := locked.Armor()
	if err != nil {
		return models.Key{}, nil, err
	}
	kr, err := pgp.NewKeyRing(key)
	if err != nil {
		return models.Key{}, nil, err
	}

	return models.Key{ID: name + "-key", PrivateKey: armored, Primary: 1, Active: 1}, kr, nil
}

// AddressKeyRing returns the unlocked address keyring of the account.
func (d *Drive) AddressKeyRing() *pgp.KeyRing { return d.addressKR }

// AddFolder creates a folder under a folder that was created through
// AddFolder or is the root, and returns its link id.
func (d *Drive) AddFolder(parentID, name string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	parentKR, ok := d.keyrings[parentID]
	if !ok {
		return "", fmt.Errorf("unknown parent %s", parentID)
	}

	id := d.newID("folder")
	return id, d.addFolder(id, parentID, name, parentKR)
}

func (d *Drive) addFolder(id, parentID, name string, containerKR *pgp.KeyRing) error {
	nk, err := crypto.GenerateNodeKeys(containerKR, d.addressKR)
	if err != nil {
		return err
	}
	encName, err := crypto.EncryptName(containerKR, d.addressKR, name)
	if err != nil {
		return err
	}
	hashKey, armoredHashKey, err := crypto.GenerateNodeHashKey(nk.Context.KeyRing, d.addressKR)
	if err != nil {
		return err
	}

	d.keyrings[id] = nk.Context.KeyRing
	d.hashKeys[id] = hashKey
	d.store(&models.Link{
		LinkID:                  id,
		ParentLinkID:            parentID,
		Type:                    models.LinkTypeFolder,
		State:                   models.LinkStateActive,
		Name:                    encName,
		Hash:                    d.nameHash(parentID, name),
		NodeKey:                 nk.ArmoredKey,
		NodePassphrase:          nk.EncryptedPassphrase,
		NodePassphraseSignature: nk.PassphraseSignature,
		SignatureEmail:          Email,
		FolderProperties:        &models.FolderProperties{NodeHashKey: armoredHashKey},
	})

	return nil
}

// AddFile creates an empty file node without any revision.
func (d *Drive) AddFile(parentID, name string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	parentKR, ok := d.keyrings[parentID]
	if !ok {
		return "", fmt.Errorf("unknown parent %s", parentID)
	}

	nk, err := crypto.GenerateNodeKeys(parentKR, d.addressKR)
	if err != nil {
		return "", err
	}
	encName, err := crypto.EncryptName(parentKR, d.addressKR, name)
	if err != nil {
		return "", err
	}
	contentKey, err := crypto.GenerateContentKey(nk.Context.KeyRing)
	if err != nil {
		return "", err
	}

	id := d.newID("file")
	d.store(&models.Link{
		LinkID:         id,
		ParentLinkID:   parentID,
		Type:           models.LinkTypeFile,
		State:          models.LinkStateActive,
		Name:           encName,
		Hash:           d.nameHash(parentID, name),
		NodeKey:        nk.ArmoredKey,
		NodePassphrase: nk.EncryptedPassphrase,
		FileProperties: &models.FileProperties{ContentKeyPacket: contentKey.KeyPacket},
	})

	return id, nil
}

// AddForeignChild adds a folder whose name nobody on this account can
// decrypt.
func (d *Drive) AddForeignChild(parentID string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, strangerKR, err := lockedKey("stranger", []byte("x"))
	if err != nil {
		return "", err
	}
	encName, err := crypto.EncryptName(strangerKR, strangerKR, "foreign")
	if err != nil {
		return "", err
	}

	id := d.newID("foreign")
	d.store(&models.Link{
		LinkID:       id,
		ParentLinkID: parentID,
		Type:         models.LinkTypeFolder,
		State:        models.LinkStateActive,
		Name:         encName,
	})

	return id, nil
}

func (d *Drive) nameHash(parentID, name string) string {
	if key, ok := d.hashKeys[parentID]; ok {
		return crypto.NameHash(key, name)
	}
	return ""
}

func (d *Drive) store(link *models.Link) {
	d.links[link.LinkID] = link
	d.order = append(d.order, link.LinkID)
}

func (d *Drive) newID(prefix string) string {
	d.nextID++
	return fmt.Sprintf("%s-%d", prefix, d.nextID)
}

// FailOn makes the next call of the named DriveAdapter method return err.
func (d *Drive) FailOn(method string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.failures[method] = err
}

// Calls returns how many times the named method was called.
func (d *Drive) Calls(method string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.calls[method]
}

// enter counts the call and returns an injected failure, if any. It must be
// called with d.mu held.
func (d *Drive) enter(ctx context.Context, method string) error {
	d.calls[method]++

	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := d.failures[method]; ok {
		delete(d.failures, method)
		return err
	}

	return nil
}

// Link returns a copy of a stored link.
func (d *Drive) Link(linkID string) (models.Link, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	link, ok := d.links[linkID]
	if !ok {
		return models.Link{}, false
	}
	return *link, true
}

// CorruptBlock flips one byte of a stored block ciphertext.
func (d *Drive) CorruptBlock(revisionID string, index int) error {
	return d.withBlock(revisionID, index, func(b *storedBlock) {
		b.data[len(b.data)/2] ^= 0xff
	})
}

// SetBlockHash overwrites the recorded hash of a block.
func (d *Drive) SetBlockHash(revisionID string, index int, hash []byte) error {
	return d.withBlock(revisionID, index, func(b *storedBlock) {
		b.hash = base64.StdEncoding.EncodeToString(hash)
	})
}

func (d *Drive) withBlock(revisionID string, index int, fn func(b *storedBlock)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	rev, ok := d.revisions[revisionID]
	if !ok {
		return fmt.Errorf("unknown revision %s", revisionID)
	}
	b, ok := rev.blocks[index]
	if !ok {
		return fmt.Errorf("unknown block %d", index)
	}

	fn(b)
	return nil
}

// SetRevisionSigner overwrites the signer address of a revision.
func (d *Drive) SetRevisionSigner(revisionID, email string) error {
	return d.withRevision(revisionID, func(rev *revision) { rev.signatureAddress = email })
}

// SetManifestSignature overwrites the manifest signature of a revision.
func (d *Drive) SetManifestSignature(revisionID, signature string) error {
	return d.withRevision(revisionID, func(rev *revision) { rev.manifestSignature = signature })
}

func (d *Drive) withRevision(revisionID string, fn func(rev *revision)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	rev, ok := d.revisions[revisionID]
	if !ok {
		return fmt.Errorf("unknown revision %s", revisionID)
	}

	fn(rev)
	d.syncActiveRevision(rev)
	return nil
}

// GetUser implements adapter.DriveAdapter.
func (d *Drive) GetUser(ctx context.Context) (models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.enter(ctx, "GetUser"); err != nil {
		return models.User{}, err
	}
	return d.user, nil
}

// GetAddresses implements adapter.DriveAdapter.
func (d *Drive) GetAddresses(ctx context.Context) ([]models.Address, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.enter(ctx, "GetAddresses"); err != nil {
		return nil, err
	}
	return slices.Clone(d.addresses), nil
}

// GetKeySalts implements adapter.DriveAdapter.
func (d *Drive) GetKeySalts(ctx context.Context) ([]models.KeySalt, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.enter(ctx, "GetKeySalts"); err != nil {
		return nil, err
	}
	return nil, nil
}

// ListVolumes implements adapter.DriveAdapter.
func (d *Drive) ListVolumes(ctx context.Context) ([]models.Volume, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.enter(ctx, "ListVolumes"); err != nil {
		return nil, err
	}
	return []models.Volume{d.volume}, nil
}

// GetShare implements adapter.DriveAdapter.
func (d *Drive) GetShare(ctx context.Context, shareID string) (models.Share, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.enter(ctx, "GetShare"); err != nil {
		return models.Share{}, err
	}
	if shareID != d.share.ShareID {
		return models.Share{}, fmt.Errorf("share %s: %w", shareID, adapter.ErrNotFound)
	}
	return d.share, nil
}

// GetLink implements adapter.DriveAdapter.
func (d *Drive) GetLink(ctx context.Context, shareID, linkID string) (models.Link, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.enter(ctx, "GetLink"); err != nil {
		return models.Link{}, err
	}
	link, ok := d.links[linkID]
	if !ok {
		return models.Link{}, fmt.Errorf("link %s: %w", linkID, adapter.ErrNotFound)
	}
	return *link, nil
}

// ListChildren implements adapter.DriveAdapter.
func (d *Drive) ListChildren(ctx context.Context, shareID, linkID string, page models.PageParams) ([]models.Link, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.enter(ctx, "ListChildren"); err != nil {
		return nil, err
	}
	if _, ok := d.links[linkID]; !ok {
		return nil, fmt.Errorf("link %s: %w", linkID, adapter.ErrNotFound)
	}

	var children []models.Link
	for _, id := range d.order {
		if link := d.links[id]; link.ParentLinkID == linkID && id != RootLinkID {
			children = append(children, *link)
		}
	}

	start := page.Page * page.PageSize
	if page.PageSize <= 0 || start >= len(children) {
		if page.PageSize <= 0 {
			return children, nil
		}
		return nil, nil
	}

	return children[start:min(start+page.PageSize, len(children))], nil
}

func (d *Drive) checkParent(parentID, hash string) error {
	parent, ok := d.links[parentID]
	if !ok {
		return fmt.Errorf("parent %s: %w", parentID, adapter.ErrNotFound)
	}
	if !parent.IsFolder() {
		return fmt.Errorf("parent %s is not a folder: %w", parentID, adapter.ErrBadRequest)
	}

	for _, link := range d.links {
		if link.ParentLinkID == parentID && link.Hash == hash && link.State != models.LinkStateTrashed {
			return fmt.Errorf("name already exists: %w", adapter.ErrConflict)
		}
	}

	return nil
}

// CreateFolder implements adapter.DriveAdapter.
func (d *Drive) CreateFolder(ctx context.Context, shareID string, req models.CreateFolderReq) (models.CreatedNode, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.enter(ctx, "CreateFolder"); err != nil {
		return models.CreatedNode{}, err
	}
	if err := d.checkParent(req.ParentLinkID, req.Hash); err != nil {
		return models.CreatedNode{}, err
	}

	id := d.newID("folder")
	d.store(&models.Link{
		LinkID:                  id,
		ParentLinkID:            req.ParentLinkID,
		Type:                    models.LinkTypeFolder,
		State:                   models.LinkStateActive,
		Name:                    req.Name,
		Hash:                    req.Hash,
		NodeKey:                 req.NodeKey,
		NodePassphrase:          req.NodePassphrase,
		NodePassphraseSignature: req.NodePassphraseSignature,
		SignatureEmail:          req.SignatureAddress,
		FolderProperties:        &models.FolderProperties{NodeHashKey: req.NodeHashKey},
	})

	return models.CreatedNode{ID: id}, nil
}

// CreateFile implements adapter.DriveAdapter.
func (d *Drive) CreateFile(ctx context.Context, shareID string, req models.CreateFileReq) (models.CreatedNode, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.enter(ctx, "CreateFile"); err != nil {
		return models.CreatedNode{}, err
	}
	if err := d.checkParent(req.ParentLinkID, req.Hash); err != nil {
		return models.CreatedNode{}, err
	}

	id := d.newID("file")
	revID := d.newID("revision")

	d.store(&models.Link{
		LinkID:                  id,
		ParentLinkID:            req.ParentLinkID,
		Type:                    models.LinkTypeFile,
		State:                   models.LinkStateDraft,
		Name:                    req.Name,
		Hash:                    req.Hash,
		MIMEType:                req.MIMEType,
		NodeKey:                 req.NodeKey,
		NodePassphrase:          req.NodePassphrase,
		NodePassphraseSignature: req.NodePassphraseSignature,
		SignatureEmail:          req.SignatureAddress,
		FileProperties: &models.FileProperties{
			ContentKeyPacket:          req.ContentKeyPacket,
			ContentKeyPacketSignature: req.ContentKeyPacketSignature,
		},
	})
	d.revisions[revID] = &revision{
		id:     revID,
		linkID: id,
		state:  models.RevisionStateDraft,
		blocks: make(map[int]*storedBlock),
	}

	return models.CreatedNode{ID: id, RevisionID: revID}, nil
}

func (d *Drive) draftRevision(linkID, revisionID string) (*revision, error) {
	rev, ok := d.revisions[revisionID]
	if !ok || rev.linkID != linkID {
		return nil, fmt.Errorf("revision %s: %w", revisionID, adapter.ErrNotFound)
	}
	if rev.state != models.RevisionStateDraft {
		return nil, fmt.Errorf("revision %s is committed: %w", revisionID, adapter.ErrConflict)
	}
	return rev, nil
}

// GetVerificationData implements adapter.DriveAdapter.
func (d *Drive) GetVerificationData(ctx context.Context, shareID, linkID, revisionID string) (models.VerificationData, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.enter(ctx, "GetVerificationData"); err != nil {
		return models.VerificationData{}, err
	}
	rev, err := d.draftRevision(linkID, revisionID)
	if err != nil {
		return models.VerificationData{}, err
	}

	if rev.code == nil {
		if rev.code, err = pgp.RandomToken(32); err != nil {
			return models.VerificationData{}, err
		}
	}

	return models.VerificationData{
		VerificationCode: base64.StdEncoding.EncodeToString(rev.code),
		ContentKeyPacket: d.links[linkID].FileProperties.ContentKeyPacket,
	}, nil
}

// RequestBlockUpload implements adapter.DriveAdapter.
func (d *Drive) RequestBlockUpload(ctx context.Context, req models.BlockUploadReq) ([]models.BlockUploadLink, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.enter(ctx, "RequestBlockUpload"); err != nil {
		return nil, err
	}
	rev, err := d.draftRevision(req.LinkID, req.RevisionID)
	if err != nil {
		return nil, err
	}
	if rev.code == nil {
		return nil, fmt.Errorf("no verification code requested: %w", adapter.ErrBadRequest)
	}

	links := make([]models.BlockUploadLink, 0, len(req.BlockList))
	for _, info := range req.BlockList {
		token, err := pgp.RandomToken(16)
		if err != nil {
			return nil, err
		}

		b := &storedBlock{
			index:        info.Index,
			revisionID:   rev.id,
			bareURL:      fmt.Sprintf("https://storage.test/%s/%d", rev.id, info.Index),
			token:        hex.EncodeToString(token),
			hash:         info.Hash,
			encSignature: info.EncSignature,
			verifier:     info.Verifier.Token,
		}
		rev.blocks[info.Index] = b
		d.storage[b.bareURL] = b

		links = append(links, models.BlockUploadLink{Token: b.token, BareURL: b.bareURL})
	}

	return links, nil
}

// UploadBlock implements adapter.DriveAdapter. The ciphertext must match
// the announced hash and verification token.
func (d *Drive) UploadBlock(ctx context.Context, link models.BlockUploadLink, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.enter(ctx, "UploadBlock"); err != nil {
		return err
	}
	b, ok := d.storage[link.BareURL]
	if !ok || b.token != link.Token {
		return fmt.Errorf("block %s: %w", link.BareURL, adapter.ErrAuthFailed)
	}

	sum := sha256.Sum256(data)
	if base64.StdEncoding.EncodeToString(sum[:]) != b.hash {
		return fmt.Errorf("block %d hash mismatch: %w", b.index, adapter.ErrBadRequest)
	}

	rev := d.revisions[b.revisionID]
	verifier := base64.StdEncoding.EncodeToString(crypto.VerificationToken(rev.code, data))
	if verifier != b.verifier {
		return fmt.Errorf("block %d verification failed: %w", b.index, adapter.ErrBadRequest)
	}

	b.data = bytes.Clone(data)
	b.uploaded = true

	return nil
}

// CommitRevision implements adapter.DriveAdapter.
func (d *Drive) CommitRevision(ctx context.Context, shareID, linkID, revisionID string, req models.CommitRevisionReq) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.enter(ctx, "CommitRevision"); err != nil {
		return err
	}
	rev, err := d.draftRevision(linkID, revisionID)
	if err != nil {
		return err
	}
	for _, b := range rev.blocks {
		if !b.uploaded {
			return fmt.Errorf("block %d not uploaded: %w", b.index, adapter.ErrBadRequest)
		}
	}

	rev.state = models.RevisionStateActive
	rev.manifestSignature = req.ManifestSignature
	rev.signatureAddress = req.SignatureAddress
	rev.xattr = req.XAttr

	d.links[linkID].State = models.LinkStateActive
	d.syncActiveRevision(rev)

	return nil
}

func (d *Drive) syncActiveRevision(rev *revision) {
	if rev.state != models.RevisionStateActive {
		return
	}

	link := d.links[rev.linkID]
	meta := d.revisionMetadata(rev)
	link.Size = meta.Size
	link.FileProperties.ActiveRevision = &meta
}

func (d *Drive) revisionMetadata(rev *revision) models.RevisionMetadata {
	var size int64
	for _, b := range rev.blocks {
		size += int64(len(b.data))
	}

	return models.RevisionMetadata{
		ID:                rev.id,
		State:             rev.state,
		Size:              size,
		ManifestSignature: rev.manifestSignature,
		SignatureAddress:  rev.signatureAddress,
	}
}

// GetRevision implements adapter.DriveAdapter.
func (d *Drive) GetRevision(ctx context.Context, shareID, linkID, revisionID string, page models.RevisionPageParams) (models.Revision, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.enter(ctx, "GetRevision"); err != nil {
		return models.Revision{}, err
	}
	rev, ok := d.revisions[revisionID]
	if !ok || rev.linkID != linkID {
		return models.Revision{}, fmt.Errorf("revision %s: %w", revisionID, adapter.ErrNotFound)
	}

	from := max(page.FromBlockIndex, 1)

	var blocks []models.Block
	for _, b := range rev.blocks {
		if b.index < from {
			continue
		}
		blocks = append(blocks, models.Block{
			Index:          b.index,
			BareURL:        b.bareURL,
			Token:          b.token,
			Hash:           b.hash,
			EncSignature:   b.encSignature,
			SignatureEmail: rev.signatureAddress,
		})
	}
	slices.SortFunc(blocks, func(a, b models.Block) int { return cmp.Compare(a.Index, b.Index) })

	if page.PageSize > 0 && len(blocks) > page.PageSize {
		blocks = blocks[:page.PageSize]
	}

	return models.Revision{
		RevisionMetadata: d.revisionMetadata(rev),
		XAttr:            rev.xattr,
		Blocks:           blocks,
	}, nil
}

// DownloadBlock implements adapter.DriveAdapter.
func (d *Drive) DownloadBlock(ctx context.Context, bareURL, token string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.enter(ctx, "DownloadBlock"); err != nil {
		return nil, err
	}
	b, ok := d.storage[bareURL]
	if !ok || !b.uploaded {
		return nil, fmt.Errorf("block %s: %w", bareURL, adapter.ErrNotFound)
	}
	if b.token != token {
		return nil, fmt.Errorf("block %s: %w", bareURL, adapter.ErrAuthFailed)
	}

	return bytes.Clone(b.data), nil
}
