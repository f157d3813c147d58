// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"cmp"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-drive-cli/internal/adapter"
	"github.com/MKhiriev/go-drive-cli/internal/chunker"
	"github.com/MKhiriev/go-drive-cli/internal/config"
	"github.com/MKhiriev/go-drive-cli/internal/crypto"
	"github.com/MKhiriev/go-drive-cli/internal/logger"
	"github.com/MKhiriev/go-drive-cli/internal/resolver"
	"github.com/MKhiriev/go-drive-cli/internal/workers"
	"github.com/MKhiriev/go-drive-cli/models"
)

const defaultMIMEType = "application/octet-stream"

// uploader runs the upload pipeline of one file:
//
//	Init → NodeRegistered → BlocksEncrypted → VerificationObtained →
//	BlocksUploaded → Finalized
type uploader struct {
	drive    adapter.DriveAdapter
	keys     *crypto.KeyChain
	nodes    *crypto.NodeDecryptor
	resolver *resolver.Resolver
	cfg      config.ClientTransfer
}

func newUploader(drive adapter.DriveAdapter, keys *crypto.KeyChain, nodes *crypto.NodeDecryptor, res *resolver.Resolver, cfg config.ClientTransfer) *uploader {
	return &uploader{drive: drive, keys: keys, nodes: nodes, resolver: res, cfg: cfg}
}

// uploadRun is the state of one upload.
type uploadRun struct {
	state      UploadState
	nodeID     string
	revisionID string
	log        *logger.Logger
}

func (r *uploadRun) advance(state UploadState) {
	r.state = state
	r.log.Debug().
		Str("state", state.String()).
		Str("node_id", r.nodeID).
		Msg("upload state changed")
}

func (r *uploadRun) fail(err error) error {
	return &UploadError{
		State:      r.state,
		NodeID:     r.nodeID,
		RevisionID: r.revisionID,
		Err:        mapContextError(err),
	}
}

// UploadFile encrypts localPath block by block and stores it as a new file
// at destinationPath.
func (u *uploader) UploadFile(ctx context.Context, localPath, destinationPath string, opts UploadOptions) (models.UploadResult, error) {
	run := &uploadRun{state: UploadInit, log: logger.FromContext(ctx)}

	info, err := os.Stat(localPath)
	if err != nil {
		return models.UploadResult{}, run.fail(fmt.Errorf("stat %s: %w", localPath, err))
	}
	if !info.Mode().IsRegular() {
		return models.UploadResult{}, run.fail(fmt.Errorf("%w: %s", ErrNotARegularFile, localPath))
	}
	if info.Size() == 0 {
		return models.UploadResult{}, run.fail(fmt.Errorf("%w: %s", ErrEmptyFile, localPath))
	}

	container, name, err := u.destination(ctx, destinationPath, filepath.Base(localPath))
	if err != nil {
		return models.UploadResult{}, run.fail(err)
	}

	address, err := u.keys.PrimaryAddress()
	if err != nil {
		return models.UploadResult{}, run.fail(err)
	}

	file, err := u.createFile(ctx, container, address, name)
	if err != nil {
		return models.UploadResult{}, run.fail(err)
	}
	run.nodeID, run.revisionID = file.node.ID, file.node.RevisionID
	run.advance(UploadNodeRegistered)

	blocks, err := u.encryptBlocks(ctx, localPath, info.Size(), file, address)
	if err != nil {
		return models.UploadResult{}, run.fail(err)
	}
	if err := checkBlockSizes(blocks, info.Size(), u.cfg.BlockSize); err != nil {
		return models.UploadResult{}, run.fail(fmt.Errorf("%s: %w", localPath, err))
	}
	run.advance(UploadBlocksEncrypted)

	code, err := u.verificationCode(ctx, container.ShareID, file.node)
	if err != nil {
		return models.UploadResult{}, run.fail(err)
	}
	run.advance(UploadVerificationObtained)

	if err := u.uploadBlocks(ctx, container.ShareID, file.node, address, blocks, code, opts.Progress); err != nil {
		return models.UploadResult{}, run.fail(err)
	}
	run.advance(UploadBlocksUploaded)

	if err := u.commit(ctx, container.ShareID, file, address, blocks, info); err != nil {
		return models.UploadResult{}, run.fail(err)
	}
	run.advance(UploadFinalized)

	return models.UploadResult{
		NodeID:     file.node.ID,
		RevisionID: file.node.RevisionID,
		Size:       info.Size(),
		BlockCount: len(blocks),
	}, nil
}

// destination returns the folder receiving the upload and the new file
// name. An existing folder at destinationPath receives the file under
// localName.
func (u *uploader) destination(ctx context.Context, destinationPath, localName string) (*resolver.Resolved, string, error) {
	folder, err := u.resolver.Resolve(ctx, destinationPath)
	switch {
	case err == nil && folder.Link.IsFolder():
		return folder, localName, checkName(localName)
	case err == nil:
		return nil, "", fmt.Errorf("%s: %w", folder.Path, adapter.ErrConflict)
	case !errors.Is(err, resolver.ErrPathNotFound):
		return nil, "", err
	}

	parentPath, name := resolver.SplitParent(destinationPath)
	if err := checkName(name); err != nil {
		return nil, "", err
	}

	folder, err = u.resolver.ResolveFolder(ctx, parentPath)
	if err != nil {
		return nil, "", err
	}

	return folder, name, nil
}

func checkName(name string) error {
	if !resolver.ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// newFile is a registered file node together with its fresh key material.
type newFile struct {
	node       models.CreatedNode
	keys       *crypto.NodeKeys
	contentKey *crypto.ContentKey
}

// createFile generates the node and content keys and registers the file
// with its first revision.
func (u *uploader) createFile(ctx context.Context, container *resolver.Resolved, address *crypto.AddressKeys, name string) (*newFile, error) {
	if err := checkpoint(ctx); err != nil {
		return nil, err
	}

	hashKey, err := u.nodes.DecryptNodeHashKey(container.Context, container.Link)
	if err != nil {
		return nil, err
	}

	nodeKeys, err := crypto.GenerateNodeKeys(container.Context.KeyRing, address.KeyRing)
	if err != nil {
		return nil, err
	}

	encName, err := crypto.EncryptName(container.Context.KeyRing, address.KeyRing, name)
	if err != nil {
		return nil, err
	}

	encMIME, err := crypto.EncryptMIMEType(container.Context.KeyRing, address.KeyRing, mimeTypeOf(name))
	if err != nil {
		return nil, err
	}

	contentKey, err := crypto.GenerateContentKey(nodeKeys.Context.KeyRing)
	if err != nil {
		return nil, err
	}

	node, err := u.drive.CreateFile(ctx, container.ShareID, models.CreateFileReq{
		ParentLinkID:              container.LinkID,
		Name:                      encName,
		Hash:                      crypto.NameHash(hashKey, name),
		MIMEType:                  encMIME,
		NodeKey:                   nodeKeys.ArmoredKey,
		NodePassphrase:            nodeKeys.EncryptedPassphrase,
		NodePassphraseSignature:   nodeKeys.PassphraseSignature,
		SignatureAddress:          address.Address.Email,
		ContentKeyPacket:          contentKey.KeyPacket,
		ContentKeyPacketSignature: contentKey.Signature,
	})
	if err != nil {
		return nil, fmt.Errorf("create file %s: %w", path.Join(container.Path, name), err)
	}

	return &newFile{node: node, keys: nodeKeys, contentKey: contentKey}, nil
}

func mimeTypeOf(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return defaultMIMEType
}

// encryptBlocks reads the file sequentially and encrypts its blocks on a
// bounded pool. The result is sorted by index.
func (u *uploader) encryptBlocks(ctx context.Context, localPath string, size int64, file *newFile, address *crypto.AddressKeys) ([]*crypto.EncryptedBlock, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	chunks, err := chunker.New(f, u.cfg.BlockSize)
	if err != nil {
		return nil, err
	}

	cipher := crypto.NewBlockCipher(file.contentKey.SessionKey, file.keys.Context.KeyRing, address.KeyRing)
	pool := workers.NewPool(ctx, u.cfg.EncryptConcurrency)

	var (
		mu      sync.Mutex
		blocks  = make([]*crypto.EncryptedBlock, 0, chunker.BlockCount(size, u.cfg.BlockSize))
		readErr error
	)

	for {
		if err := pool.Context().Err(); err != nil {
			break
		}

		block, err := chunks.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			readErr = err
			break
		}

		pool.Go(func(ctx context.Context) error {
			encrypted, err := cipher.Encrypt(block.Index, block.Data)
			if err != nil {
				return err
			}

			mu.Lock()
			blocks = append(blocks, encrypted)
			mu.Unlock()
			return nil
		})
	}

	if err := pool.Wait(); err != nil {
		return nil, err
	}
	if readErr != nil {
		return nil, readErr
	}
	if err := checkpoint(ctx); err != nil {
		return nil, err
	}

	slices.SortFunc(blocks, func(a, b *crypto.EncryptedBlock) int {
		return cmp.Compare(a.Index, b.Index)
	})

	return blocks, nil
}

// checkBlockSizes compares the encrypted blocks with the layout expected for
// a file of size bytes. A mismatch means the file changed while it was read.
func checkBlockSizes(blocks []*crypto.EncryptedBlock, size int64, blockSize int) error {
	got := make([]int, len(blocks))
	for i, b := range blocks {
		got[i] = b.PlainSize
	}

	want := chunker.BlockSizes(size, blockSize)
	if !slices.Equal(got, want) {
		return fmt.Errorf("%w: read %d blocks, expected %d", ErrFileChanged, len(got), len(want))
	}

	return nil
}

func (u *uploader) verificationCode(ctx context.Context, shareID string, node models.CreatedNode) ([]byte, error) {
	data, err := u.drive.GetVerificationData(ctx, shareID, node.ID, node.RevisionID)
	if err != nil {
		return nil, fmt.Errorf("get verification data: %w", err)
	}

	code, err := base64.StdEncoding.DecodeString(data.VerificationCode)
	if err != nil {
		return nil, fmt.Errorf("decode verification code: %w", err)
	}

	return code, nil
}

// uploadBlocks registers every block with its hash, signature and
// verification token and sends the ciphertexts to the returned links.
func (u *uploader) uploadBlocks(ctx context.Context, shareID string, node models.CreatedNode, address *crypto.AddressKeys, blocks []*crypto.EncryptedBlock, code []byte, progress ProgressFunc) error {
	infos := make([]models.BlockUploadInfo, len(blocks))
	for i, b := range blocks {
		infos[i] = models.BlockUploadInfo{
			Index:        b.Index,
			Size:         int64(len(b.Ciphertext)),
			EncSignature: b.EncSignature,
			Hash:         base64.StdEncoding.EncodeToString(b.Hash),
			Verifier: models.BlockVerifier{
				Token: base64.StdEncoding.EncodeToString(crypto.VerificationToken(code, b.Ciphertext)),
			},
		}
	}

	links, err := u.drive.RequestBlockUpload(ctx, models.BlockUploadReq{
		AddressID:  address.Address.ID,
		ShareID:    shareID,
		LinkID:     node.ID,
		RevisionID: node.RevisionID,
		BlockList:  infos,
	})
	if err != nil {
		return fmt.Errorf("request block upload: %w", err)
	}
	if len(links) != len(blocks) {
		return fmt.Errorf("%w: got %d links for %d blocks", adapter.ErrUploadLinks, len(links), len(blocks))
	}

	pool := workers.NewPool(ctx, u.cfg.EncryptConcurrency)
	var done atomic.Int64

	for i, b := range blocks {
		link := links[i]
		pool.Go(func(ctx context.Context) error {
			if err := u.drive.UploadBlock(ctx, link, b.Ciphertext); err != nil {
				return fmt.Errorf("upload block %d: %w", b.Index, err)
			}
			if progress != nil {
				progress(int(done.Add(1)), len(blocks))
			}
			return nil
		})
	}

	return pool.Wait()
}

// commit signs the manifest and finalizes the revision with the encrypted
// extended attributes.
func (u *uploader) commit(ctx context.Context, shareID string, file *newFile, address *crypto.AddressKeys, blocks []*crypto.EncryptedBlock, info os.FileInfo) error {
	if err := checkpoint(ctx); err != nil {
		return err
	}

	hashes := make([]crypto.BlockHash, len(blocks))
	sizes := make([]int, len(blocks))
	for i, b := range blocks {
		hashes[i] = crypto.BlockHash{Index: b.Index, Hash: b.Hash}
		sizes[i] = b.PlainSize
	}

	signature, err := crypto.SignManifest(address.KeyRing, crypto.BuildManifest(hashes))
	if err != nil {
		return err
	}

	xattr, err := crypto.EncryptXAttr(file.keys.Context.KeyRing, address.KeyRing, models.XAttr{
		Common: models.XAttrCommon{
			ModificationTime: info.ModTime().UTC().Format(time.RFC3339),
			Size:             info.Size(),
			BlockSizes:       sizes,
		},
	})
	if err != nil {
		return err
	}

	err = u.drive.CommitRevision(ctx, shareID, file.node.ID, file.node.RevisionID, models.CommitRevisionReq{
		ManifestSignature: signature,
		SignatureAddress:  address.Address.Email,
		XAttr:             xattr,
	})
	if err != nil {
		return fmt.Errorf("commit revision: %w", err)
	}

	return nil
}
