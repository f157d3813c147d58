// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"cmp"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"

	pgp "github.com/ProtonMail/gopenpgp/v2/crypto"

	"github.com/MKhiriev/go-drive-cli/internal/adapter"
	"github.com/MKhiriev/go-drive-cli/internal/config"
	"github.com/MKhiriev/go-drive-cli/internal/crypto"
	"github.com/MKhiriev/go-drive-cli/internal/logger"
	"github.com/MKhiriev/go-drive-cli/internal/resolver"
	"github.com/MKhiriev/go-drive-cli/internal/workers"
	"github.com/MKhiriev/go-drive-cli/models"
)

// RevisionPageSize is the number of blocks requested per revision listing.
const RevisionPageSize = 150

// downloader fetches, verifies and reassembles the active revision of a
// file.
type downloader struct {
	drive    adapter.DriveAdapter
	keys     *crypto.KeyChain
	nodes    *crypto.NodeDecryptor
	resolver *resolver.Resolver
	cfg      config.ClientTransfer
}

func newDownloader(drive adapter.DriveAdapter, keys *crypto.KeyChain, nodes *crypto.NodeDecryptor, res *resolver.Resolver, cfg config.ClientTransfer) *downloader {
	return &downloader{drive: drive, keys: keys, nodes: nodes, resolver: res, cfg: cfg}
}

// DownloadFile writes the content of sourcePath to outputPath. Nothing is
// written unless every block arrived and passed verification.
func (d *downloader) DownloadFile(ctx context.Context, sourcePath, outputPath string, opts DownloadOptions) (models.DownloadResult, error) {
	log := logger.FromContext(ctx)

	node, err := d.resolver.Resolve(ctx, sourcePath)
	if err != nil {
		return models.DownloadResult{}, mapContextError(err)
	}
	if node.Link.IsFolder() {
		return models.DownloadResult{}, fmt.Errorf("%w: %s", ErrNotAFile, node.Path)
	}

	props := node.Link.FileProperties
	if props == nil || props.ActiveRevision == nil || props.ContentKeyPacket == "" {
		return models.DownloadResult{}, fmt.Errorf("%w: %s", ErrNoActiveRevision, node.Path)
	}

	sessionKey, err := d.nodes.DecryptContentKey(node.Context, node.Link)
	if err != nil {
		return models.DownloadResult{}, err
	}

	revision, err := d.revision(ctx, node, props.ActiveRevision.ID)
	if err != nil {
		return models.DownloadResult{}, mapContextError(err)
	}

	verify := !opts.SkipVerification
	signer, signerIsPrimary := d.signer(revision.SignatureAddress)

	// block signatures are checked only against our own address
	var blockVerifier *pgp.KeyRing
	if verify && signerIsPrimary {
		blockVerifier = signer.KeyRing
	}

	cipher := crypto.NewBlockCipher(sessionKey, node.Context.KeyRing, nil)
	plaintexts, hashes, err := d.fetchBlocks(ctx, cipher, revision.Blocks, verify, blockVerifier, opts.Progress)
	if err != nil {
		return models.DownloadResult{}, mapContextError(err)
	}

	verified := false
	switch {
	case !verify:
		log.Warn().Str("path", node.Path).Msg("verification skipped, content is not authenticated")
	case !signerIsPrimary:
		log.Warn().
			Str("path", node.Path).
			Str("signer", revision.SignatureAddress).
			Msg("revision signed by another address, manifest not verified")
	default:
		if err := crypto.VerifyManifest(signer.KeyRing, crypto.BuildManifest(hashes), revision.ManifestSignature); err != nil {
			return models.DownloadResult{}, fmt.Errorf("%s: %w", node.Path, err)
		}
		verified = true
	}

	if err := checkpoint(ctx); err != nil {
		return models.DownloadResult{}, err
	}

	target, err := outputTarget(outputPath, node.Name)
	if err != nil {
		return models.DownloadResult{}, err
	}

	size, err := writeAtomically(target, plaintexts)
	if err != nil {
		return models.DownloadResult{}, err
	}

	return models.DownloadResult{
		OutputPath: target,
		Size:       size,
		BlockCount: len(plaintexts),
		Verified:   verified,
	}, nil
}

// revision fetches the revision metadata and pages through its blocks.
func (d *downloader) revision(ctx context.Context, node *resolver.Resolved, revisionID string) (models.Revision, error) {
	var (
		revision models.Revision
		from     = 1
	)

	for first := true; ; first = false {
		page, err := d.drive.GetRevision(ctx, node.ShareID, node.LinkID, revisionID, models.RevisionPageParams{
			FromBlockIndex: from,
			PageSize:       RevisionPageSize,
		})
		if err != nil {
			return models.Revision{}, fmt.Errorf("get revision %s: %w", revisionID, err)
		}

		if first {
			revision = page
			revision.Blocks = nil
		}
		revision.Blocks = append(revision.Blocks, page.Blocks...)

		if len(page.Blocks) < RevisionPageSize {
			break
		}
		last := from
		for _, b := range page.Blocks {
			last = max(last, b.Index)
		}
		from = last + 1
	}

	blocks, err := orderBlocks(revision.Blocks)
	if err != nil {
		return models.Revision{}, fmt.Errorf("revision %s: %w", revisionID, err)
	}
	revision.Blocks = blocks

	return revision, nil
}

// orderBlocks sorts blocks by index and checks that they number 1..N
// without gaps or repeats.
func orderBlocks(blocks []models.Block) ([]models.Block, error) {
	ordered := slices.Clone(blocks)
	slices.SortStableFunc(ordered, func(a, b models.Block) int { return cmp.Compare(a.Index, b.Index) })

	for i, b := range ordered {
		if b.Index != i+1 {
			return nil, fmt.Errorf("%w: expected block %d, got %d", crypto.ErrBlockIntegrity, i+1, b.Index)
		}
	}

	return ordered, nil
}

// signer returns the primary address and whether it signed the revision.
func (d *downloader) signer(signatureAddress string) (*crypto.AddressKeys, bool) {
	primary, err := d.keys.PrimaryAddress()
	if err != nil {
		return nil, false
	}

	return primary, crypto.SignerMatches(signatureAddress, primary.Address.Email)
}

// fetchBlocks downloads and decrypts blocks on a bounded pool. Plaintexts
// and hashes are returned in the order of blocks. Every hash is decoded
// before the first download starts.
func (d *downloader) fetchBlocks(ctx context.Context, cipher *crypto.BlockCipher, blocks []models.Block, verify bool, verifier *pgp.KeyRing, progress ProgressFunc) ([][]byte, []crypto.BlockHash, error) {
	plaintexts := make([][]byte, len(blocks))
	hashes := make([]crypto.BlockHash, len(blocks))

	for i, b := range blocks {
		hash, err := base64.StdEncoding.DecodeString(b.Hash)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: block %d hash: %w", crypto.ErrBlockIntegrity, b.Index, err)
		}
		hashes[i] = crypto.BlockHash{Index: b.Index, Hash: hash}
	}

	pool := workers.NewPool(ctx, d.cfg.DownloadConcurrency)
	var done atomic.Int64

	for i, b := range blocks {
		hash := hashes[i].Hash
		pool.Go(func(ctx context.Context) error {
			ciphertext, err := d.drive.DownloadBlock(ctx, b.BareURL, b.Token)
			if err != nil {
				return fmt.Errorf("download block %d: %w", b.Index, err)
			}

			plain, err := cipher.Decrypt(b.Index, ciphertext, hash, verify)
			if err != nil {
				return err
			}

			if verifier != nil && b.EncSignature != "" {
				if err := cipher.VerifySignature(b.Index, plain, b.EncSignature, verifier); err != nil {
					return err
				}
			}

			plaintexts[i] = plain
			if progress != nil {
				progress(int(done.Add(1)), len(blocks))
			}
			return nil
		})
	}

	if err := pool.Wait(); err != nil {
		return nil, nil, err
	}

	return plaintexts, hashes, nil
}

// outputTarget places the file inside outputPath when it is a directory.
func outputTarget(outputPath, name string) (string, error) {
	info, err := os.Stat(outputPath)
	switch {
	case err == nil && info.IsDir():
		return filepath.Join(outputPath, name), nil
	case err == nil || errors.Is(err, os.ErrNotExist):
		return outputPath, nil
	default:
		return "", fmt.Errorf("stat %s: %w", outputPath, err)
	}
}

// writeAtomically writes blocks in order to a temporary file next to target
// and renames it into place.
func writeAtomically(target string, blocks [][]byte) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.part")
	if err != nil {
		return 0, fmt.Errorf("create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	var size int64
	for _, block := range blocks {
		n, err := tmp.Write(block)
		size += int64(n)
		if err != nil {
			tmp.Close()
			return 0, fmt.Errorf("write %s: %w", tmp.Name(), err)
		}
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		return 0, fmt.Errorf("rename into %s: %w", target, err)
	}

	return size, nil
}
