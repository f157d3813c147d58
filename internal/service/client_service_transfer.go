// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"cmp"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"slices"

	"github.com/MKhiriev/go-drive-cli/internal/adapter"
	"github.com/MKhiriev/go-drive-cli/internal/config"
	"github.com/MKhiriev/go-drive-cli/internal/crypto"
	"github.com/MKhiriev/go-drive-cli/internal/logger"
	"github.com/MKhiriev/go-drive-cli/internal/resolver"
	"github.com/MKhiriev/go-drive-cli/internal/store"
	"github.com/MKhiriev/go-drive-cli/internal/utils"
	"github.com/MKhiriev/go-drive-cli/models"
)

type transferService struct {
	drive    adapter.DriveAdapter
	keys     *crypto.KeyChain
	nodes    *crypto.NodeDecryptor
	resolver *resolver.Resolver

	uploader   *uploader
	downloader *downloader

	history store.TransferHistoryRepository
	ids     *utils.UUIDGenerator
	logger  *logger.Logger
}

// NewTransferService wires the key chain, the node decryptor and the
// resolver over drive. history may be nil, in which case transfers are not
// recorded.
func NewTransferService(drive adapter.DriveAdapter, history store.TransferHistoryRepository, cfg config.ClientTransfer, log *logger.Logger) TransferService {
	cfg = withTransferDefaults(cfg)

	keys := crypto.NewKeyChain(drive, log)
	nodes := crypto.NewNodeDecryptor(keys, log)
	res := resolver.New(drive, nodes, log)

	return &transferService{
		drive:      drive,
		keys:       keys,
		nodes:      nodes,
		resolver:   res,
		uploader:   newUploader(drive, keys, nodes, res, cfg),
		downloader: newDownloader(drive, keys, nodes, res, cfg),
		history:    history,
		ids:        utils.NewUUIDGenerator(),
		logger:     log,
	}
}

func withTransferDefaults(cfg config.ClientTransfer) config.ClientTransfer {
	if cfg.BlockSize <= 0 {
		cfg.BlockSize = config.DefaultBlockSize
	}
	if cfg.EncryptConcurrency <= 0 {
		cfg.EncryptConcurrency = config.DefaultEncryptConcurrency
	}
	if cfg.DownloadConcurrency <= 0 {
		cfg.DownloadConcurrency = config.DefaultDownloadConcurrency
	}
	return cfg
}

// operation tags ctx and the returned logger with a fresh operation id.
func (s *transferService) operation(ctx context.Context, op string) (context.Context, *logger.Logger, string) {
	id := s.ids.Generate()
	ctx = utils.WithOperationID(ctx, id)
	ctx, log := s.logger.WithOperation(ctx, op, id)
	return ctx, log, id
}

func (s *transferService) InitializeKeys(ctx context.Context, password []byte) error {
	ctx, log, _ := s.operation(ctx, "initialize_keys")

	if err := s.keys.Initialize(ctx, password); err != nil {
		log.Err(err).Msg("key initialization failed")
		return mapContextError(err)
	}

	return nil
}

func (s *transferService) ResolvePath(ctx context.Context, p string) (models.NodeIdentity, error) {
	ctx, _, _ = s.operation(ctx, "resolve")

	node, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return models.NodeIdentity{}, mapContextError(err)
	}

	return node.Identity(), nil
}

func (s *transferService) UploadFile(ctx context.Context, localPath, destinationPath string, opts UploadOptions) (models.UploadResult, error) {
	ctx, log, id := s.operation(ctx, "upload")

	log.Info().
		Str("local_path", localPath).
		Str("remote_path", destinationPath).
		Msg("upload started")

	result, err := s.uploader.UploadFile(ctx, localPath, destinationPath, opts)
	if err != nil {
		log.Err(err).Msg("upload failed")
		return result, err
	}

	log.Info().
		Str("node_id", result.NodeID).
		Int64("size", result.Size).
		Int("blocks", result.BlockCount).
		Msg("upload finished")

	s.record(ctx, models.TransferRecord{
		ID:         id,
		Kind:       models.TransferUpload,
		LocalPath:  absPath(localPath),
		RemotePath: resolver.NormalizePath(destinationPath),
		NodeID:     result.NodeID,
		RevisionID: result.RevisionID,
		Size:       result.Size,
		BlockCount: result.BlockCount,
		Verified:   true,
	})

	return result, nil
}

func (s *transferService) DownloadFile(ctx context.Context, sourcePath, outputPath string, opts DownloadOptions) (models.DownloadResult, error) {
	ctx, log, id := s.operation(ctx, "download")

	log.Info().
		Str("remote_path", sourcePath).
		Str("output_path", outputPath).
		Bool("skip_verification", opts.SkipVerification).
		Msg("download started")

	result, err := s.downloader.DownloadFile(ctx, sourcePath, outputPath, opts)
	if err != nil {
		log.Err(err).Msg("download failed")
		return result, err
	}

	log.Info().
		Str("output_path", result.OutputPath).
		Int64("size", result.Size).
		Int("blocks", result.BlockCount).
		Bool("verified", result.Verified).
		Msg("download finished")

	s.record(ctx, models.TransferRecord{
		ID:         id,
		Kind:       models.TransferDownload,
		LocalPath:  absPath(result.OutputPath),
		RemotePath: resolver.NormalizePath(sourcePath),
		Size:       result.Size,
		BlockCount: result.BlockCount,
		Verified:   result.Verified,
	})

	return result, nil
}

// record stores a finished transfer. A failure is logged and does not fail
// the transfer.
func (s *transferService) record(ctx context.Context, rec models.TransferRecord) {
	if s.history == nil {
		return
	}

	if err := s.history.SaveTransfer(ctx, rec); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("failed to record transfer history")
	}
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func (s *transferService) CreateFolder(ctx context.Context, parentPath, name string) (models.NodeIdentity, error) {
	ctx, log, _ := s.operation(ctx, "mkdir")

	if err := checkName(name); err != nil {
		return models.NodeIdentity{}, err
	}

	parent, err := s.resolver.ResolveFolder(ctx, parentPath)
	if err != nil {
		return models.NodeIdentity{}, mapContextError(err)
	}

	address, err := s.keys.PrimaryAddress()
	if err != nil {
		return models.NodeIdentity{}, err
	}

	parentHashKey, err := s.nodes.DecryptNodeHashKey(parent.Context, parent.Link)
	if err != nil {
		return models.NodeIdentity{}, err
	}

	nodeKeys, err := crypto.GenerateNodeKeys(parent.Context.KeyRing, address.KeyRing)
	if err != nil {
		return models.NodeIdentity{}, err
	}

	encName, err := crypto.EncryptName(parent.Context.KeyRing, address.KeyRing, name)
	if err != nil {
		return models.NodeIdentity{}, err
	}

	_, armoredHashKey, err := crypto.GenerateNodeHashKey(nodeKeys.Context.KeyRing, address.KeyRing)
	if err != nil {
		return models.NodeIdentity{}, err
	}

	created, err := s.drive.CreateFolder(ctx, parent.ShareID, models.CreateFolderReq{
		ParentLinkID:            parent.LinkID,
		Name:                    encName,
		Hash:                    crypto.NameHash(parentHashKey, name),
		NodeKey:                 nodeKeys.ArmoredKey,
		NodeHashKey:             armoredHashKey,
		NodePassphrase:          nodeKeys.EncryptedPassphrase,
		NodePassphraseSignature: nodeKeys.PassphraseSignature,
		SignatureAddress:        address.Address.Email,
	})
	if err != nil {
		return models.NodeIdentity{}, mapContextError(fmt.Errorf("create folder %s: %w", path.Join(parent.Path, name), err))
	}

	identity := models.NodeIdentity{
		ShareID: parent.ShareID,
		LinkID:  created.ID,
		Type:    models.LinkTypeFolder,
		Path:    path.Join(parent.Path, name),
	}
	log.Info().Str("path", identity.Path).Str("link_id", identity.LinkID).Msg("folder created")

	return identity, nil
}

func (s *transferService) ListFolder(ctx context.Context, p string) ([]models.NodeEntry, error) {
	ctx, log, _ := s.operation(ctx, "list")

	folder, err := s.resolver.ResolveFolder(ctx, p)
	if err != nil {
		return nil, mapContextError(err)
	}

	children, err := s.resolver.Children(ctx, folder)
	if err != nil {
		return nil, mapContextError(err)
	}

	entries := make([]models.NodeEntry, 0, len(children))
	for _, child := range children {
		entry := models.NodeEntry{
			LinkID: child.Link.LinkID,
			Name:   child.Name,
			Type:   child.Link.Type,
			Size:   child.Link.Size,
		}

		if child.Link.MIMEType != "" {
			mimeType, err := s.nodes.DecryptMIMEType(folder.Context, child.Link.MIMEType)
			if err != nil {
				log.Warn().Err(err).Str("link_id", child.Link.LinkID).Msg("cannot decrypt MIME type")
			}
			entry.MIMEType = mimeType
		}

		entries = append(entries, entry)
	}

	slices.SortFunc(entries, func(a, b models.NodeEntry) int {
		if a.Type != b.Type {
			return cmp.Compare(a.Type, b.Type)
		}
		return cmp.Compare(a.Name, b.Name)
	})

	return entries, nil
}

func (s *transferService) History(ctx context.Context, filter models.TransferFilter) ([]models.TransferRecord, error) {
	if s.history == nil {
		return nil, nil
	}

	return s.history.ListTransfers(ctx, filter)
}

func (s *transferService) ClearCache() {
	s.resolver.Reset()
	s.nodes.Clear()
	s.keys.Clear()

	s.logger.Debug().Msg("key material cleared")
}
