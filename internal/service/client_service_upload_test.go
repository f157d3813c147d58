package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-drive-cli/internal/adapter"
	"github.com/MKhiriev/go-drive-cli/internal/config"
	"github.com/MKhiriev/go-drive-cli/internal/crypto"
	"github.com/MKhiriev/go-drive-cli/internal/drivetest"
	"github.com/MKhiriev/go-drive-cli/internal/resolver"
	"github.com/MKhiriev/go-drive-cli/models"
)

func TestUploadDownload_RoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.ClientTransfer
		size       int
		wantBlocks int
	}{
		{name: "single byte", cfg: smallBlocks(), size: 1, wantBlocks: 1},
		{name: "exactly one block", cfg: smallBlocks(), size: testBlockSize, wantBlocks: 1},
		{name: "one byte over a block", cfg: smallBlocks(), size: testBlockSize + 1, wantBlocks: 2},
		{name: "several blocks", cfg: smallBlocks(), size: 7*testBlockSize + 100, wantBlocks: 8},
		{name: "default block size", cfg: config.ClientTransfer{}, size: 10 << 20, wantBlocks: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.cfg, nil)
			ctx := context.Background()

			data := randomBytes(t, tt.size)
			local := env.writeLocal(t, "payload.bin", data)

			up, err := env.svc.UploadFile(ctx, local, "/payload.bin", UploadOptions{})
			require.NoError(t, err)
			assert.Equal(t, int64(tt.size), up.Size)
			assert.Equal(t, tt.wantBlocks, up.BlockCount)
			assert.NotEmpty(t, up.NodeID)
			assert.NotEmpty(t, up.RevisionID)

			out := filepath.Join(env.dir, "downloaded.bin")
			down, err := env.svc.DownloadFile(ctx, "/payload.bin", out, DownloadOptions{})
			require.NoError(t, err)
			assert.Equal(t, out, down.OutputPath)
			assert.Equal(t, int64(tt.size), down.Size)
			assert.Equal(t, tt.wantBlocks, down.BlockCount)
			assert.True(t, down.Verified)

			assert.Equal(t, data, env.readLocal(t, out))
		})
	}
}

func TestUploadFile_KeepsLocalNameInFolder(t *testing.T) {
	env := newTestEnv(t, smallBlocks(), nil)
	ctx := context.Background()

	local := env.writeLocal(t, "report.txt", []byte("quarterly numbers"))

	_, err := env.svc.UploadFile(ctx, local, "/", UploadOptions{})
	require.NoError(t, err)

	node, err := env.svc.ResolvePath(ctx, "/report.txt")
	require.NoError(t, err)
	assert.Equal(t, models.LinkTypeFile, node.Type)
	assert.Equal(t, "/report.txt", node.Path)
}

func TestUploadFile_IntoSubfolderUnderNewName(t *testing.T) {
	env := newTestEnv(t, smallBlocks(), nil)
	ctx := context.Background()

	_, err := env.svc.CreateFolder(ctx, "/", "docs")
	require.NoError(t, err)

	local := env.writeLocal(t, "draft.md", []byte("# notes"))
	up, err := env.svc.UploadFile(ctx, local, "/docs/final.md", UploadOptions{})
	require.NoError(t, err)

	node, err := env.svc.ResolvePath(ctx, "/docs/final.md")
	require.NoError(t, err)
	assert.Equal(t, up.NodeID, node.LinkID)

	_, err = env.svc.ResolvePath(ctx, "/docs/draft.md")
	assert.ErrorIs(t, err, resolver.ErrPathNotFound)
}

func TestUploadFile_EmptyFile(t *testing.T) {
	env := newTestEnv(t, smallBlocks(), nil)

	local := env.writeLocal(t, "empty.txt", nil)

	_, err := env.svc.UploadFile(context.Background(), local, "/", UploadOptions{})
	require.ErrorIs(t, err, ErrEmptyFile)

	var upErr *UploadError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, UploadInit, upErr.State)
	assert.Empty(t, upErr.NodeID)
	assert.Zero(t, env.drive.Calls("CreateFile"))
}

func TestUploadFile_Directory(t *testing.T) {
	env := newTestEnv(t, smallBlocks(), nil)

	_, err := env.svc.UploadFile(context.Background(), env.dir, "/", UploadOptions{})
	assert.ErrorIs(t, err, ErrNotARegularFile)
}

func TestUploadFile_MissingLocalFile(t *testing.T) {
	env := newTestEnv(t, smallBlocks(), nil)

	_, err := env.svc.UploadFile(context.Background(), filepath.Join(env.dir, "nope"), "/", UploadOptions{})
	require.Error(t, err)
	assert.Zero(t, env.drive.Calls("CreateFile"))
}

func TestUploadFile_Conflicts(t *testing.T) {
	env := newTestEnv(t, smallBlocks(), nil)
	ctx := context.Background()

	local := env.writeLocal(t, "a.txt", []byte("first"))
	_, err := env.svc.UploadFile(ctx, local, "/", UploadOptions{})
	require.NoError(t, err)

	t.Run("same name in folder", func(t *testing.T) {
		_, err := env.svc.UploadFile(ctx, local, "/", UploadOptions{})
		assert.ErrorIs(t, err, adapter.ErrConflict)
	})

	t.Run("explicit path of existing file", func(t *testing.T) {
		_, err := env.svc.UploadFile(ctx, local, "/a.txt", UploadOptions{})
		assert.ErrorIs(t, err, adapter.ErrConflict)
	})
}

func TestUploadFile_MissingParent(t *testing.T) {
	env := newTestEnv(t, smallBlocks(), nil)

	local := env.writeLocal(t, "a.txt", []byte("data"))

	_, err := env.svc.UploadFile(context.Background(), local, "/nope/a.txt", UploadOptions{})
	assert.ErrorIs(t, err, resolver.ErrPathNotFound)
	assert.Zero(t, env.drive.Calls("CreateFile"))
}

func TestUploadFile_ParentIsFile(t *testing.T) {
	env := newTestEnv(t, smallBlocks(), nil)
	ctx := context.Background()

	local := env.writeLocal(t, "a.txt", []byte("data"))
	_, err := env.svc.UploadFile(ctx, local, "/", UploadOptions{})
	require.NoError(t, err)

	_, err = env.svc.UploadFile(ctx, local, "/a.txt/b.txt", UploadOptions{})
	assert.ErrorIs(t, err, resolver.ErrNotAFolder)
}

func TestUploadFile_BlockUploadFailureLeavesDraft(t *testing.T) {
	env := newTestEnv(t, smallBlocks(), nil)
	ctx := context.Background()

	storageErr := errors.New("storage unavailable")
	env.drive.FailOn("UploadBlock", storageErr)

	local := env.writeLocal(t, "big.bin", randomBytes(t, 3*testBlockSize))

	_, err := env.svc.UploadFile(ctx, local, "/", UploadOptions{})
	require.ErrorIs(t, err, storageErr)

	var upErr *UploadError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, UploadVerificationObtained, upErr.State)
	assert.NotEmpty(t, upErr.NodeID)
	assert.NotEmpty(t, upErr.RevisionID)
	assert.Contains(t, upErr.Error(), upErr.NodeID)
	assert.Zero(t, env.drive.Calls("CommitRevision"))

	link, ok := env.drive.Link(upErr.NodeID)
	require.True(t, ok)
	assert.Equal(t, models.LinkStateDraft, link.State)

	entries, err := env.svc.ListFolder(ctx, "/")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadFile_CommitFailure(t *testing.T) {
	env := newTestEnv(t, smallBlocks(), nil)

	env.drive.FailOn("CommitRevision", adapter.ErrServer)

	local := env.writeLocal(t, "a.bin", randomBytes(t, 10))

	_, err := env.svc.UploadFile(context.Background(), local, "/", UploadOptions{})
	require.ErrorIs(t, err, adapter.ErrServer)

	var upErr *UploadError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, UploadBlocksUploaded, upErr.State)
}

func TestUploadFile_ExpiredDeadline(t *testing.T) {
	env := newTestEnv(t, smallBlocks(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), -1)
	defer cancel()

	local := env.writeLocal(t, "a.bin", randomBytes(t, 10))

	_, err := env.svc.UploadFile(ctx, local, "/", UploadOptions{})
	assert.ErrorIs(t, err, adapter.ErrTimeout)
	assert.NotErrorIs(t, err, ErrCancelled)
}

func TestUploadFile_Progress(t *testing.T) {
	env := newTestEnv(t, smallBlocks(), nil)

	var (
		mu    sync.Mutex
		calls int
		last  int
		total int
	)
	progress := func(done, n int) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		last = max(last, done)
		total = n
	}

	local := env.writeLocal(t, "a.bin", randomBytes(t, 5*testBlockSize))

	_, err := env.svc.UploadFile(context.Background(), local, "/", UploadOptions{Progress: progress})
	require.NoError(t, err)

	assert.Equal(t, 5, calls)
	assert.Equal(t, 5, last)
	assert.Equal(t, 5, total)
}

func TestUploadFile_StoresSignedMetadata(t *testing.T) {
	env := newTestEnv(t, smallBlocks(), nil)
	ctx := context.Background()

	local := env.writeLocal(t, "notes.txt", []byte("hello"))
	up, err := env.svc.UploadFile(ctx, local, "/", UploadOptions{})
	require.NoError(t, err)

	link, ok := env.drive.Link(up.NodeID)
	require.True(t, ok)
	assert.Equal(t, models.LinkStateActive, link.State)
	assert.Equal(t, drivetest.Email, link.SignatureEmail)
	require.NotNil(t, link.FileProperties)
	require.NotNil(t, link.FileProperties.ActiveRevision)
	assert.Equal(t, up.RevisionID, link.FileProperties.ActiveRevision.ID)
	assert.Equal(t, drivetest.Email, link.FileProperties.ActiveRevision.SignatureAddress)
	assert.NotEmpty(t, link.FileProperties.ContentKeyPacketSignature)

	rev, err := env.drive.GetRevision(ctx, drivetest.ShareID, up.NodeID, up.RevisionID, models.RevisionPageParams{})
	require.NoError(t, err)

	nodeKR := nodeKeyRing(t, env, "/notes.txt")
	xattr, err := crypto.DecryptXAttr(nodeKR, rev.XAttr)
	require.NoError(t, err)
	assert.Equal(t, int64(5), xattr.Common.Size)
	assert.Equal(t, []int{5}, xattr.Common.BlockSizes)
	assert.NotEmpty(t, xattr.Common.ModificationTime)
}

func TestMIMETypeOf(t *testing.T) {
	assert.Contains(t, mimeTypeOf("a.txt"), "text/plain")
	assert.Equal(t, defaultMIMEType, mimeTypeOf("archive.unknownext"))
	assert.Equal(t, defaultMIMEType, mimeTypeOf("noext"))
}

func TestCheckBlockSizes(t *testing.T) {
	blocks := func(sizes ...int) []*crypto.EncryptedBlock {
		out := make([]*crypto.EncryptedBlock, len(sizes))
		for i, n := range sizes {
			out[i] = &crypto.EncryptedBlock{Index: i + 1, PlainSize: n}
		}
		return out
	}

	tests := []struct {
		name    string
		blocks  []*crypto.EncryptedBlock
		size    int64
		wantErr bool
	}{
		{name: "matches", blocks: blocks(4, 4, 2), size: 10},
		{name: "exact multiple", blocks: blocks(4, 4), size: 8},
		{name: "file grew", blocks: blocks(4, 4, 4), size: 10, wantErr: true},
		{name: "file shrank", blocks: blocks(4, 1), size: 10, wantErr: true},
		{name: "nothing read", blocks: nil, size: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkBlockSizes(tt.blocks, tt.size, 4)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrFileChanged)
				return
			}
			assert.NoError(t, err)
		})
	}
}
