package service

import (
	"context"
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	pgp "github.com/ProtonMail/gopenpgp/v2/crypto"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-drive-cli/internal/adapter"
	"github.com/MKhiriev/go-drive-cli/internal/config"
	"github.com/MKhiriev/go-drive-cli/internal/drivetest"
	"github.com/MKhiriev/go-drive-cli/internal/logger"
	"github.com/MKhiriev/go-drive-cli/internal/store"
)

// ── helpers ───────────────────────────────────────────────────────────────────

const testBlockSize = 1 << 10

type testEnv struct {
	drive *drivetest.Drive
	svc   *transferService
	dir   string
}

func smallBlocks() config.ClientTransfer {
	return config.ClientTransfer{BlockSize: testBlockSize, EncryptConcurrency: 3, DownloadConcurrency: 5}
}

// newTestEnv returns a service over a fresh in-memory drive with unlocked
// keys.
func newTestEnv(t *testing.T, cfg config.ClientTransfer, history store.TransferHistoryRepository) *testEnv {
	t.Helper()

	drive, err := drivetest.New()
	require.NoError(t, err)

	svc := NewTransferService(drive, history, cfg, logger.Nop()).(*transferService)
	require.NoError(t, svc.InitializeKeys(context.Background(), []byte(drivetest.Password)))

	return &testEnv{drive: drive, svc: svc, dir: t.TempDir()}
}

// serviceOver returns a second service with unlocked keys that reaches the
// test drive through drive.
func (e *testEnv) serviceOver(t *testing.T, cfg config.ClientTransfer, drive adapter.DriveAdapter) *transferService {
	t.Helper()

	svc := NewTransferService(drive, nil, cfg, logger.Nop()).(*transferService)
	require.NoError(t, svc.InitializeKeys(context.Background(), []byte(drivetest.Password)))
	return svc
}

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()

	data := make([]byte, n)
	_, err := rand.Read(data)
	require.NoError(t, err)
	return data
}

func (e *testEnv) writeLocal(t *testing.T, name string, data []byte) string {
	t.Helper()

	p := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func (e *testEnv) readLocal(t *testing.T, p string) []byte {
	t.Helper()

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	return data
}

// nodeKeyRing returns the unlocked key of the node at p.
func nodeKeyRing(t *testing.T, e *testEnv, p string) *pgp.KeyRing {
	t.Helper()

	node, err := e.svc.resolver.Resolve(context.Background(), p)
	require.NoError(t, err)
	return node.Context.KeyRing
}
