package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-drive-cli/internal/config"
	"github.com/MKhiriev/go-drive-cli/internal/logger"
	"github.com/MKhiriev/go-drive-cli/internal/utils"
	"github.com/MKhiriev/go-drive-cli/models"
)

const (
	headerUID          = "x-pm-uid"
	headerAppVersion   = "x-pm-appversion"
	headerStorageToken = "pm-storage-token"

	blockFieldName = "Block"

	retryWaitTime    = 500 * time.Millisecond
	retryMaxWaitTime = 5 * time.Second
)

type httpDriveAdapter struct {
	// api serves metadata calls and retries retryable failures itself.
	api *utils.HTTPClient
	// storage serves block transfers; retries are driven by withRetry.
	storage *utils.HTTPClient

	session *Session
	cfg     config.ClientAdapter

	logger *logger.Logger
}

// NewHTTPDriveAdapter constructs an HTTP/REST implementation of [DriveAdapter].
// It normalises and validates the base URL from cfg.APIURL, configures the
// metadata client with retries on [IsRetryable] failures and starts a
// [Session] from cred that refreshes itself on 401 responses.
//
// Returns an error if cfg.APIURL is empty or cannot be parsed as a valid URL.
func NewHTTPDriveAdapter(cfg config.ClientAdapter, cred models.Credential, logger *logger.Logger) (DriveAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	api := utils.NewHTTPClient(baseURL, 0)
	api.
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(retryWaitTime).
		SetRetryMaxWaitTime(retryMaxWaitTime).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return IsRetryable(classify("retry", resp, err))
		})

	storage := utils.NewHTTPClient("", 0)

	if cfg.AppVersion != "" {
		api.SetHeader(headerAppVersion, cfg.AppVersion)
		storage.SetHeader(headerAppVersion, cfg.AppVersion)
	}

	h := &httpDriveAdapter{
		api:     api,
		storage: storage,
		cfg:     cfg,
		logger:  logger,
	}
	h.session = NewSession(cred, h.refreshSession, logger)

	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// GetUser implements [DriveAdapter]. GET /core/v4/users.
func (h *httpDriveAdapter) GetUser(ctx context.Context) (models.User, error) {
	var out models.UserResponse
	err := h.call(ctx, "get user", func(r *resty.Request) (*resty.Response, error) {
		return r.SetResult(&out).Get("/core/v4/users")
	})

	return out.User, err
}

// GetAddresses implements [DriveAdapter]. GET /core/v4/addresses.
func (h *httpDriveAdapter) GetAddresses(ctx context.Context) ([]models.Address, error) {
	var out models.AddressesResponse
	err := h.call(ctx, "get addresses", func(r *resty.Request) (*resty.Response, error) {
		return r.SetResult(&out).Get("/core/v4/addresses")
	})

	return out.Addresses, err
}

// GetKeySalts implements [DriveAdapter]. GET /core/v4/keys/salts.
func (h *httpDriveAdapter) GetKeySalts(ctx context.Context) ([]models.KeySalt, error) {
	var out models.KeySaltsResponse
	err := h.call(ctx, "get key salts", func(r *resty.Request) (*resty.Response, error) {
		return r.SetResult(&out).Get("/core/v4/keys/salts")
	})

	return out.KeySalts, err
}

// ListVolumes implements [DriveAdapter]. GET /drive/volumes.
func (h *httpDriveAdapter) ListVolumes(ctx context.Context) ([]models.Volume, error) {
	var out models.VolumesResponse
	err := h.call(ctx, "list volumes", func(r *resty.Request) (*resty.Response, error) {
		return r.SetResult(&out).Get("/drive/volumes")
	})

	return out.Volumes, err
}

// GetShare implements [DriveAdapter]. GET /drive/shares/{shareID}.
func (h *httpDriveAdapter) GetShare(ctx context.Context, shareID string) (models.Share, error) {
	var out models.Share
	err := h.call(ctx, "get share", func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetPathParam("shareID", shareID).
			SetResult(&out).
			Get("/drive/shares/{shareID}")
	})

	return out, err
}

// GetLink implements [DriveAdapter]. GET /drive/shares/{shareID}/links/{linkID}.
func (h *httpDriveAdapter) GetLink(ctx context.Context, shareID, linkID string) (models.Link, error) {
	var out models.LinkResponse
	err := h.call(ctx, "get link", func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetPathParams(map[string]string{"shareID": shareID, "linkID": linkID}).
			SetResult(&out).
			Get("/drive/shares/{shareID}/links/{linkID}")
	})

	return out.Link, err
}

// ListChildren implements [DriveAdapter].
// GET /drive/shares/{shareID}/folders/{linkID}/children?Page=&PageSize=.
func (h *httpDriveAdapter) ListChildren(ctx context.Context, shareID, linkID string, page models.PageParams) ([]models.Link, error) {
	var out models.LinksResponse
	err := h.call(ctx, "list children", func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetPathParams(map[string]string{"shareID": shareID, "linkID": linkID}).
			SetQueryParams(map[string]string{
				"Page":     strconv.Itoa(page.Page),
				"PageSize": strconv.Itoa(page.PageSize),
			}).
			SetResult(&out).
			Get("/drive/shares/{shareID}/folders/{linkID}/children")
	})

	return out.Links, err
}

// CreateFolder implements [DriveAdapter]. POST /drive/shares/{shareID}/folders.
func (h *httpDriveAdapter) CreateFolder(ctx context.Context, shareID string, req models.CreateFolderReq) (models.CreatedNode, error) {
	var out models.FolderResponse
	err := h.call(ctx, "create folder", func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetPathParam("shareID", shareID).
			SetHeader("Content-Type", "application/json").
			SetBody(req).
			SetResult(&out).
			Post("/drive/shares/{shareID}/folders")
	})

	return out.Folder, err
}

// CreateFile implements [DriveAdapter]. POST /drive/shares/{shareID}/files.
func (h *httpDriveAdapter) CreateFile(ctx context.Context, shareID string, req models.CreateFileReq) (models.CreatedNode, error) {
	var out models.FileResponse
	err := h.call(ctx, "create file", func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetPathParam("shareID", shareID).
			SetHeader("Content-Type", "application/json").
			SetBody(req).
			SetResult(&out).
			Post("/drive/shares/{shareID}/files")
	})

	return out.File, err
}

// GetVerificationData implements [DriveAdapter].
// GET /drive/shares/{shareID}/links/{linkID}/revisions/{revisionID}/verification.
func (h *httpDriveAdapter) GetVerificationData(ctx context.Context, shareID, linkID, revisionID string) (models.VerificationData, error) {
	var out models.VerificationData
	err := h.call(ctx, "get verification data", func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetPathParams(map[string]string{"shareID": shareID, "linkID": linkID, "revisionID": revisionID}).
			SetResult(&out).
			Get("/drive/shares/{shareID}/links/{linkID}/revisions/{revisionID}/verification")
	})

	return out, err
}

// RequestBlockUpload implements [DriveAdapter]. POST /drive/blocks.
func (h *httpDriveAdapter) RequestBlockUpload(ctx context.Context, req models.BlockUploadReq) ([]models.BlockUploadLink, error) {
	var out models.BlockUploadResponse
	err := h.call(ctx, "request block upload", func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetHeader("Content-Type", "application/json").
			SetBody(req).
			SetResult(&out).
			Post("/drive/blocks")
	})
	if err != nil {
		return nil, err
	}

	if len(out.UploadLinks) != len(req.BlockList) {
		return nil, fmt.Errorf("%w: requested %d, got %d", ErrUploadLinks, len(req.BlockList), len(out.UploadLinks))
	}

	return out.UploadLinks, nil
}

// CommitRevision implements [DriveAdapter].
// PUT /drive/shares/{shareID}/files/{linkID}/revisions/{revisionID}.
func (h *httpDriveAdapter) CommitRevision(ctx context.Context, shareID, linkID, revisionID string, req models.CommitRevisionReq) error {
	return h.call(ctx, "commit revision", func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetPathParams(map[string]string{"shareID": shareID, "linkID": linkID, "revisionID": revisionID}).
			SetHeader("Content-Type", "application/json").
			SetBody(req).
			Put("/drive/shares/{shareID}/files/{linkID}/revisions/{revisionID}")
	})
}

// GetRevision implements [DriveAdapter].
// GET /drive/shares/{shareID}/files/{linkID}/revisions/{revisionID}?FromBlockIndex=&PageSize=.
func (h *httpDriveAdapter) GetRevision(ctx context.Context, shareID, linkID, revisionID string, page models.RevisionPageParams) (models.Revision, error) {
	var out models.RevisionResponse
	err := h.call(ctx, "get revision", func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetPathParams(map[string]string{"shareID": shareID, "linkID": linkID, "revisionID": revisionID}).
			SetQueryParams(map[string]string{
				"FromBlockIndex": strconv.Itoa(page.FromBlockIndex),
				"PageSize":       strconv.Itoa(page.PageSize),
			}).
			SetResult(&out).
			Get("/drive/shares/{shareID}/files/{linkID}/revisions/{revisionID}")
	})

	return out.Revision, err
}

// UploadBlock implements [DriveAdapter]. It POSTs the block as the multipart
// field "Block" to the upload link, authorised by its storage token.
func (h *httpDriveAdapter) UploadBlock(ctx context.Context, link models.BlockUploadLink, data []byte) error {
	return h.withRetry(ctx, "upload block", func(ctx context.Context) error {
		resp, err := h.storage.R().
			SetContext(ctx).
			SetHeader(headerStorageToken, link.Token).
			SetFileReader(blockFieldName, "blob", bytes.NewReader(data)).
			Post(link.BareURL)

		return classify("upload block", resp, err)
	})
}

// DownloadBlock implements [DriveAdapter]. It GETs the encrypted block
// authorised by its storage token.
func (h *httpDriveAdapter) DownloadBlock(ctx context.Context, bareURL, token string) ([]byte, error) {
	var data []byte

	err := h.withRetry(ctx, "download block", func(ctx context.Context) error {
		resp, err := h.storage.R().
			SetContext(ctx).
			SetHeader(headerStorageToken, token).
			Get(bareURL)
		if err := classify("download block", resp, err); err != nil {
			return err
		}

		data = resp.Body()
		return nil
	})

	return data, err
}

// call runs one metadata request bounded by the metadata timeout. A 401
// response triggers one session refresh and one repeat of the request.
func (h *httpDriveAdapter) call(ctx context.Context, op string, send func(*resty.Request) (*resty.Response, error)) error {
	ctx, cancel := withTimeout(ctx, h.cfg.MetadataTimeout)
	defer cancel()

	cred := h.session.Credential()
	resp, err := send(h.authedRequest(ctx, cred))
	if err == nil && resp.StatusCode() == http.StatusUnauthorized {
		h.logger.Debug().Str("op", op).Msg("access token rejected, refreshing session")

		if _, refreshErr := h.session.Refresh(ctx, cred.AccessToken); refreshErr == nil {
			resp, err = send(h.authedRequest(ctx, h.session.Credential()))
		}
	}

	return classify(op, resp, err)
}

// withRetry runs a block transfer, each attempt bounded by the transfer
// timeout, and repeats it while the failure is retryable.
func (h *httpDriveAdapter) withRetry(ctx context.Context, op string, attempt func(ctx context.Context) error) error {
	wait := retryWaitTime

	for try := 0; ; try++ {
		attemptCtx, cancel := withTimeout(ctx, h.cfg.TransferTimeout)
		err := attempt(attemptCtx)
		cancel()

		if err == nil || !IsRetryable(err) || try >= h.cfg.RetryCount || ctx.Err() != nil {
			return err
		}

		h.logger.Warn().Err(err).Str("op", op).Int("attempt", try+1).Msg("retrying transfer")

		select {
		case <-ctx.Done():
			return mapTransportError(op, ctx.Err())
		case <-time.After(wait):
		}
		wait = min(wait*2, retryMaxWaitTime)
	}
}

func (h *httpDriveAdapter) authedRequest(ctx context.Context, cred models.Credential) *resty.Request {
	req := h.api.R().SetContext(ctx)
	if cred.UID != "" {
		req.SetHeader(headerUID, cred.UID)
	}
	if cred.AccessToken != "" {
		req.SetHeader("Authorization", "Bearer "+cred.AccessToken)
	}
	return req
}

// refreshSession implements [RefreshFunc]. POST /auth/v4/refresh.
func (h *httpDriveAdapter) refreshSession(ctx context.Context, cred models.Credential) (models.Credential, error) {
	ctx, cancel := withTimeout(ctx, h.cfg.MetadataTimeout)
	defer cancel()

	var out models.RefreshResponse
	resp, err := h.api.R().
		SetContext(ctx).
		SetHeader(headerUID, cred.UID).
		SetHeader("Content-Type", "application/json").
		SetBody(models.RefreshRequest{
			UID:          cred.UID,
			RefreshToken: cred.RefreshToken,
			ResponseType: "token",
			GrantType:    "refresh_token",
			RedirectURI:  "https://protonmail.ch",
		}).
		SetResult(&out).
		Post("/auth/v4/refresh")
	if err = classify("refresh session", resp, err); err != nil {
		return models.Credential{}, err
	}

	if out.AccessToken == "" {
		return models.Credential{}, fmt.Errorf("%w: refresh returned no access token", ErrAuthFailed)
	}

	return models.Credential{
		UID:          out.UID,
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
	}, nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// IsCancelled reports whether err comes from the caller cancelling the
// context, as opposed to a timeout.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) && !errors.Is(err, ErrTimeout)
}
