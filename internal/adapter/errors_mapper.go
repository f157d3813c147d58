package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-drive-cli/models"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := errorBody(resp)

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAuthFailed, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %s", ErrTimeout, body)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, body)
	case http.StatusRequestEntityTooLarge, http.StatusInsufficientStorage:
		return fmt.Errorf("%w: %s", ErrQuotaExceeded, body)
	case http.StatusUnprocessableEntity:
		if apiErrorCode(resp) == models.APICodeQuotaExceeded {
			return fmt.Errorf("%w: %s", ErrQuotaExceeded, body)
		}
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	default:
		if resp.StatusCode() >= http.StatusInternalServerError {
			return fmt.Errorf("%w: http %d: %s", ErrServer, resp.StatusCode(), body)
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}

// errorBody prefers the API error message over the raw body.
func errorBody(resp *resty.Response) string {
	var apiErr models.APIError
	if err := json.Unmarshal(resp.Body(), &apiErr); err == nil && apiErr.Error != "" {
		return fmt.Sprintf("%s (code %d)", apiErr.Error, apiErr.Code)
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	return body
}

func apiErrorCode(resp *resty.Response) int {
	var apiErr models.APIError
	if err := json.Unmarshal(resp.Body(), &apiErr); err != nil {
		return 0
	}

	return apiErr.Code
}

// mapTransportError classifies an error returned before any response was
// received. Cancellation is passed through unchanged.
func mapTransportError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", op, ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%s: %w: %w", op, ErrTimeout, err)
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Errorf("%s: %w: %w", op, ErrConnectionRefused, err)
	}

	return fmt.Errorf("%s request: %w", op, err)
}

// classify maps a resty outcome to the sentinel errors of this package.
func classify(op string, resp *resty.Response, err error) error {
	if err != nil {
		return mapTransportError(op, err)
	}
	if resp == nil {
		return fmt.Errorf("%s: empty response", op)
	}
	if err := mapHTTPError(resp); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
