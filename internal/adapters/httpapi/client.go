package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/govrelay/internal/domain"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

// RemoteError is an error answered by a relay service
type RemoteError struct {
	Status  int
	Kind    domain.Kind
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("relay responded %d: %s", e.Status, e.Message)
}

// ErrorKind reports the category the relay assigned
func (e *RemoteError) ErrorKind() domain.Kind {
	return e.Kind
}

// Client submits signed forward requests to a relay service
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the relay at baseURL. The timeout must cover
// the relay's confirmation wait.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Relay posts the request and returns the transaction hash. It is never retried.
func (c *Client) Relay(ctx context.Context, req domain.RawForwardRequest, signature string) (common.Hash, error) {
	payload, err := json.Marshal(RelayBody{Request: req, Signature: signature})
	if err != nil {
		return common.Hash{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/relay", bytes.NewReader(payload))
	if err != nil {
		return common.Hash{}, domain.ValidationError{Field: "relayer_url", Reason: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return common.Hash{}, domain.InfraError{Op: "relay request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return common.Hash{}, domain.InfraError{Op: "read relay response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		var errBody errorResponse
		if err := json.Unmarshal(body, &errBody); err != nil || errBody.Error == "" {
			return common.Hash{}, &RemoteError{Status: resp.StatusCode, Kind: domain.KindInfra, Message: strings.TrimSpace(string(body))}
		}
		return common.Hash{}, &RemoteError{Status: resp.StatusCode, Kind: domain.Kind(errBody.Kind), Message: errBody.Error}
	}

	var ok RelayResponse
	if err := json.Unmarshal(body, &ok); err != nil {
		return common.Hash{}, domain.InfraError{Op: "decode relay response", Err: err}
	}
	return ok.TxHash, nil
}

var _ usecase.RelayClient = (*Client)(nil)
