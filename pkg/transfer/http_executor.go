// Package transfer contains the concrete value-transfer executors used by the node.
package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/runtime/options"
	"github.com/iotaledger/deposit-core/pkg/vault"
)

// HTTPExecutor delivers withdrawn value by posting a transfer request to an external settlement
// endpoint. Any transport error, timeout or non-2xx response counts as a failed transfer; the endpoint
// is expected to either fully deliver the value or not at all.
type HTTPExecutor struct {
	endpoint string
	client   *http.Client

	optsTimeout time.Duration
}

type transferRequest struct {
	AccountID string `json:"accountId"`
	Amount    uint64 `json:"amount"`
}

func NewHTTPExecutor(endpoint string, opts ...options.Option[HTTPExecutor]) *HTTPExecutor {
	return options.Apply(&HTTPExecutor{
		endpoint:    endpoint,
		optsTimeout: 30 * time.Second,
	}, opts, func(e *HTTPExecutor) {
		e.client = &http.Client{Timeout: e.optsTimeout}
	})
}

func (e *HTTPExecutor) Transfer(ctx context.Context, accountID vault.AccountID, amount vault.Amount) error {
	requestBody, err := json.Marshal(&transferRequest{
		AccountID: accountID.ToHex(),
		Amount:    uint64(amount),
	})
	if err != nil {
		return ierrors.Wrap(err, "failed to encode transfer request")
	}

	ctx, cancel := context.WithTimeout(ctx, e.optsTimeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return ierrors.Wrap(err, "failed to create transfer request")
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := e.client.Do(request)
	if err != nil {
		return ierrors.Wrap(err, "transfer request failed")
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return ierrors.Errorf("transfer endpoint returned status %d", response.StatusCode)
	}

	return nil
}

// WithTimeout sets the bound on how long a single transfer may take before it counts as failed.
func WithTimeout(timeout time.Duration) options.Option[HTTPExecutor] {
	return func(e *HTTPExecutor) {
		e.optsTimeout = timeout
	}
}
