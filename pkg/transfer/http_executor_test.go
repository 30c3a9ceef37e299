package transfer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/deposit-core/pkg/transfer"
	"github.com/iotaledger/deposit-core/pkg/vault"
)

func TestHTTPExecutor_Transfer(t *testing.T) {
	accountID := vault.RandomAccountID()

	var received struct {
		AccountID string `json:"accountId"`
		Amount    uint64 `json:"amount"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	executor := transfer.NewHTTPExecutor(server.URL)
	require.NoError(t, executor.Transfer(context.Background(), accountID, 1234))
	require.Equal(t, accountID.ToHex(), received.AccountID)
	require.EqualValues(t, 1234, received.Amount)
}

func TestHTTPExecutor_RejectionIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	executor := transfer.NewHTTPExecutor(server.URL)
	require.Error(t, executor.Transfer(context.Background(), vault.RandomAccountID(), 1))
}

func TestHTTPExecutor_TimeoutIsFailure(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	defer close(release)

	executor := transfer.NewHTTPExecutor(server.URL, transfer.WithTimeout(50*time.Millisecond))
	require.Error(t, executor.Transfer(context.Background(), vault.RandomAccountID(), 1))
}
