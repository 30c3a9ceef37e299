package vault

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/lo"
	restapipkg "github.com/iotaledger/deposit-core/pkg/restapi"
	vaultpkg "github.com/iotaledger/deposit-core/pkg/vault"
)

type DepositRequest struct {
	Amount              uint64 `json:"amount"`
	LockDurationSeconds int64  `json:"lockDurationSeconds"`
}

type DepositCreatedResponse struct {
	DepositID  string    `json:"depositId"`
	Amount     uint64    `json:"amount"`
	UnlockTime time.Time `json:"unlockTime"`
}

type DepositsResponse struct {
	Amounts              []uint64 `json:"amounts"`
	TimeRemainingSeconds []int64  `json:"timeRemainingSeconds"`
}

type LockedBalanceResponse struct {
	LockedBalance uint64 `json:"lockedBalance"`
}

type WithdrawResponse struct {
	Withdrawn uint64 `json:"withdrawn"`
}

// apiError maps the vault errors onto the HTTP status codes of the user API.
func apiError(err error) error {
	switch {
	case ierrors.Is(err, vaultpkg.ErrInvalidAmount), ierrors.Is(err, vaultpkg.ErrInvalidLockDuration):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case ierrors.Is(err, vaultpkg.ErrNoFundsAvailable):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case ierrors.Is(err, vaultpkg.ErrTransferFailed):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		return err
	}
}

func createDeposit(c echo.Context) (*DepositCreatedResponse, error) {
	accountID, err := restapipkg.ParseAccountIDParam(c)
	if err != nil {
		return nil, err
	}

	request := &DepositRequest{}
	if err := c.Bind(request); err != nil {
		return nil, ierrors.Wrapf(restapipkg.ErrInvalidParameter, "invalid request body: %s", err.Error())
	}

	record, err := deps.Vault.Deposit(accountID, vaultpkg.Amount(request.Amount), time.Duration(request.LockDurationSeconds)*time.Second)
	if err != nil {
		return nil, apiError(err)
	}

	return &DepositCreatedResponse{
		DepositID:  record.ID.String(),
		Amount:     uint64(record.Amount),
		UnlockTime: record.UnlockTime,
	}, nil
}

func depositsForAccount(c echo.Context) (*DepositsResponse, error) {
	accountID, err := restapipkg.ParseAccountIDParam(c)
	if err != nil {
		return nil, err
	}

	amounts, timeRemaining := deps.Vault.Deposits(accountID)

	return &DepositsResponse{
		Amounts:              lo.Map(amounts, func(amount vaultpkg.Amount) uint64 { return uint64(amount) }),
		TimeRemainingSeconds: lo.Map(timeRemaining, func(remaining time.Duration) int64 { return int64(remaining / time.Second) }),
	}, nil
}

func lockedBalanceForAccount(c echo.Context) (*LockedBalanceResponse, error) {
	accountID, err := restapipkg.ParseAccountIDParam(c)
	if err != nil {
		return nil, err
	}

	return &LockedBalanceResponse{
		LockedBalance: uint64(deps.Vault.LockedBalance(accountID)),
	}, nil
}

func withdrawFromAccount(c echo.Context) (*WithdrawResponse, error) {
	accountID, err := restapipkg.ParseAccountIDParam(c)
	if err != nil {
		return nil, err
	}

	total, err := deps.Vault.Withdraw(c.Request().Context(), accountID)
	if err != nil {
		return nil, apiError(err)
	}

	return &WithdrawResponse{
		Withdrawn: uint64(total),
	}, nil
}
