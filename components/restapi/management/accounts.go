package management

import (
	vaultpkg "github.com/iotaledger/deposit-core/pkg/vault"
)

type StatsResponse struct {
	AccountCount       int    `json:"accountCount"`
	RecordCount        int    `json:"recordCount"`
	TotalLockedBalance uint64 `json:"totalLockedBalance"`
}

type AccountInfoResponse struct {
	AccountID     string `json:"accountId"`
	Records       int    `json:"records"`
	LockedBalance uint64 `json:"lockedBalance"`
}

type AccountsResponse struct {
	Accounts []*AccountInfoResponse `json:"accounts"`
}

func vaultStats() *StatsResponse {
	resp := &StatsResponse{
		AccountCount: deps.Vault.AccountCount(),
	}
	deps.Vault.ForEachAccount(func(_ vaultpkg.AccountID, records int, locked vaultpkg.Amount) bool {
		resp.RecordCount += records
		resp.TotalLockedBalance += uint64(locked)

		return true
	})

	return resp
}

func listAccounts() *AccountsResponse {
	resp := &AccountsResponse{
		Accounts: []*AccountInfoResponse{},
	}
	deps.Vault.ForEachAccount(func(accountID vaultpkg.AccountID, records int, locked vaultpkg.Amount) bool {
		resp.Accounts = append(resp.Accounts, &AccountInfoResponse{
			AccountID:     accountID.ToHex(),
			Records:       records,
			LockedBalance: uint64(locked),
		})

		return true
	})

	return resp
}
