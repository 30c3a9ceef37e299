package vault

import (
	"time"

	"github.com/iotaledger/hive.go/app"
)

// ParametersVault contains the definition of the parameters used by the vault.
type ParametersVault struct {
	Database struct {
		// Engine defines the used database engine (rocksdb/mapdb).
		Engine string `default:"rocksdb" usage:"the used database engine (rocksdb/mapdb)"`
		// Directory defines the directory of the database.
		Directory string `default:"vaultdb" usage:"path to the database directory"`
	}

	Transfer struct {
		// Endpoint is the settlement endpoint withdrawals are paid out through.
		Endpoint string `default:"http://localhost:9090/api/transfers" usage:"the settlement endpoint withdrawals are paid out through"`
		// Timeout bounds how long a single transfer may take before it counts as failed.
		Timeout time.Duration `default:"30s" usage:"the maximum duration of a single transfer before it counts as failed"`
	}
}

var ParamsVault = &ParametersVault{}

var params = &app.ComponentParams{
	Params: map[string]any{
		"vault": ParamsVault,
	},
}
