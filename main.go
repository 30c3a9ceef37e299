package main

import (
	"github.com/iotaledger/deposit-core/components/app"
)

func main() {
	app.App().Run()
}
