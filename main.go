// main is the entry point for the commentiq CLI.
package main

import (
	"github.com/huangsam/commentiq/cmd"
	"github.com/huangsam/commentiq/internal/contract"
	"github.com/huangsam/commentiq/internal/iocache"
)

func main() {
	// Warnings and errors are visible before flags are parsed
	contract.InitLogger(false)

	cmd.SetCacheManager(iocache.Manager)
	defer iocache.CloseStores()

	if err := cmd.Execute(); err != nil {
		iocache.CloseStores()
		contract.LogFatal("Error during execution", err)
	}
}
