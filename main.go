// Package main is the entry point for the relicdb CLI.
package main

import (
	"github.com/huangsam/relicdb/cmd"
	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)
	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
