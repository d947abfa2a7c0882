// main is the entry point for the groupstats CLI.
package main

import (
	"github.com/huangsam/groupstats/cmd"
	"github.com/huangsam/groupstats/internal/contract"
	"github.com/huangsam/groupstats/internal/iocache"
)

func main() {
	err := cmd.Execute()
	iocache.CloseCaching()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Cannot stop profiling", stopErr)
	}
	if err != nil {
		contract.LogFatal("Cannot run groupstats", err)
	}
}
