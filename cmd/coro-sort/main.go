// Command coro-sort sorts one or more files of whitespace-separated
// integers via the corosort cooperative coroutine runtime, writing the
// merged, ascending result to result.txt.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sabouaram/sysprog/corosort"
)

func main() {
	var latencyUS int64
	var coroCount int

	log := logrus.New()
	entry := log.WithField("component", "cmd.coro-sort")

	cmd := &cobra.Command{
		Use:          "coro-sort [-l US] [-c N] FILE...",
		Short:        "external sort of integer files over a cooperative coroutine runtime",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if latencyUS <= 0 {
				return fmt.Errorf("latency budget must be positive")
			}
			if coroCount <= 0 {
				coroCount = len(args)
			}

			quantum := time.Duration(latencyUS/int64(len(args))) * time.Microsecond
			if err := corosort.Run(args, coroCount, quantum, "result.txt", entry); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().Int64VarP(&latencyUS, "latency", "l", 100000, "total latency budget in microseconds, divided evenly across input files")
	cmd.Flags().IntVarP(&coroCount, "coro-count", "c", 0, "number of worker coroutines (default: one per input file)")

	if err := cmd.Execute(); err != nil {
		entry.WithField("err", err).Error("coro-sort failed")
		os.Exit(1)
	}
}
