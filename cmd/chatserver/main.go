// Command chatserver runs a chat.Server, broadcasting every message it
// receives from a peer to every other connected peer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sabouaram/sysprog/chat"
	"github.com/sabouaram/sysprog/ioutils/mapCloser"
)

// closerFunc adapts a plain cleanup func into an io.Closer so it can be
// registered with a mapCloser.Closer.
type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}

func main() {
	var port int

	log := logrus.New()
	entry := log.WithField("component", "cmd.chatserver")

	cmd := &cobra.Command{
		Use:          "chatserver [-p PORT]",
		Short:        "non-blocking TCP chat server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			resources := mapCloser.New(ctx)
			defer resources.Close()

			srv := chat.NewServer(entry)
			if cerr := srv.Listen(port); cerr != nil {
				return fmt.Errorf("listen: %w", cerr)
			}
			resources.Add(closerFunc(srv.Close))

			actual, _ := srv.Port()
			entry.WithField("port", actual).Info("listening")

			for ctx.Err() == nil {
				if cerr := srv.Update(1000); cerr != nil && !cerr.IsCode(chat.ErrTimeout) {
					entry.WithField("err", cerr).Error("update failed")
					return cerr
				}
				for {
					msg, ok := srv.PopNext()
					if !ok {
						break
					}
					entry.WithField("from", msg.AuthorID).WithField("text", msg.Text).Info("broadcast")
				}
			}
			entry.Info("shutting down")
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 9000, "TCP port to listen on")

	if err := cmd.Execute(); err != nil {
		entry.WithField("err", err).Error("chatserver failed")
		os.Exit(1)
	}
}
