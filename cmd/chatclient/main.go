// Command chatclient connects to a chat.Server, printing every message
// it receives while forwarding each line typed on stdin.
package main

import (
	"bufio"
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
	var name string

	log := logrus.New()
	entry := log.WithField("component", "cmd.chatclient")

	cmd := &cobra.Command{
		Use:          "chatclient HOST:PORT",
		Short:        "non-blocking TCP chat client",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			resources := mapCloser.New(ctx)
			defer resources.Close()

			c := chat.NewClient(name, entry)
			if cerr := c.Connect(args[0]); cerr != nil {
				return fmt.Errorf("connect: %w", cerr)
			}
			resources.Add(closerFunc(c.Close))

			lines := make(chan []byte, 16)
			go readStdin(lines)

			for ctx.Err() == nil {
				select {
				case l, ok := <-lines:
					if !ok {
						return nil
					}
					c.Feed(l)
				default:
				}

				if cerr := c.Update(50); cerr != nil && !cerr.IsCode(chat.ErrTimeout) {
					return cerr
				}
				for {
					msg, ok := c.PopNext()
					if !ok {
						break
					}
					fmt.Println(msg.Text)
				}
			}
			entry.Info("shutting down")
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "display name (reserved, not transmitted by the protocol)")

	if err := cmd.Execute(); err != nil {
		entry.WithField("err", err).Error("chatclient failed")
		os.Exit(1)
	}
}

func readStdin(out chan<- []byte) {
	defer close(out)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		out <- append(scanner.Bytes(), '\n')
	}
}
