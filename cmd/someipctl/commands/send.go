package commands

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/netip"
	"time"

	"github.com/spf13/cobra"

	"github.com/dantte-lp/go-someip/internal/frameio"
)

func sendCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "send <hex-frame>",
		Short: "Send a hex-encoded SOME/IP frame to a UDP target",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			raw, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("decode hex frame: %w", err)
			}

			addr, err := netip.ParseAddrPort(target)
			if err != nil {
				return fmt.Errorf("parse target %q: %w", target, err)
			}

			sender, err := frameio.NewSender("")
			if err != nil {
				return fmt.Errorf("create sender: %w", err)
			}
			defer sender.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := sender.Send(ctx, raw, addr); err != nil {
				return fmt.Errorf("send frame: %w", err)
			}

			fmt.Printf("sent %d bytes to %s\n", len(raw), addr)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "destination ip:port (required)")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}
