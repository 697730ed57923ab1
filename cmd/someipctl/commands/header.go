package commands

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dantte-lp/go-someip/internal/someip"
	"github.com/dantte-lp/go-someip/internal/wire"
)

func headerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "header",
		Short: "Encode or decode a raw SOME/IP header",
	}

	cmd.AddCommand(headerEncodeCmd())
	cmd.AddCommand(headerDecodeCmd())

	return cmd
}

// --- header encode ---

func headerEncodeCmd() *cobra.Command {
	var serviceID, methodID, clientID, sessionID uint16
	var messageType, returnCode uint8
	var interfaceVersion uint8
	var payloadLen uint32

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode header fields to a raw 16-byte hex header",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			h := someip.Header{
				ServiceID:        serviceID,
				MethodID:         methodID,
				Length:           payloadLen + 8,
				ClientID:         clientID,
				SessionID:        sessionID,
				ProtocolVersion:  someip.ProtocolVersion,
				InterfaceVersion: interfaceVersion,
				MessageType:      someip.MessageType(messageType),
				ReturnCode:       returnCode,
			}

			w := wire.NewFixedWriter(make([]byte, someip.HeaderSize))
			if err := someip.EncodeHeader(w, h); err != nil {
				return fmt.Errorf("encode header: %w", err)
			}

			fmt.Println(hex.EncodeToString(w.Bytes()))
			return nil
		},
	}

	cmd.Flags().Uint16Var(&serviceID, "service-id", 0, "service id")
	cmd.Flags().Uint16Var(&methodID, "method-id", 0, "method id")
	cmd.Flags().Uint16Var(&clientID, "client-id", 0, "client id")
	cmd.Flags().Uint16Var(&sessionID, "session-id", 0, "session id")
	cmd.Flags().Uint8Var(&interfaceVersion, "interface-version", 1, "interface version")
	cmd.Flags().Uint8Var(&messageType, "message-type", 0, "message type byte (e.g. 0x00 request, 0x80 response)")
	cmd.Flags().Uint8Var(&returnCode, "return-code", 0, "return code")
	cmd.Flags().Uint32Var(&payloadLen, "payload-len", 0, "payload length in bytes, used to compute the length field")

	return cmd
}

// --- header decode ---

func headerDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a raw hex-encoded SOME/IP header",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			raw, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("decode hex: %w", err)
			}

			h, err := someip.DecodeHeader(raw)
			if err != nil {
				return fmt.Errorf("decode header: %w", err)
			}

			fmt.Printf("service_id:        %#04x\n", h.ServiceID)
			fmt.Printf("method_id:         %#04x\n", h.MethodID)
			fmt.Printf("length:            %d\n", h.Length)
			fmt.Printf("client_id:         %#04x\n", h.ClientID)
			fmt.Printf("session_id:        %#04x\n", h.SessionID)
			fmt.Printf("protocol_version:  %d\n", h.ProtocolVersion)
			fmt.Printf("interface_version: %d\n", h.InterfaceVersion)
			fmt.Printf("message_type:      %#02x\n", uint8(h.MessageType))
			fmt.Printf("return_code:       %d\n", h.ReturnCode)
			fmt.Printf("has_tp_flag:       %s\n", strconv.FormatBool(h.HasTPFlag()))

			return nil
		},
	}
}
