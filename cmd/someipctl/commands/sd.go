package commands

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/netip"

	"github.com/spf13/cobra"

	"github.com/dantte-lp/go-someip/internal/sd"
)

// errInvalidEndpoint indicates the --endpoint flag was not a valid
// "ip:port" address.
var errInvalidEndpoint = errors.New("endpoint must be an ip:port address")

func sdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sd",
		Short: "Build and print a minimal Service Discovery message",
	}

	cmd.AddCommand(sdOfferCmd())
	cmd.AddCommand(sdFindCmd())

	return cmd
}

// --- sd offer ---

func sdOfferCmd() *cobra.Command {
	var serviceID, instanceID uint16
	var majorVersion uint8
	var minorVersion uint32
	var ttl uint32
	var endpoint string
	var clientID, sessionID uint16

	cmd := &cobra.Command{
		Use:   "offer",
		Short: "Build an offer_service entry with an IPv4 endpoint option",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			opt, err := ipv4EndpointOption(endpoint)
			if err != nil {
				return err
			}

			frame, err := sd.EncodeMessage(sd.Packet{
				ClientID:  clientID,
				SessionID: sessionID,
				Entries: []sd.EntryData{
					{
						Type:         sd.OfferService,
						ServiceID:    serviceID,
						InstanceID:   instanceID,
						MajorVersion: majorVersion,
						MinorVersion: minorVersion,
						TTL:          ttl,
						Run1:         []sd.Option{opt},
					},
				},
			})
			if err != nil {
				return fmt.Errorf("encode offer_service: %w", err)
			}

			fmt.Println(hex.EncodeToString(frame))
			return nil
		},
	}

	cmd.Flags().Uint16Var(&serviceID, "service-id", 0, "service id")
	cmd.Flags().Uint16Var(&instanceID, "instance-id", 0, "instance id")
	cmd.Flags().Uint8Var(&majorVersion, "major-version", 1, "major version")
	cmd.Flags().Uint32Var(&minorVersion, "minor-version", 0, "minor version")
	cmd.Flags().Uint32Var(&ttl, "ttl", 3, "entry TTL in seconds")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "unicast ip:port the service answers on (required)")
	cmd.Flags().Uint16Var(&clientID, "client-id", 0, "client id")
	cmd.Flags().Uint16Var(&sessionID, "session-id", 1, "session id")
	_ = cmd.MarkFlagRequired("endpoint")

	return cmd
}

// --- sd find ---

func sdFindCmd() *cobra.Command {
	var serviceID, instanceID uint16
	var majorVersion uint8
	var minorVersion uint32
	var ttl uint32
	var clientID, sessionID uint16

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Build a find_service entry",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			frame, err := sd.EncodeMessage(sd.Packet{
				ClientID:  clientID,
				SessionID: sessionID,
				Entries: []sd.EntryData{
					{
						Type:         sd.FindService,
						ServiceID:    serviceID,
						InstanceID:   instanceID,
						MajorVersion: majorVersion,
						MinorVersion: minorVersion,
						TTL:          ttl,
					},
				},
			})
			if err != nil {
				return fmt.Errorf("encode find_service: %w", err)
			}

			fmt.Println(hex.EncodeToString(frame))
			return nil
		},
	}

	cmd.Flags().Uint16Var(&serviceID, "service-id", 0, "service id")
	cmd.Flags().Uint16Var(&instanceID, "instance-id", 0xFFFF, "instance id (0xffff means any)")
	cmd.Flags().Uint8Var(&majorVersion, "major-version", 0xFF, "major version (0xff means any)")
	cmd.Flags().Uint32Var(&minorVersion, "minor-version", 0xFFFFFFFF, "minor version (0xffffffff means any)")
	cmd.Flags().Uint32Var(&ttl, "ttl", 3, "entry TTL in seconds")
	cmd.Flags().Uint16Var(&clientID, "client-id", 0, "client id")
	cmd.Flags().Uint16Var(&sessionID, "session-id", 1, "session id")

	return cmd
}

// ipv4EndpointOption parses "ip:port" into an IPv4 endpoint SD option
// carrying the UDP L4 protocol number.
func ipv4EndpointOption(endpoint string) (sd.Option, error) {
	addrPort, err := netip.ParseAddrPort(endpoint)
	if err != nil {
		return sd.Option{}, fmt.Errorf("%w: %q", errInvalidEndpoint, endpoint)
	}
	if !addrPort.Addr().Is4() {
		return sd.Option{}, fmt.Errorf("%w: %q is not IPv4", errInvalidEndpoint, endpoint)
	}

	return sd.Option{
		Type:    sd.OptionIPv4Endpoint,
		Addr4:   addrPort.Addr().As4(),
		L4Proto: 0x11, // UDP
		Port:    addrPort.Port(),
	}, nil
}
