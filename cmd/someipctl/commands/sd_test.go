package commands

import (
	"testing"

	"github.com/dantte-lp/go-someip/internal/sd"
)

func TestSDOfferCmdRequiresEndpoint(t *testing.T) {
	t.Parallel()

	cmd := sdOfferCmd()
	cmd.SetArgs([]string{"--service-id=1", "--instance-id=1"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error when --endpoint is missing")
	}
}

func TestSDOfferCmdEncodesEntry(t *testing.T) {
	t.Parallel()

	cmd := sdOfferCmd()
	cmd.SetArgs([]string{
		"--service-id=1",
		"--instance-id=1",
		"--endpoint=192.168.0.10:30509",
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("offer: %v", err)
	}
}

func TestSDFindCmdEncodesEntry(t *testing.T) {
	t.Parallel()

	cmd := sdFindCmd()
	cmd.SetArgs([]string{"--service-id=1"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("find: %v", err)
	}
}

func TestIPv4EndpointOptionRejectsIPv6(t *testing.T) {
	t.Parallel()

	if _, err := ipv4EndpointOption("[::1]:30509"); err == nil {
		t.Fatal("expected error for an IPv6 endpoint")
	}
}

func TestIPv4EndpointOptionParsesAddress(t *testing.T) {
	t.Parallel()

	opt, err := ipv4EndpointOption("192.168.0.10:30509")
	if err != nil {
		t.Fatalf("ipv4EndpointOption: %v", err)
	}
	if opt.Type != sd.OptionIPv4Endpoint {
		t.Errorf("Type = %v, want OptionIPv4Endpoint", opt.Type)
	}
	if opt.Port != 30509 {
		t.Errorf("Port = %d, want 30509", opt.Port)
	}
	want := [4]byte{192, 168, 0, 10}
	if opt.Addr4 != want {
		t.Errorf("Addr4 = %v, want %v", opt.Addr4, want)
	}
}
