package commands

import (
	"net"
	"testing"
	"time"
)

func TestSendCmdRequiresTarget(t *testing.T) {
	t.Parallel()

	cmd := sendCmd()
	cmd.SetArgs([]string{"aabbccdd"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error when --target is missing")
	}
}

func TestSendCmdDeliversFrame(t *testing.T) {
	t.Parallel()

	ln, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	cmd := sendCmd()
	cmd.SetArgs([]string{
		"--target=" + ln.LocalAddr().String(),
		"aabbccdd",
	})

	done := make(chan error, 1)
	go func() { done <- cmd.Execute() }()

	_ = ln.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 16)
	n, _, err := ln.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(buf[:n]) != "\xaa\xbb\xcc\xdd" {
		t.Errorf("received %x, want aabbccdd", buf[:n])
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("send: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("send did not complete")
	}
}
