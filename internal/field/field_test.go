package field_test

import (
	"testing"

	"github.com/dantte-lp/go-someip/internal/field"
	"github.com/dantte-lp/go-someip/internal/someip"
)

func testDescriptor() field.Descriptor {
	return field.Descriptor{
		ServiceID:       0x1234,
		GetterMethodID:  0x0001,
		SetterMethodID:  0x0002,
		NotifierEventID: 0x8001,
		EventgroupID:    0x0001,
		Readable:        true,
		Writable:        true,
		Notifies:        true,
	}
}

func TestMakeGetRequestHeader(t *testing.T) {
	t.Parallel()

	f := testDescriptor()
	h := field.MakeGetRequestHeader(f, 0x0A0A, 0x0001, 1)

	want := someip.Header{
		ServiceID: f.ServiceID, MethodID: f.GetterMethodID,
		ClientID: 0x0A0A, SessionID: 0x0001,
		ProtocolVersion: 1, InterfaceVersion: 1,
		MessageType: someip.Request, ReturnCode: 0,
	}
	if h != want {
		t.Fatalf("MakeGetRequestHeader() = %+v, want %+v", h, want)
	}
	if !field.IsGetRequest(h, f) {
		t.Fatalf("IsGetRequest() = false, want true")
	}
	if field.IsSetRequest(h, f) {
		t.Fatalf("IsSetRequest() = true, want false")
	}
}

func TestMakeSetRequestHeader(t *testing.T) {
	t.Parallel()

	f := testDescriptor()
	h := field.MakeSetRequestHeader(f, 0x0A0A, 0x0002, 1)

	if h.MethodID != f.SetterMethodID || h.MessageType != someip.Request {
		t.Fatalf("MakeSetRequestHeader() = %+v", h)
	}
	if !field.IsSetRequest(h, f) {
		t.Fatalf("IsSetRequest() = false, want true")
	}
	if field.IsGetRequest(h, f) {
		t.Fatalf("IsGetRequest() = true, want false")
	}
}

func TestMakeNotifyHeader(t *testing.T) {
	t.Parallel()

	f := testDescriptor()
	h := field.MakeNotifyHeader(f, 1)

	want := someip.Header{
		ServiceID: f.ServiceID, MethodID: f.NotifierEventID,
		ClientID: 0, SessionID: 0,
		ProtocolVersion: 1, InterfaceVersion: 1,
		MessageType: someip.Notification, ReturnCode: 0,
	}
	if h != want {
		t.Fatalf("MakeNotifyHeader() = %+v, want %+v", h, want)
	}
}

func TestIsGetRequestRejectsWrongMessageType(t *testing.T) {
	t.Parallel()

	f := testDescriptor()
	h := field.MakeGetRequestHeader(f, 1, 1, 1)
	h.MessageType = someip.Response
	if field.IsGetRequest(h, f) {
		t.Fatalf("IsGetRequest() = true for a Response header, want false")
	}
}
