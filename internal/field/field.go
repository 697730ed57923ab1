// Package field implements the AUTOSAR field descriptor helpers: pure
// header factories and predicates layered over a service's getter,
// setter, and notifier method ids. Nothing here touches payload bytes —
// callers attach a request/response payload themselves via
// internal/payload.
package field

import "github.com/dantte-lp/go-someip/internal/someip"

// Descriptor names the four SOME/IP method ids (and one eventgroup id)
// that together make up one AUTOSAR field: a getter, a setter, a
// notifier event, and the eventgroup its notifications are published
// under.
type Descriptor struct {
	ServiceID       uint16
	GetterMethodID  uint16
	SetterMethodID  uint16
	NotifierEventID uint16
	EventgroupID    uint16

	Readable bool
	Writable bool
	Notifies bool
}

// MakeGetRequestHeader builds a REQUEST header addressed at f's getter.
// The header alone encodes a zero-byte request (length=8, no payload);
// a caller that needs to send request parameters attaches them
// separately via internal/payload.
func MakeGetRequestHeader(f Descriptor, clientID, sessionID uint16, interfaceVersion uint8) someip.Header {
	return makeRequestHeader(f.ServiceID, f.GetterMethodID, clientID, sessionID, interfaceVersion)
}

// MakeSetRequestHeader builds a REQUEST header addressed at f's setter.
// As with MakeGetRequestHeader, the request payload (the value being
// set) is the caller's concern, not this header.
func MakeSetRequestHeader(f Descriptor, clientID, sessionID uint16, interfaceVersion uint8) someip.Header {
	return makeRequestHeader(f.ServiceID, f.SetterMethodID, clientID, sessionID, interfaceVersion)
}

func makeRequestHeader(serviceID, methodID, clientID, sessionID uint16, interfaceVersion uint8) someip.Header {
	return someip.Header{
		ServiceID:        serviceID,
		MethodID:         methodID,
		ClientID:         clientID,
		SessionID:        sessionID,
		ProtocolVersion:  someip.ProtocolVersion,
		InterfaceVersion: interfaceVersion,
		MessageType:      someip.Request,
		ReturnCode:       0,
	}
}

// MakeNotifyHeader builds a NOTIFICATION header for f's notifier event,
// with client_id and session_id both zero (notifications are not tied
// to a requesting client's session).
func MakeNotifyHeader(f Descriptor, interfaceVersion uint8) someip.Header {
	return someip.Header{
		ServiceID:        f.ServiceID,
		MethodID:         f.NotifierEventID,
		ClientID:         0,
		SessionID:        0,
		ProtocolVersion:  someip.ProtocolVersion,
		InterfaceVersion: interfaceVersion,
		MessageType:      someip.Notification,
		ReturnCode:       0,
	}
}

// IsGetRequest reports whether h is a REQUEST addressed at f's getter.
func IsGetRequest(h someip.Header, f Descriptor) bool {
	return h.ServiceID == f.ServiceID && h.MethodID == f.GetterMethodID && h.MessageType == someip.Request
}

// IsSetRequest reports whether h is a REQUEST addressed at f's setter.
func IsSetRequest(h someip.Header, f Descriptor) bool {
	return h.ServiceID == f.ServiceID && h.MethodID == f.SetterMethodID && h.MessageType == someip.Request
}
