// Package wire provides the leaf-level building blocks shared by every
// codec layer in this module: bounds-checked cursors, endian-parametric
// integer encoding, and the single closed error enumeration the whole
// core reports through.
package wire

import "fmt"

// Kind is the closed set of error categories the codec can report.
// Every failure path in this module, from the cursor up through the
// Service Discovery codec, resolves to exactly one Kind.
type Kind uint8

const (
	// KindOther is the catch-all kind; avoid returning it directly.
	KindOther Kind = iota

	// Resource kinds.
	KindBufferTooSmall
	KindBufferOverrun
	KindIncompleteFrame

	// Structural kinds.
	KindInvalidLength
	KindInvalidProtocolVersion
	KindInvalidInterfaceVersion
	KindInvalidMessageType
	KindInvalidReturnCode

	// Payload kinds.
	KindInvalidBoolValue
	KindInvalidUTF8
	KindInvalidUTF16
	KindInvalidBOM
	KindInvalidStringTermination
	KindInvalidUnionSelector

	// Service Discovery kinds.
	KindSDInvalidHeader
	KindSDInvalidLengths
	KindSDUnknownOption
)

var kindNames = [...]string{
	KindOther:                    "error",
	KindBufferTooSmall:           "buffer_too_small",
	KindBufferOverrun:            "buffer_overrun",
	KindIncompleteFrame:          "incomplete_frame",
	KindInvalidLength:            "invalid_length",
	KindInvalidProtocolVersion:   "invalid_protocol_version",
	KindInvalidInterfaceVersion:  "invalid_interface_version",
	KindInvalidMessageType:       "invalid_message_type",
	KindInvalidReturnCode:        "invalid_return_code",
	KindInvalidBoolValue:         "invalid_bool_value",
	KindInvalidUTF8:              "invalid_utf8",
	KindInvalidUTF16:             "invalid_utf16",
	KindInvalidBOM:               "invalid_bom",
	KindInvalidStringTermination: "invalid_string_termination",
	KindInvalidUnionSelector:     "invalid_union_selector",
	KindSDInvalidHeader:          "sd_invalid_header",
	KindSDInvalidLengths:         "sd_invalid_lengths",
	KindSDUnknownOption:          "sd_unknown_option",
}

// String returns the stable, log-friendly name for the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "error"
}

// Error is the single error type returned by every codec function in this
// module. It always carries a Kind from the closed enumeration plus a
// short, stable message suitable for logs.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is reports whether target is a *Error with the same Kind, or one of the
// package-level sentinels for that Kind. This lets callers use
// errors.Is(err, wire.ErrIncompleteFrame) without caring which layer
// produced it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewError constructs an *Error for kind with a formatted message.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Sentinel errors for errors.Is comparisons against a fixed Kind, one
// per layer's shared enumeration value.
var (
	ErrBufferTooSmall           = &Error{Kind: KindBufferTooSmall}
	ErrBufferOverrun            = &Error{Kind: KindBufferOverrun}
	ErrIncompleteFrame          = &Error{Kind: KindIncompleteFrame}
	ErrInvalidLength            = &Error{Kind: KindInvalidLength}
	ErrInvalidProtocolVersion   = &Error{Kind: KindInvalidProtocolVersion}
	ErrInvalidInterfaceVersion  = &Error{Kind: KindInvalidInterfaceVersion}
	ErrInvalidMessageType       = &Error{Kind: KindInvalidMessageType}
	ErrInvalidReturnCode        = &Error{Kind: KindInvalidReturnCode}
	ErrInvalidBoolValue         = &Error{Kind: KindInvalidBoolValue}
	ErrInvalidUTF8              = &Error{Kind: KindInvalidUTF8}
	ErrInvalidUTF16             = &Error{Kind: KindInvalidUTF16}
	ErrInvalidBOM               = &Error{Kind: KindInvalidBOM}
	ErrInvalidStringTermination = &Error{Kind: KindInvalidStringTermination}
	ErrInvalidUnionSelector     = &Error{Kind: KindInvalidUnionSelector}
	ErrSDInvalidHeader          = &Error{Kind: KindSDInvalidHeader}
	ErrSDInvalidLengths         = &Error{Kind: KindSDInvalidLengths}
	ErrSDUnknownOption          = &Error{Kind: KindSDUnknownOption}
)
