// Package errs defines the closed set of sentinel errors returned by the
// smile codec. Callers should compare against these with errors.Is; call
// sites that need extra context wrap a sentinel with fmt.Errorf("%w: ...").
package errs

import "errors"

var (
	// ErrInvalidHeader is returned when the first three bytes of the input
	// are not the Smile magic (0x3A 0x29 0x0A).
	ErrInvalidHeader = errors.New("smile: invalid header")

	// ErrUnexpectedEndOfInput is returned when the dispatcher needs a token
	// byte but the input is exhausted.
	ErrUnexpectedEndOfInput = errors.New("smile: unexpected end of input")

	// ErrIncompleteInt32 is returned when fewer than 4 bytes remain after a
	// 32-bit integer token.
	ErrIncompleteInt32 = errors.New("smile: incomplete 32-bit integer")

	// ErrIncompleteInt64 is returned when fewer than 8 bytes remain after a
	// 64-bit integer token.
	ErrIncompleteInt64 = errors.New("smile: incomplete 64-bit integer")

	// ErrIncompleteFloat32 is returned when fewer than 4 bytes remain after
	// a 32-bit float token.
	ErrIncompleteFloat32 = errors.New("smile: incomplete 32-bit float")

	// ErrIncompleteFloat64 is returned when fewer than 8 bytes remain after
	// a 64-bit float token.
	ErrIncompleteFloat64 = errors.New("smile: incomplete 64-bit float")

	// ErrIncompleteString is returned when a declared string length exceeds
	// the bytes remaining in the input.
	ErrIncompleteString = errors.New("smile: incomplete string")

	// ErrMissingStringTerminator is returned when a long string runs to the
	// end of input without an 0xFC terminator.
	ErrMissingStringTerminator = errors.New("smile: missing string terminator")

	// ErrMissingFieldNameTerminator is the field-name-context counterpart of
	// ErrMissingStringTerminator.
	ErrMissingFieldNameTerminator = errors.New("smile: missing field name terminator")

	// ErrIncompleteVInt is returned when a VInt's continuation bit never
	// clears before the input ends.
	ErrIncompleteVInt = errors.New("smile: incomplete vint")

	// ErrUnknownToken is returned when a value-context dispatch byte has no
	// defined meaning.
	ErrUnknownToken = errors.New("smile: unknown token")

	// ErrUnknownKeyToken is the field-name-context counterpart of
	// ErrUnknownToken.
	ErrUnknownKeyToken = errors.New("smile: unknown key token")

	// ErrInvalidSharedReference is returned when a back-reference points at
	// an index the corresponding table has not yet populated.
	ErrInvalidSharedReference = errors.New("smile: invalid shared reference")

	// ErrIncompleteSharedReference is returned when a long value
	// back-reference token is missing its trailing index byte.
	ErrIncompleteSharedReference = errors.New("smile: incomplete shared value reference")

	// ErrIncompleteSharedNameReference is the field-name-context counterpart
	// of ErrIncompleteSharedReference.
	ErrIncompleteSharedNameReference = errors.New("smile: incomplete shared name reference")

	// ErrUnsupportedType is returned by Encode when a value falls outside
	// the enumerated Value variant set.
	ErrUnsupportedType = errors.New("smile: unsupported value type")

	// ErrIntegerOutOfRange is returned by Encode when an integer does not
	// fit in a signed 64-bit range.
	ErrIntegerOutOfRange = errors.New("smile: integer out of range")
)
