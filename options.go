package smile

import "github.com/arloliu/smile/internal/header"

// Options configures a single Encode or Decode call (spec §6).
//
// The zero Options is not valid for direct use; construct one with
// DefaultOptions and apply Option functions.
type Options struct {
	flags       header.Flags
	jacksonVInt bool
}

// Option configures an Options value.
type Option func(*Options)

// DefaultOptions returns the default configuration: shared_names and
// shared_values both enabled, raw_binary disabled, fixed-width ZigZag
// integer packing (spec §6 defaults).
func DefaultOptions() Options {
	return Options{
		flags: header.Flags{
			SharedNames:  true,
			SharedValues: true,
			RawBinary:    false,
		},
	}
}

// WithSharedNames toggles header bit 0 / field-name back-reference sharing.
func WithSharedNames(enabled bool) Option {
	return func(o *Options) { o.flags.SharedNames = enabled }
}

// WithSharedValues toggles header bit 1 / short-string-value back-reference
// sharing.
func WithSharedValues(enabled bool) Option {
	return func(o *Options) { o.flags.SharedValues = enabled }
}

// WithRawBinary toggles header bit 2. It has no other effect in this core:
// no raw-binary token is emitted or consumed (spec §1 Non-goals, §9 "Raw
// binary flag preserved but unimplemented").
func WithRawBinary(enabled bool) Option {
	return func(o *Options) { o.flags.RawBinary = enabled }
}

// WithJacksonVInt selects the authoritative Jackson Smile v1.0.0 VInt
// packing for the 0x24/0x25 integer token payloads instead of this
// core's default fixed-width big-endian ZigZag blob. Use this to
// interoperate with a real Jackson/Smile producer or consumer.
func WithJacksonVInt(enabled bool) Option {
	return func(o *Options) { o.jacksonVInt = enabled }
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
