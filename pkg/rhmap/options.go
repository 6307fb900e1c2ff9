package rhmap

import (
	"math/bits"

	"go.uber.org/zap"
)

const (
	// DefaultRebuildThreshold rebuilds the table once len*3 > capacity
	DefaultRebuildThreshold = 3
	// DefaultGrowthMultiplier and DefaultGrowthOffset give the new
	// capacity as 2*capacity + 3
	DefaultGrowthMultiplier = 2
	DefaultGrowthOffset     = 3
)

// Options configures a Map
type Options struct {
	// RebuildThreshold is the numerator of the load check. The table
	// grows when inserting would make len*RebuildThreshold > capacity.
	RebuildThreshold uint
	// GrowthMultiplier and GrowthOffset compute the new capacity as
	// GrowthMultiplier*capacity + GrowthOffset.
	GrowthMultiplier uint
	GrowthOffset     uint
	// Capacity is the number of entries to size the table for up front.
	Capacity int
	// Logger receives a debug message on every table rebuild.
	Logger *zap.Logger
}

// Option configures a Map constructor
type Option func(*Options)

// DefaultOptions returns the options used when none are given
func DefaultOptions() Options {
	return Options{
		RebuildThreshold: DefaultRebuildThreshold,
		GrowthMultiplier: DefaultGrowthMultiplier,
		GrowthOffset:     DefaultGrowthOffset,
		Logger:           zap.NewNop(),
	}
}

// WithGrowth sets the rebuild threshold and the growth constants. Any
// zero argument keeps its default.
func WithGrowth(threshold, multiplier, offset uint) Option {
	return func(o *Options) {
		o.RebuildThreshold = threshold
		o.GrowthMultiplier = multiplier
		o.GrowthOffset = offset
	}
}

// WithCapacity sizes the table so that n entries fit without a rebuild
func WithCapacity(n int) Option {
	return func(o *Options) {
		o.Capacity = n
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// normalize replaces zero values with defaults so growth always makes
// progress, even from an empty table
func (o *Options) normalize() {
	if o.RebuildThreshold == 0 {
		o.RebuildThreshold = DefaultRebuildThreshold
	}
	if o.GrowthMultiplier == 0 {
		o.GrowthMultiplier = DefaultGrowthMultiplier
	}
	if o.GrowthOffset == 0 {
		o.GrowthOffset = DefaultGrowthOffset
	}
	if o.Capacity < 0 {
		o.Capacity = 0
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// nextCapacity applies the growth formula to c until it reaches need. If
// the formula would overflow, need itself is returned.
func (o *Options) nextCapacity(c, need uint) uint {
	for c < need {
		hi, lo := bits.Mul(o.GrowthMultiplier, c)
		next, carry := bits.Add(lo, o.GrowthOffset, 0)
		if hi != 0 || carry != 0 {
			return need
		}
		c = next
	}
	return c
}
