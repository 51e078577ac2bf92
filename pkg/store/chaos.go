package store

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
)

// ChaosConfig controls fault injection probabilities for [Chaos].
//
// Each rate is a float64 from 0.0 (never) to 1.0 (always). The zero value
// disables all fault injection, matching the teacher's pkg/fs.ChaosConfig
// convention of an always-safe zero value.
type ChaosConfig struct {
	// WriteFailRate controls how often WriteAt fails before writing any
	// bytes, simulating a bus error during EEPROM programming.
	WriteFailRate float64

	// TornWriteRate controls how often WriteAt writes only a prefix of the
	// requested bytes before returning an error, simulating power loss
	// mid-program. This is the fault CORE SPEC's "Open question —
	// interrupted write" design note calls out: the Head Finder must treat
	// a torn header as ordinary data, not panic or loop forever.
	//
	// The torn write always lands fewer than 4 bytes (the header size) some
	// fraction of the time via TornBeforeHeaderRate, so header-only tears
	// are exercised deliberately rather than left to chance.
	TornWriteRate float64

	// TornBeforeHeaderRate, conditioned on a torn write occurring, controls
	// how often the tear lands inside the 4-byte version header (producing
	// neither a valid version nor the erased sentinel) rather than after it
	// (producing a valid header with a truncated payload).
	TornBeforeHeaderRate float64

	// ReadFailRate controls how often ReadAt fails entirely.
	ReadFailRate float64

	// Rand supplies randomness for fault selection. If nil, a package-level
	// default source is used. Tests that need determinism should set this
	// to a seeded *rand.Rand via [rand.New].
	Rand *rand.Rand
}

// ErrChaosInjected is returned (wrapped) by [Chaos] whenever it injects a
// failure: WriteFailRate or ReadFailRate firing, or a torn write.
var ErrChaosInjected = errors.New("store: chaos: injected failure")

// Chaos wraps a [Store] and injects faults according to [ChaosConfig].
//
// Grounded on the teacher's pkg/fs.Chaos: a thin decorator over a real
// implementation that the test suite can dial up or down, rather than a
// hand-rolled mock per test case.
type Chaos struct {
	inner  Store
	config ChaosConfig
}

// NewChaos wraps inner with fault injection governed by config.
func NewChaos(inner Store, config ChaosConfig) *Chaos {
	return &Chaos{inner: inner, config: config}
}

// SetConfig replaces the active fault-injection configuration.
func (c *Chaos) SetConfig(config ChaosConfig) {
	c.config = config
}

func (c *Chaos) rng() *rand.Rand {
	if c.config.Rand != nil {
		return c.config.Rand
	}

	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// ReadAt implements [Store].
func (c *Chaos) ReadAt(ctx context.Context, address uint32, length uint32) ([]byte, error) {
	if c.config.ReadFailRate > 0 && c.rng().Float64() < c.config.ReadFailRate {
		return nil, fmt.Errorf("store: chaos: read at %d: %w", address, ErrChaosInjected)
	}

	return c.inner.ReadAt(ctx, address, length)
}

// WriteAt implements [Store].
//
// On a torn write, the bytes up to the cut point are still committed to
// inner before the error is returned — this matches real flash/EEPROM
// behavior, where a power cut mid-program leaves whatever bytes the
// hardware had already latched.
func (c *Chaos) WriteAt(ctx context.Context, address uint32, data []byte) error {
	if c.config.WriteFailRate > 0 && c.rng().Float64() < c.config.WriteFailRate {
		return fmt.Errorf("store: chaos: write at %d: %w", address, ErrChaosInjected)
	}

	if c.config.TornWriteRate > 0 && c.rng().Float64() < c.config.TornWriteRate {
		return c.tornWrite(ctx, address, data)
	}

	return c.inner.WriteAt(ctx, address, data)
}

func (c *Chaos) tornWrite(ctx context.Context, address uint32, data []byte) error {
	const headerSize = 4

	cut := len(data)

	if len(data) > headerSize && c.rng().Float64() < c.config.TornBeforeHeaderRate {
		cut = 1 + c.rng().IntN(headerSize-1)
	} else if len(data) > headerSize {
		cut = headerSize + c.rng().IntN(len(data)-headerSize)
	} else {
		cut = c.rng().IntN(len(data))
	}

	if cut > 0 {
		err := c.inner.WriteAt(ctx, address, data[:cut])
		if err != nil {
			return err
		}
	}

	return fmt.Errorf("store: chaos: torn write at %d (%d/%d bytes landed): %w", address, cut, len(data), ErrChaosInjected)
}

var _ Store = (*Chaos)(nil)
