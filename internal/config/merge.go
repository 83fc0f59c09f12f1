// Package config holds the typed configuration of every widget. Each widget
// has a resolved struct with defaults and a patch struct whose nil fields
// mean "keep the default". Merging never mutates its inputs.
package config

import "time"

// ColorPair is the two-colour scheme used by frames and ornaments.
type ColorPair struct {
	Primary   string `yaml:"primary" validate:"omitempty,hexcolor"`
	Secondary string `yaml:"secondary" validate:"omitempty,hexcolor"`
}

type ColorPairPatch struct {
	Primary   *string `yaml:"primary"`
	Secondary *string `yaml:"secondary"`
}

func (c ColorPair) Merge(p *ColorPairPatch) ColorPair {
	if p == nil {
		return c
	}
	c.Primary = pick(c.Primary, p.Primary)
	c.Secondary = pick(c.Secondary, p.Secondary)
	return c
}

// Item is a named value shared by rankings, rings and capsules.
type Item struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
}

func pick[T any](base T, p *T) T {
	if p != nil {
		return *p
	}
	return base
}

// pickSlice replaces wholesale; a nil patch keeps a copy of base.
func pickSlice[T any](base, p []T) []T {
	if p != nil {
		return append([]T(nil), p...)
	}
	if base == nil {
		return nil
	}
	return append([]T(nil), base...)
}

func millis(ms int) time.Duration {
	if ms < 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

// Ptr returns a pointer to v, for building patches in code.
func Ptr[T any](v T) *T { return &v }
