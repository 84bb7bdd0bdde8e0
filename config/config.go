/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"dirpx.dev/mpx/apis"
)

const (
	// DefaultFold represents the default for Fold.
	// Members match by exact name unless folding is requested.
	DefaultFold = false
	// DefaultSuppress represents the default for Suppress.
	// Assignment-type mismatches abort the call unless suppression is requested.
	DefaultSuppress = false
	// DefaultTag is the struct tag key consulted for renames and skips.
	DefaultTag = "mpx"
	// DefaultMaxDepth represents the default for MaxDepth.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxDepth = 8
)

// New constructs an apis.Config from the given options.
func New(opts ...Option) apis.Config {
	cfg := Default()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxDepth is valid.
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}

// Apply layers the given options over an existing configuration.
func Apply(cfg apis.Config, opts ...Option) apis.Config {
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}

// Default is the default configuration used when none is provided.
func Default() apis.Config {
	return apis.Config{
		Fold:     DefaultFold,
		Suppress: DefaultSuppress,
		Tag:      DefaultTag,
		MaxDepth: DefaultMaxDepth,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithFold sets case-insensitive member matching.
func WithFold(fold bool) Option {
	return func(c *apis.Config) {
		c.Fold = fold
	}
}

// WithSuppress sets the suppress error policy for assignment mismatches.
func WithSuppress(suppress bool) Option {
	return func(c *apis.Config) {
		c.Suppress = suppress
	}
}

// WithTag sets the struct tag key consulted for renames and skips.
// An empty key disables tag handling.
func WithTag(tag string) Option {
	return func(c *apis.Config) {
		c.Tag = tag
	}
}

// WithMaxDepth sets the recursive-mapping depth guard.
// A negative value resets to the default.
func WithMaxDepth(depth int) Option {
	return func(c *apis.Config) {
		if depth < 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = depth
	}
}

// WithRename appends an explicit rename directive (source name to target name).
func WithRename(from, to string) Option {
	return func(c *apis.Config) {
		c.Renames = append(c.Renames, apis.Rename{From: from, To: to})
	}
}

// WithSkip excludes the named members from matching on both sides.
func WithSkip(names ...string) Option {
	return func(c *apis.Config) {
		c.Skips = append(c.Skips, names...)
	}
}

// WithTransformer appends transformers to the resolution chain.
// Transformers are consulted in the order added.
func WithTransformer(ts ...apis.Transformer) Option {
	return func(c *apis.Config) {
		c.Transformers = append(c.Transformers, ts...)
	}
}
