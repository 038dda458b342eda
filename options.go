package htmlbalance

import (
	"sort"
	"strings"

	"github.com/corvidwiki/htmlbalance/errors"
	"github.com/corvidwiki/htmlbalance/internal/constants"
)

// ProcessingCallback is applied to the pre-normalization attribute string of
// every tag, by reference, before allow-listing and normalization run
// (spec.md §6), so tags the allow-list later rejects are passed to it too. Hosts use it for template/variable substitution.
type ProcessingCallback func(attrs *string, args any)

// config holds the builder configuration for a Balance call.
type config struct {
	strict             bool
	allowed            map[string]bool
	normalizeAttrs     func(string) string
	processingCallback ProcessingCallback
}

// newConfig creates a config with defaults and applies options.
func newConfig(opts ...Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// validate checks the assembled config for the construction-time
// contradictions spec.md §6 calls out as configuration errors.
func (c *config) validate() error {
	if c.allowed == nil {
		return nil
	}
	var disallowed []string
	for name := range c.allowed {
		if constants.IsUnsupported(name) {
			disallowed = append(disallowed, name)
		}
	}
	if len(disallowed) == 0 {
		return nil
	}
	sort.Strings(disallowed)
	return &errors.ConfigError{
		Code:    errors.CodeDisallowedElement,
		Message: "allow-list intersects the unsupported-element set: " + strings.Join(disallowed, ", "),
	}
}

// Option configures a Balance call.
type Option func(*config)

// WithStrictMode enables strict mode: the input contract (spec.md §6) is
// asserted before tokenization, and any violation aborts the call with an
// AssertionError (an errors.Errors collecting them when there are several)
// instead of degrading gracefully.
func WithStrictMode() Option {
	return func(c *config) {
		c.strict = true
	}
}

// WithAllowedElements restricts accepted tags to names. A tag whose
// lowercased name is absent from names degrades to literal text instead of
// being balanced. names must not overlap spec.md §1's unsupported-element
// set; overlap is rejected by validate at construction time.
func WithAllowedElements(names ...string) Option {
	return func(c *config) {
		c.allowed = make(map[string]bool, len(names))
		for _, n := range names {
			c.allowed[strings.ToLower(n)] = true
		}
	}
}

// WithAttrNormalizer installs a host-supplied attribute canonicalization
// function, run on every tag's attribute string after the processing
// callback and allow-list filtering have applied.
func WithAttrNormalizer(fn func(string) string) Option {
	return func(c *config) {
		c.normalizeAttrs = fn
	}
}

// WithProcessingCallback installs a hook invoked with the pre-normalization
// attribute string of every tag, by reference, along with the
// processingArgs passed to Balance.
func WithProcessingCallback(cb ProcessingCallback) Option {
	return func(c *config) {
		c.processingCallback = cb
	}
}
