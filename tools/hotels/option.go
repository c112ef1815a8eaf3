package hotels

import "github.com/voyagent/voyagent/tools"

type Option func(*Config)

// WithCurrency sets the currency of the returned rates.
func WithCurrency(currency string) Option {
	return func(c *Config) {
		c.currency = currency
	}
}

// WithMaxResults caps the number of returned listings.
func WithMaxResults(n int) Option {
	return func(c *Config) {
		c.maxResults = n
	}
}

// WithToolOptions applies shared tool options.
func WithToolOptions(opts ...tools.Option) Option {
	return func(c *Config) {
		for _, opt := range opts {
			opt(&c.Config)
		}
	}
}
