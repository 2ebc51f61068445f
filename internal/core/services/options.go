package services

import "time"

const defaultMaxNumberAttempts = 5

// serviceOptions carries the knobs shared by every service constructor.
type serviceOptions struct {
	clock             func() time.Time
	strictPeriodClose bool
	maxNumberAttempts int
}

// ServiceOption is a functional option for configuring the ledger services
type ServiceOption func(*serviceOptions)

// WithClock overrides time.Now, mainly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(o *serviceOptions) {
		o.clock = clock
	}
}

// WithStrictPeriodClose makes ClosePeriod fail while drafts remain in the period.
func WithStrictPeriodClose(strict bool) ServiceOption {
	return func(o *serviceOptions) {
		o.strictPeriodClose = strict
	}
}

// WithMaxNumberAttempts bounds the retries of generated account numbers.
func WithMaxNumberAttempts(n int) ServiceOption {
	return func(o *serviceOptions) {
		if n > 0 {
			o.maxNumberAttempts = n
		}
	}
}

func applyOptions(options []ServiceOption) serviceOptions {
	o := serviceOptions{maxNumberAttempts: defaultMaxNumberAttempts}
	for _, option := range options {
		option(&o)
	}
	return o
}
