package batcher

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/huynhanx03/batchcollector/pkg/utils"
)

var validate = validator.New()

// RateLimitingConfiguration defines how many items fit into one batch and
// how frequently batches may be posted. It is immutable once a Collector
// has been created with it.
type RateLimitingConfiguration struct {
	// MaxNumberOfItems is the capacity of a batch. A batch that reaches it
	// is queued for posting immediately.
	MaxNumberOfItems int `validate:"gte=1"`

	// MaxTimeBetweenPosts bounds how long an under-full batch may collect
	// items, counted from the first item pushed into it.
	MaxTimeBetweenPosts time.Duration `validate:"gt=0"`

	// MinTimeBetweenPosts is the minimum spacing between two queued
	// deliveries. Nil means no spacing is enforced.
	MinTimeBetweenPosts *time.Duration `validate:"omitempty,gte=0"`
}

// NewRateLimitingConfiguration builds a configuration without a minimum
// spacing between posts.
func NewRateLimitingConfiguration(maxNumberOfItems int, maxTimeBetweenPostsInSeconds float64) RateLimitingConfiguration {
	return RateLimitingConfiguration{
		MaxNumberOfItems:    maxNumberOfItems,
		MaxTimeBetweenPosts: utils.SecondsToDuration(maxTimeBetweenPostsInSeconds),
	}
}

// WithMinTimeBetweenPosts returns a copy of cfg that enforces the given
// spacing between queued deliveries.
func (cfg RateLimitingConfiguration) WithMinTimeBetweenPosts(seconds float64) RateLimitingConfiguration {
	d := utils.SecondsToDuration(seconds)
	cfg.MinTimeBetweenPosts = &d
	return cfg
}

// Validate checks the configuration invariants.
func (cfg RateLimitingConfiguration) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return errors.Wrap(ErrInvalidConfiguration, err.Error())
	}
	return nil
}

// minSpacing returns the enforced spacing and whether one is set.
func (cfg RateLimitingConfiguration) minSpacing() (time.Duration, bool) {
	if cfg.MinTimeBetweenPosts == nil {
		return 0, false
	}
	return *cfg.MinTimeBetweenPosts, true
}
