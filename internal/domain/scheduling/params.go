package scheduling

import (
	"time"

	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain"
)

// Params defines the configurable parameters of the scheduling rules
type Params struct {
	// DefaultCurrency is applied when an input record omits the currency
	DefaultCurrency domain.Currency

	// CancellationWindow is the minimum lead time for a cancellation
	CancellationWindow time.Duration

	// AllowPastDates lets historical imports create appointments before today
	AllowPastDates bool

	// Now is the clock used by date-sensitive rules
	Now func() time.Time
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance.
// Zero values keep the defaults.
type ParamsConfig struct {
	DefaultCurrency         string
	CancellationWindowHours int
	AllowPastDates          bool
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		DefaultCurrency:    domain.DefaultCurrency,
		CancellationWindow: domain.DefaultCancellationWindow,
		AllowPastDates:     false,
		Now:                time.Now,
	}
}

// NewParams creates a Params instance from a ParamsConfig, starting from the defaults
func NewParams(cfg ParamsConfig) (*Params, error) {
	params := NewDefaultParams()

	if cfg.DefaultCurrency != "" {
		currency, err := domain.ParseCurrency(cfg.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		params.DefaultCurrency = currency
	}
	if cfg.CancellationWindowHours > 0 {
		params.CancellationWindow = time.Duration(cfg.CancellationWindowHours) * time.Hour
	}
	params.AllowPastDates = cfg.AllowPastDates

	return params, nil
}
