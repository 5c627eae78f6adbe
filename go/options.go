package posserver

import (
	"log/slog"
	"time"

	catalogapp "github.com/Apurer/autoparts-pos/internal/domains/catalog/application"
	apierrors "github.com/Apurer/autoparts-pos/internal/shared/errors"
	"github.com/Apurer/autoparts-pos/internal/shared/money"
)

// Options carries the presentation settings shared by the API sections.
type Options struct {
	// Formatter falls back to the default currency symbol when zero.
	Formatter         money.Formatter
	LowStockThreshold int
	Responder         *apierrors.Responder
	Logger            *slog.Logger
	// Now is the clock used to pick the default report month.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.LowStockThreshold <= 0 {
		o.LowStockThreshold = catalogapp.DefaultLowStockThreshold
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Responder == nil {
		o.Responder = NewResponder("", o.Logger)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
