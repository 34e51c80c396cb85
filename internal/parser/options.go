package parser

import (
	"github.com/vvka-141/mztabm/internal/logging"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

// Options configures one parse.
type Options struct {
	// MaxErrors bounds the diagnostics collected before the parse aborts.
	// Zero or less means unbounded.
	MaxErrors int
	// Encoding is an IANA character set name. Empty means UTF-8.
	Encoding string
	Logger   mztab.Logger
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MaxErrors: mztab.DefaultMaxErrorCount,
		Encoding:  mztab.DefaultEncoding,
		Logger:    logging.NewNullLogger(),
	}
}

func (o Options) withDefaults() Options {
	if o.Encoding == "" {
		o.Encoding = mztab.DefaultEncoding
	}
	if o.Logger == nil {
		o.Logger = logging.NewNullLogger()
	}
	return o
}
