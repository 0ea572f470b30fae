package archive

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/arloliu/v210/errs"
	"github.com/arloliu/v210/format"
	"github.com/arloliu/v210/internal/options"
)

// Config holds archive settings collected from options. Writer-only options
// are ignored by NewReader.
type Config struct {
	compression format.CompressionType
	streamID    uuid.UUID
	interlaced  bool
	logger      *logrus.Logger
}

func newConfig() *Config {
	return &Config{
		compression: format.CompressionNone,
		logger:      logrus.StandardLogger(),
	}
}

// Option configures a Writer or Reader.
type Option = options.Option[*Config]

// WithCompression sets the payload compression used by a Writer.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *Config) error {
		switch c {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			cfg.compression = c
			return nil
		default:
			return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, c)
		}
	})
}

// WithStreamID sets the stream ID recorded in the file header. By default a
// random version 4 UUID is generated.
func WithStreamID(id uuid.UUID) Option {
	return options.NoError(func(cfg *Config) {
		cfg.streamID = id
	})
}

// WithInterlaced marks the archived frames as interlaced.
func WithInterlaced(v bool) Option {
	return options.NoError(func(cfg *Config) {
		cfg.interlaced = v
	})
}

// WithLogger sets the logger. The default is logrus.StandardLogger().
func WithLogger(l *logrus.Logger) Option {
	return options.NoError(func(cfg *Config) {
		if l != nil {
			cfg.logger = l
		}
	})
}
