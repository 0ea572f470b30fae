package encoder

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/v210/errs"
	"github.com/arloliu/v210/internal/options"
	"github.com/arloliu/v210/pack"
)

// Config holds the encoder settings collected from options.
type Config struct {
	packer    pack.Packer
	allocator Allocator
	logger    *logrus.Logger
}

func newConfig() *Config {
	return &Config{
		allocator: HeapAllocator{},
		logger:    logrus.StandardLogger(),
	}
}

// Option configures an Encoder.
type Option = options.Option[*Config]

// WithPacker forces a packer variant instead of detecting one from the CPU.
func WithPacker(p pack.Packer) Option {
	return options.New(func(c *Config) error {
		if p == nil {
			return fmt.Errorf("%w: nil packer", errs.ErrUnknownPacker)
		}
		c.packer = p

		return nil
	})
}

// WithPackerName selects a packer variant by name ("generic" or "wide").
func WithPackerName(name string) Option {
	return options.New(func(c *Config) error {
		p, err := pack.ByName(name)
		if err != nil {
			return err
		}
		c.packer = p

		return nil
	})
}

// WithAllocator sets the allocator used by Encode.
func WithAllocator(a Allocator) Option {
	return options.New(func(c *Config) error {
		if a == nil {
			return fmt.Errorf("%w: nil allocator", errs.ErrConfig)
		}
		c.allocator = a

		return nil
	})
}

// WithLogger sets the logger. The default is logrus.StandardLogger().
func WithLogger(l *logrus.Logger) Option {
	return options.NoError(func(c *Config) {
		if l != nil {
			c.logger = l
		}
	})
}
