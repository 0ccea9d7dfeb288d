package machine

import (
	"time"

	"papercut/internal/toolpath"
)

// Config describes the serial link and the plotter.
type Config struct {
	Port     string `yaml:"port" mapstructure:"port"`
	BaudRate int    `yaml:"baud_rate" mapstructure:"baud_rate"`

	// Timeout bounds the wait for one acknowledgement.
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxRetries int           `yaml:"max_retries" mapstructure:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay" mapstructure:"retry_delay"`

	// PollInterval is used as the link read timeout.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
	// SettleDelay is how long the controller gets to boot after the port opens.
	SettleDelay time.Duration `yaml:"settle_delay" mapstructure:"settle_delay"`
	PenDwell    time.Duration `yaml:"pen_dwell" mapstructure:"pen_dwell"`

	Pen         toolpath.PenAngles `yaml:"pen" mapstructure:"pen"`
	Feeds       toolpath.Feeds     `yaml:"feeds" mapstructure:"feeds"`
	Transform   toolpath.Transform `yaml:"transform" mapstructure:"transform"`
	CollapsePen bool               `yaml:"collapse_pen" mapstructure:"collapse_pen"`
}

// DefaultConfig targets a GRBL controller on the first USB serial adapter.
func DefaultConfig() Config {
	return Config{
		Port:         "/dev/ttyUSB0",
		BaudRate:     9600,
		Timeout:      2 * time.Second,
		MaxRetries:   3,
		RetryDelay:   time.Second,
		PollInterval: 10 * time.Millisecond,
		SettleDelay:  2 * time.Second,
		PenDwell:     200 * time.Millisecond,
		Pen:          toolpath.DefaultPenAngles(),
		Feeds:        toolpath.DefaultFeeds(),
		Transform:    toolpath.Identity(),
	}
}

func (c Config) attempts() int {
	if c.MaxRetries < 1 {
		return 1
	}
	return c.MaxRetries
}
