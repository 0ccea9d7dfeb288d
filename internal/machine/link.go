package machine

import (
	"io"
	"time"

	"go.bug.st/serial"
)

// Link is a byte stream to the controller. Read returns (0, nil) when the
// read timeout expires without data.
type Link interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
}

// Dialer opens links.
type Dialer interface {
	Dial(port string, baud int) (Link, error)
}

// DialFunc adapts a function to Dialer.
type DialFunc func(port string, baud int) (Link, error)

func (f DialFunc) Dial(port string, baud int) (Link, error) { return f(port, baud) }

// SerialDialer opens real serial ports.
type SerialDialer struct{}

func (SerialDialer) Dial(port string, baud int) (Link, error) {
	p, err := serial.Open(port, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Ports lists the serial ports present on this host.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}
