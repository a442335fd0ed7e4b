package logging

import (
	"fmt"
	"io"

	"github.com/Graylog2/go-gelf/gelf"
)

// Facility tags every GELF message sent by NewGelfWriter
const Facility = "dragondata"

// NewGelfWriter opens a UDP GELF writer to a Graylog input at addr.
func NewGelfWriter(addr string) (io.Writer, error) {
	w, err := gelf.NewWriter(addr)
	if err != nil {
		return nil, fmt.Errorf("error creating graylog writer: %w", err)
	}
	w.Facility = Facility
	return w, nil
}
