package protocol

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/swiftfetch/nativehost/internal/protocol/frame"
)

// Codec frames JSON messages over a stream pair. Writes are flushed per
// message so the receiving end is never left waiting on a buffered frame.
type Codec struct {
	r      io.Reader
	w      *bufio.Writer
	limits frame.Limits
}

func NewCodec(r io.Reader, w io.Writer, limits frame.Limits) *Codec {
	return &Codec{r: r, w: bufio.NewWriter(w), limits: limits}
}

// ReadMessage reads and decodes one inbound frame. io.EOF means the
// stream closed cleanly between frames; frame and decode faults keep
// their sentinel identities.
func (c *Codec) ReadMessage() (Message, error) {
	payload, err := frame.ReadPayload(c.r, c.limits)
	if err != nil {
		return Message{}, err
	}
	return DecodeMessage(payload)
}

// WriteResponse serializes resp and writes it as one flushed frame.
func (c *Codec) WriteResponse(resp any) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if err := frame.WritePayload(c.w, payload, c.limits); err != nil {
		return err
	}
	return c.w.Flush()
}
