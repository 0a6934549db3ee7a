// Package host owns the read-dispatch-write loop between the browser
// extension and the companion application.
package host

import (
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/swiftfetch/nativehost/internal/protocol"
	"github.com/swiftfetch/nativehost/internal/protocol/frame"
)

// Launcher starts the companion application for one download target.
type Launcher interface {
	Launch(url string) bool
}

type Config struct {
	Limits frame.Limits
}

func DefaultConfig() Config {
	return Config{Limits: frame.DefaultLimits()}
}

// Host drives one session over a stream pair. Messages are handled
// strictly one at a time; the extension waits for each response before
// sending the next request.
type Host struct {
	codec    *protocol.Codec
	launcher Launcher
	log      zerolog.Logger
}

func New(r io.Reader, w io.Writer, launcher Launcher, log zerolog.Logger, cfg Config) *Host {
	return &Host{
		codec:    protocol.NewCodec(r, w, cfg.Limits),
		launcher: launcher,
		log:      log,
	}
}

// Run drains the inbound stream until it closes. Every fault raised by a
// single message stays inside that iteration: the extension gets a
// best-effort error response and the loop moves to the next frame. Only
// clean end-of-stream (nil) or a broken stream ends the session.
func (h *Host) Run() error {
	h.log.Info().Msg("native host started")
	for {
		msg, err := h.codec.ReadMessage()
		if errors.Is(err, io.EOF) {
			h.log.Info().Msg("input stream closed, native host exiting")
			return nil
		}

		id := uuid.NewString()
		if err != nil {
			if !recoverable(err) {
				h.log.Error().Err(err).Str("msg_id", id).Msg("stream unreadable")
				return err
			}
			h.log.Error().Err(err).Str("msg_id", id).Msg("message read failed")
			h.write(id, protocol.NewError(err.Error()))
			continue
		}

		h.log.Info().Str("msg_id", id).Str("type", msg.Type).Msg("message received")
		h.write(id, h.handle(msg))
	}
}

func (h *Host) handle(msg protocol.Message) any {
	switch msg.Type {
	case protocol.TypePing:
		return protocol.NewPong()
	case protocol.TypeDownload:
		var req protocol.DownloadRequest
		if msg.Download != nil {
			req = *msg.Download
		}
		return protocol.NewDownloadResponse(h.launcher.Launch(req.URL), req.URL, req.Filename)
	case protocol.TypeStatus:
		// app_running is a static acknowledgement; the protocol has never
		// probed the companion's process state.
		return protocol.NewStatus()
	default:
		return protocol.NewError("Unknown message type: " + msg.Type)
	}
}

// write sends one response and swallows write faults: a broken pipe must
// not take down the loop mid-iteration. The next read observes the
// closure and stops cleanly.
func (h *Host) write(id string, resp any) {
	if err := h.codec.WriteResponse(resp); err != nil {
		h.log.Error().Err(err).Str("msg_id", id).Msg("response write failed")
		return
	}
	h.log.Info().Str("msg_id", id).Msg("response sent")
}

// recoverable reports whether a read fault is confined to one frame.
// Anything else means the stream itself is unusable.
func recoverable(err error) bool {
	return errors.Is(err, frame.ErrShortPrefix) ||
		errors.Is(err, frame.ErrTruncatedPayload) ||
		errors.Is(err, frame.ErrPayloadTooLarge) ||
		errors.Is(err, protocol.ErrBadPayload)
}
