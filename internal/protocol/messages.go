package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Version is reported in every pong response.
const Version = "1.0.0"

// Inbound request discriminators.
const (
	TypePing     = "ping"
	TypeDownload = "download"
	TypeStatus   = "status"
)

var (
	ErrBadPayload = errors.New("protocol: payload is not valid JSON")
	ErrEncode     = errors.New("protocol: response not serializable")
)

// DownloadRequest carries the variant fields of a download message.
// Absent fields decode to empty strings.
type DownloadRequest struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Message is one decoded inbound request. Type holds the raw
// discriminator, empty when the sender omitted it; Download is set only
// for TypeDownload.
type Message struct {
	Type     string
	Download *DownloadRequest
}

// DecodeMessage parses one payload into a tagged Message. Any string
// outside the known discriminators (including empty) is preserved so the
// dispatcher can name it in the unknown-type response.
func DecodeMessage(payload []byte) (Message, error) {
	if !gjson.ValidBytes(payload) {
		return Message{}, ErrBadPayload
	}
	msg := Message{Type: gjson.GetBytes(payload, "type").String()}
	if msg.Type == TypeDownload {
		var req DownloadRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return Message{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
		}
		msg.Download = &req
	}
	return msg, nil
}

// PongResponse answers a ping.
type PongResponse struct {
	Type    string `json:"type"`
	Status  string `json:"status"`
	Version string `json:"version"`
}

func NewPong() PongResponse {
	return PongResponse{Type: "pong", Status: "connected", Version: Version}
}

// DownloadResponse reports the launch outcome for one download request.
// Filename is echoed only when the request carried one.
type DownloadResponse struct {
	Type     string `json:"type"`
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
}

func NewDownloadResponse(success bool, url, filename string) DownloadResponse {
	return DownloadResponse{Type: "download_response", Success: success, URL: url, Filename: filename}
}

// StatusResponse acknowledges a status request.
type StatusResponse struct {
	Type       string `json:"type"`
	Connected  bool   `json:"connected"`
	AppRunning bool   `json:"app_running"`
}

func NewStatus() StatusResponse {
	return StatusResponse{Type: "status_response", Connected: true, AppRunning: true}
}

// ErrorResponse reports a per-message fault back to the extension.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewError(message string) ErrorResponse {
	return ErrorResponse{Type: "error", Message: message}
}
