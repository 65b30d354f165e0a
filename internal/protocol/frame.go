package protocol

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/trivio-games/trivio/internal/bytespool"
)

// A frame is one byte of message code followed by the payload length as a
// little-endian uint32 and then the JSON payload itself.
const (
	headerLen = 5

	// MaxPayloadLen caps a single frame, a peer announcing more is broken
	// or hostile.
	MaxPayloadLen = 1 << 20
)

var FrameTooLargeErr = fmt.Errorf("frame exceeds payload limit")

// Request is one decoded client frame. ReceivedAt anchors answer timing.
type Request struct {
	Code       Code
	Body       []byte
	ReceivedAt time.Time
}

// ReadRequest blocks until a full frame arrives on r.
func ReadRequest(r io.Reader) (Request, error) {
	var header [headerLen]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Request{}, fmt.Errorf("read header: %w", err)
	}

	size := binary.LittleEndian.Uint32(header[1:])
	if size > MaxPayloadLen {
		return Request{}, FrameTooLargeErr
	}

	body := make([]byte, size)
	if _, err := io.ReadFull(r, body); err != nil {
		return Request{}, fmt.Errorf("read body: %w", err)
	}

	return Request{Code: Code(header[0]), Body: body, ReceivedAt: time.Now()}, nil
}

// Response is one outbound frame, payload already marshaled.
type Response struct {
	Code Code
	Body []byte
}

func NewResponse(code Code, v interface{}) (Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return Response{}, fmt.Errorf("marshal: %w", err)
	}

	return Response{Code: code, Body: body}, nil
}

// Write assembles the frame in one buffer so it reaches the socket as a
// single write.
func (resp Response) Write(w io.Writer) error {
	buf := bytespool.Get()
	defer func() {
		buf.Reset()
		bytespool.Put(buf)
	}()

	var header [headerLen]byte
	header[0] = byte(resp.Code)
	binary.LittleEndian.PutUint32(header[1:], uint32(len(resp.Body)))

	buf.Write(header[:])
	buf.Write(resp.Body)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}

	return nil
}
