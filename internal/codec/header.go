package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/linuxmatters/pixwav/internal/config"
)

// ContractVersion is the layout version stored in every image chunk.
const ContractVersion = 1

// Canonical layout of an encoded file. All fields are little endian.
//
//	 0 "RIFF"  4 riff size  8 "WAVE"
//	12 "fmt "  16 16  20 PCM  22 mono  24 rate  28 byte rate  32 align  34 bits
//	36 "pxwv"  40 12  44 version  45 type  46 reserved  48 width  52 height
//	56 "data"  60 data size
//	64 samples
const (
	offRIFFSize   = 4
	offFmtChunk   = 12
	offSampleRate = 24
	offBits       = 34
	offChunkID    = 36
	offChunkSize  = 40
	offVersion    = 44
	offType       = 45
	offWidth      = 48
	offHeight     = 52
	offDataID     = 56
	offDataSize   = 60

	imageChunkSize = 12
	fmtChunkSize   = 16

	// signatureSize is the prefix Detect inspects.
	signatureSize = offWidth

	// HeaderSize is the offset of the first sample.
	HeaderSize = 64
)

var (
	riffID       = []byte("RIFF")
	waveID       = []byte("WAVE")
	fmtID        = []byte("fmt ")
	dataID       = []byte("data")
	imageChunkID = []byte("pxwv")
)

// Header describes the image carried by a buffer.
type Header struct {
	Type   FileType
	Width  uint32
	Height uint32
}

// Pixels returns width*height.
func (h Header) Pixels() int {
	return int(h.Width) * int(h.Height)
}

// TotalSamples returns the number of samples a known type's payload holds.
func (h Header) TotalSamples() int {
	return h.Pixels() * h.Type.Channels()
}

// PayloadSize returns the payload length in bytes for a known type.
func (h Header) PayloadSize() int {
	return h.TotalSamples() * h.Type.Depth().BytesPerSample()
}

// FallbackHeader is the header used to force-decode an unrecognised buffer.
func FallbackHeader() Header {
	return Header{Type: Unknown, Width: config.MinStageWidth, Height: config.MinStageHeight}
}

// Parse reads the header of buf. Unknown buffers are not parsed: they get
// the fallback stage size, and the caller is expected to tell the user the
// result is degraded.
func Parse(buf []byte, typ FileType) (Header, error) {
	if typ == Unknown {
		return FallbackHeader(), nil
	}
	if !typ.Known() {
		return Header{}, fmt.Errorf("parse %s: %w", typ, ErrCorruptHeader)
	}
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("parse %s: buffer is %d bytes, header needs %d: %w",
			typ, len(buf), HeaderSize, ErrCorruptHeader)
	}
	if stored := FileType(buf[offType]); stored != typ {
		return Header{}, fmt.Errorf("parse %s: buffer declares %s: %w", typ, stored, ErrCorruptHeader)
	}

	h := Header{
		Type:   typ,
		Width:  binary.LittleEndian.Uint32(buf[offWidth:]),
		Height: binary.LittleEndian.Uint32(buf[offHeight:]),
	}
	if !h.validSize() {
		return Header{}, fmt.Errorf("parse %s: dimensions %dx%d: %w", typ, h.Width, h.Height, ErrCorruptHeader)
	}
	return h, nil
}

// validSize reports whether both sides are in [1, MaxDimension]. Payload
// arithmetic is only safe on headers that pass.
func (h Header) validSize() bool {
	return h.Width > 0 && h.Height > 0 &&
		h.Width <= config.MaxDimension && h.Height <= config.MaxDimension
}

// Write serializes h and payload at the default sample rate.
func Write(h Header, payload []byte) ([]byte, error) {
	return WriteWithRate(h, payload, config.SampleRate)
}

// WriteWithRate serializes the canonical layout followed by payload. The
// payload must already be PCM in the type's depth.
func WriteWithRate(h Header, payload []byte, sampleRate int) ([]byte, error) {
	if !h.Type.Known() {
		return nil, fmt.Errorf("write %s: %w", h.Type, ErrUnsupportedImage)
	}
	if !h.validSize() {
		return nil, fmt.Errorf("write %dx%d: %w", h.Width, h.Height, ErrUnsupportedImage)
	}
	if sampleRate <= 0 || sampleRate > math.MaxInt32 {
		return nil, fmt.Errorf("write: sample rate %d out of range", sampleRate)
	}
	if want := h.PayloadSize(); len(payload) != want {
		return nil, fmt.Errorf("write: payload is %d bytes, %dx%d %s needs %d: %w",
			len(payload), h.Width, h.Height, h.Type, want, ErrCorruptHeader)
	}
	if uint64(HeaderSize-8)+uint64(len(payload))+1 > math.MaxUint32 {
		return nil, fmt.Errorf("write: payload of %d bytes overflows RIFF size: %w", len(payload), ErrUnsupportedImage)
	}

	depth := h.Type.Depth()
	bytesPerSample := uint32(depth.BytesPerSample())

	// RIFF chunks are word aligned
	pad := len(payload) % 2
	buf := make([]byte, HeaderSize+len(payload)+pad)

	// RIFF header
	copy(buf[0:4], riffID)
	binary.LittleEndian.PutUint32(buf[offRIFFSize:], uint32(len(buf)-8))
	copy(buf[8:12], waveID)

	// fmt chunk, mono PCM
	copy(buf[offFmtChunk:], fmtID)
	binary.LittleEndian.PutUint32(buf[16:], fmtChunkSize)
	binary.LittleEndian.PutUint16(buf[20:], 1)
	binary.LittleEndian.PutUint16(buf[22:], 1)
	binary.LittleEndian.PutUint32(buf[offSampleRate:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:], uint32(sampleRate)*bytesPerSample)
	binary.LittleEndian.PutUint16(buf[32:], uint16(bytesPerSample))
	binary.LittleEndian.PutUint16(buf[offBits:], uint16(depth))

	// Image chunk
	copy(buf[offChunkID:], imageChunkID)
	binary.LittleEndian.PutUint32(buf[offChunkSize:], imageChunkSize)
	buf[offVersion] = ContractVersion
	buf[offType] = byte(h.Type)
	binary.LittleEndian.PutUint32(buf[offWidth:], h.Width)
	binary.LittleEndian.PutUint32(buf[offHeight:], h.Height)

	// data chunk
	copy(buf[offDataID:], dataID)
	binary.LittleEndian.PutUint32(buf[offDataSize:], uint32(len(payload)))
	copy(buf[HeaderSize:], payload)

	return buf, nil
}
