package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-audio/wav"
)

// Payload is the sample stream a decode reads pixels from. Data aliases the
// caller's buffer.
type Payload struct {
	Data         []byte
	Depth        BitDepth
	Channels     int // Samples per pixel
	TotalSamples int
}

// Sample returns the amplitude at sample index i.
func (p Payload) Sample(i int) int {
	return SampleAt(p.Data, i, p.Depth)
}

// Pixels returns the number of whole pixels in the payload.
func (p Payload) Pixels() int {
	if p.Channels == 0 {
		return 0
	}
	return p.TotalSamples / p.Channels
}

// Locate resolves the payload of buf for header h. Known types are read at
// their fixed offsets. Unknown buffers are force-decoded as one gray sample
// per pixel: a WAV file's PCM data if buf is one, otherwise the raw bytes.
func Locate(buf []byte, h Header) (Payload, error) {
	if !h.validSize() {
		return Payload{}, fmt.Errorf("locate: dimensions %dx%d: %w", h.Width, h.Height, ErrCorruptHeader)
	}
	if h.Type == Unknown {
		return locateUnknown(buf, h)
	}

	if len(buf) < HeaderSize {
		return Payload{}, fmt.Errorf("locate %s: buffer is %d bytes: %w", h.Type, len(buf), ErrCorruptHeader)
	}
	if stored := FileType(buf[offType]); stored != h.Type {
		return Payload{}, fmt.Errorf("locate %s: buffer declares %s: %w", h.Type, stored, ErrCorruptHeader)
	}
	if bits := binary.LittleEndian.Uint16(buf[offBits:]); int(bits) != int(h.Type.Depth()) {
		return Payload{}, fmt.Errorf("locate %s: buffer holds %d-bit samples: %w", h.Type, bits, ErrCorruptHeader)
	}
	size := h.PayloadSize()
	declared := int(binary.LittleEndian.Uint32(buf[offDataSize:]))
	if !bytes.Equal(buf[offDataID:offDataID+4], dataID) || declared < size {
		return Payload{}, fmt.Errorf("locate %s: data chunk declares %d bytes, %dx%d needs %d: %w",
			h.Type, declared, h.Width, h.Height, size, ErrCorruptHeader)
	}
	if len(buf) < HeaderSize+size {
		return Payload{}, fmt.Errorf("locate %s: buffer holds %d payload bytes, need %d: %w",
			h.Type, len(buf)-HeaderSize, size, ErrCorruptHeader)
	}

	return Payload{
		Data:         buf[HeaderSize : HeaderSize+size],
		Depth:        h.Type.Depth(),
		Channels:     h.Type.Channels(),
		TotalSamples: h.TotalSamples(),
	}, nil
}

func locateUnknown(buf []byte, h Header) (Payload, error) {
	p := Payload{Data: buf, Depth: Depth8, Channels: 1}

	if bytes.HasPrefix(buf, riffID) {
		pcm, err := LocatePCM(buf)
		if err != nil {
			return Payload{}, err
		}
		depth := BitDepth(pcm.BitsPerSample)
		if !depth.Valid() {
			return Payload{}, fmt.Errorf("locate: %d-bit PCM cannot be force-decoded: %w", pcm.BitsPerSample, ErrCorruptHeader)
		}
		p.Data, p.Depth = pcm.Data, depth
	}

	p.TotalSamples = min(len(p.Data)/p.Depth.BytesPerSample(), h.Pixels())
	if p.TotalSamples == 0 {
		return Payload{}, fmt.Errorf("locate: no samples to decode: %w", ErrCorruptHeader)
	}
	return p, nil
}

// PCM describes the audio data of any PCM WAV buffer.
type PCM struct {
	Data          []byte // Aliases the source buffer
	SampleRate    int
	BitsPerSample int
	Channels      int
}

// Frames returns the number of sample frames (samples per channel).
func (p PCM) Frames() int {
	frameSize := p.Channels * p.BitsPerSample / 8
	if frameSize == 0 {
		return 0
	}
	return len(p.Data) / frameSize
}

// Duration returns the playback length.
func (p PCM) Duration() time.Duration {
	if p.SampleRate == 0 {
		return 0
	}
	return time.Duration(float64(p.Frames()) / float64(p.SampleRate) * float64(time.Second))
}

// LocatePCM validates buf as a PCM WAV file and returns its audio data.
// Unknown chunks, including the image chunk, are skipped.
func LocatePCM(buf []byte) (PCM, error) {
	dec := wav.NewDecoder(bytes.NewReader(buf))
	if !dec.IsValidFile() {
		return PCM{}, fmt.Errorf("invalid WAV file: %w", ErrCorruptHeader)
	}
	if err := dec.FwdToPCM(); err != nil {
		return PCM{}, fmt.Errorf("failed to seek to PCM data: %w", err)
	}

	offset, size, ok := findChunk(buf, dataID)
	if !ok {
		return PCM{}, fmt.Errorf("data chunk not found: %w", ErrCorruptHeader)
	}
	if pcmLen := int(dec.PCMLen()); pcmLen < size {
		size = pcmLen
	}
	// Truncated files keep whatever samples made it to disk
	if offset+size > len(buf) {
		size = len(buf) - offset
	}

	return PCM{
		Data:          buf[offset : offset+size],
		SampleRate:    int(dec.SampleRate),
		BitsPerSample: int(dec.BitDepth),
		Channels:      int(dec.NumChans),
	}, nil
}

// findChunk walks the RIFF chunk list and returns the body offset and
// declared size of the first chunk with the given id.
func findChunk(buf []byte, id []byte) (offset, size int, ok bool) {
	if len(buf) < 12 {
		return 0, 0, false
	}

	pos := 12
	for pos+8 <= len(buf) {
		chunkID := buf[pos : pos+4]
		chunkSize := int(binary.LittleEndian.Uint32(buf[pos+4 : pos+8]))
		pos += 8

		if bytes.Equal(chunkID, id) {
			return pos, chunkSize, true
		}

		pos += chunkSize + chunkSize%2
	}
	return 0, 0, false
}

// Info summarises a buffer for display.
type Info struct {
	Header        Header
	Degraded      bool // Type was not recognised; dimensions are the fallback
	SampleRate    int
	BitsPerSample int
	Channels      int
	Samples       int // Samples the decoder will consume
	Duration      time.Duration
}

// Describe detects, parses and locates buf without decoding it.
func Describe(buf []byte) (Info, error) {
	typ := Detect(buf)
	h, err := Parse(buf, typ)
	if err != nil {
		return Info{}, err
	}
	payload, err := Locate(buf, h)
	if err != nil {
		return Info{}, err
	}

	info := Info{
		Header:        h,
		Degraded:      typ == Unknown,
		BitsPerSample: int(payload.Depth),
		Channels:      1,
		Samples:       payload.TotalSamples,
	}
	if pcm, err := LocatePCM(buf); err == nil {
		info.SampleRate = pcm.SampleRate
		info.BitsPerSample = pcm.BitsPerSample
		info.Channels = pcm.Channels
		info.Duration = pcm.Duration()
	}
	return info, nil
}
