package codec

import "encoding/binary"

// BitDepth selects how a channel value maps to a PCM amplitude.
//
// Depth8 stores one unsigned 8-bit amplitude per channel value, equal to the
// value itself. Depth16 stores one signed 16-bit amplitude per channel value,
// scaled across the full range: a = v*257 - 32768. Both mappings are
// monotonic and exact inverses, so neither loses data. A configuration that
// packed several channels into one sample would be lossy by up to one
// channel unit.
type BitDepth int

const (
	Depth8  BitDepth = 8
	Depth16 BitDepth = 16
)

// Valid reports whether d is a supported depth.
func (d BitDepth) Valid() bool {
	return d == Depth8 || d == Depth16
}

// BytesPerSample returns the PCM sample width.
func (d BitDepth) BytesPerSample() int {
	return int(d) / 8
}

// Pixel is an 8-bit RGB colour. Single channel types use R as the gray
// value and mirror it into G and B.
type Pixel struct {
	R, G, B uint8
}

// Gray returns a pixel with all channels set to v.
func Gray(v uint8) Pixel {
	return Pixel{R: v, G: v, B: v}
}

// PixelToSamples returns the amplitudes encoding p, one per channel.
func PixelToSamples(p Pixel, channels int, depth BitDepth) []int {
	return AppendSamples(make([]int, 0, channels), p, channels, depth)
}

// AppendSamples appends the amplitudes encoding p to dst.
func AppendSamples(dst []int, p Pixel, channels int, depth BitDepth) []int {
	if channels == 1 {
		return append(dst, channelToAmplitude(p.R, depth))
	}
	return append(dst,
		channelToAmplitude(p.R, depth),
		channelToAmplitude(p.G, depth),
		channelToAmplitude(p.B, depth),
	)
}

// SamplesToPixel reverses PixelToSamples. Amplitudes that fall between
// buckets resolve to the nearest channel value; missing channels read as zero.
func SamplesToPixel(samples []int, channels int, depth BitDepth) Pixel {
	if channels == 1 {
		if len(samples) == 0 {
			return Pixel{}
		}
		return Gray(amplitudeToChannel(samples[0], depth))
	}

	var ch [3]uint8
	for i := 0; i < 3 && i < len(samples); i++ {
		ch[i] = amplitudeToChannel(samples[i], depth)
	}
	return Pixel{R: ch[0], G: ch[1], B: ch[2]}
}

func channelToAmplitude(v uint8, depth BitDepth) int {
	if depth == Depth16 {
		return int(v)*257 - 32768
	}
	return int(v)
}

func amplitudeToChannel(a int, depth BitDepth) uint8 {
	if depth == Depth16 {
		// Round to the nearest bucket centre
		v := (a + 32768 + 128) / 257
		return clampChannel(v)
	}
	return clampChannel(a)
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// PutSample writes amplitude a at sample index i of a little-endian PCM
// stream.
func PutSample(dst []byte, i int, a int, depth BitDepth) {
	if depth == Depth16 {
		binary.LittleEndian.PutUint16(dst[i*2:], uint16(int16(a)))
		return
	}
	dst[i] = uint8(a)
}

// SampleAt reads the amplitude at sample index i of a little-endian PCM
// stream. 8-bit samples are unsigned, 16-bit samples are signed.
func SampleAt(src []byte, i int, depth BitDepth) int {
	if depth == Depth16 {
		return int(int16(binary.LittleEndian.Uint16(src[i*2:])))
	}
	return int(src[i])
}
