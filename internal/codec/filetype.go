package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// FileType identifies the pixel layout embedded in a buffer.
type FileType uint8

const (
	Unknown FileType = 0x00
	Gray8   FileType = 0x01
	RGB8    FileType = 0x02
	Gray16  FileType = 0x03
	RGB16   FileType = 0x04
)

type typeInfo struct {
	name     string
	channels int
	depth    BitDepth
}

// registry lists every bitmap type this build can read and write.
var registry = map[FileType]typeInfo{
	Gray8:  {name: "gray8", channels: 1, depth: Depth8},
	RGB8:   {name: "rgb8", channels: 3, depth: Depth8},
	Gray16: {name: "gray16", channels: 1, depth: Depth16},
	RGB16:  {name: "rgb16", channels: 3, depth: Depth16},
}

// Known reports whether t is a registered bitmap type.
func (t FileType) Known() bool {
	_, ok := registry[t]
	return ok
}

// Channels returns the number of samples per pixel. Unknown buffers are
// read one sample per pixel.
func (t FileType) Channels() int {
	if info, ok := registry[t]; ok {
		return info.channels
	}
	return 1
}

// Depth returns the sample depth of t, or zero for Unknown.
func (t FileType) Depth() BitDepth {
	return registry[t].depth
}

func (t FileType) String() string {
	if info, ok := registry[t]; ok {
		return info.name
	}
	if t == Unknown {
		return "unknown"
	}
	return fmt.Sprintf("FileType(0x%02x)", uint8(t))
}

// ParseFileType looks a type up by name, e.g. "rgb8".
func ParseFileType(name string) (FileType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, info := range registry {
		if info.name == name {
			return t, nil
		}
	}
	return Unknown, fmt.Errorf("unknown file type %q (want gray8, rgb8, gray16 or rgb16)", name)
}

// FileTypes returns the registered type names in id order.
func FileTypes() []string {
	names := make([]string, 0, len(registry))
	for t := Gray8; t <= RGB16; t++ {
		if info, ok := registry[t]; ok {
			names = append(names, info.name)
		}
	}
	return names
}

// Detect classifies buf by its fixed-size signature prefix. It never fails:
// anything that does not carry a current image chunk is Unknown.
func Detect(buf []byte) FileType {
	if len(buf) < signatureSize {
		return Unknown
	}
	if !bytes.Equal(buf[0:4], riffID) || !bytes.Equal(buf[8:12], waveID) {
		return Unknown
	}
	if !bytes.Equal(buf[offChunkID:offChunkID+4], imageChunkID) {
		return Unknown
	}
	if binary.LittleEndian.Uint32(buf[offChunkSize:]) != imageChunkSize {
		return Unknown
	}
	if buf[offVersion] != ContractVersion {
		return Unknown
	}

	t := FileType(buf[offType])
	if !t.Known() {
		return Unknown
	}
	return t
}
