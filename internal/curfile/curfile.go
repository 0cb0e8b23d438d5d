// Package curfile reads and writes single-image cursor containers.
//
// A container is a 6 byte header, one 16 byte directory entry and an embedded
// PNG payload. All integers are little-endian.
package curfile

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"

	"github.com/rook-computer/cursorgen/internal/cursorerr"
)

const (
	// TypeIcon and TypeCursor are the container type codes.
	TypeIcon   = 1
	TypeCursor = 2

	HeaderSize = 6
	EntrySize  = 16

	// PayloadOffset is where the image data of a single-image container starts.
	PayloadOffset = HeaderSize + EntrySize

	// MaxDimension is the largest edge an entry can describe; it is stored as 0.
	MaxDimension = 256
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// Hotspot is the pointer position inside the cursor image.
type Hotspot struct {
	X, Y uint16
}

type header struct {
	Reserved uint16
	Type     uint16
	Count    uint16
}

type dirEntry struct {
	Width      uint8
	Height     uint8
	ColorCount uint8
	Reserved   uint8
	HotspotX   uint16
	HotspotY   uint16
	Size       uint32
	Offset     uint32
}

func dimByte(n int) uint8 {
	if n == MaxDimension {
		return 0
	}
	return uint8(n)
}

func dimInt(b uint8) int {
	if b == 0 {
		return MaxDimension
	}
	return int(b)
}

// Encode packs img and hotspot into a cursor container with a PNG payload.
// The image must be 1..256 pixels on each edge and the hotspot must lie on it.
func Encode(img image.Image, hotspot Hotspot) ([]byte, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || w > MaxDimension || h > MaxDimension {
		return nil, cursorerr.New(cursorerr.KindEncode, "image size %dx%d outside 1..%d", w, h, MaxDimension)
	}
	if int(hotspot.X) >= w || int(hotspot.Y) >= h {
		return nil, cursorerr.New(cursorerr.KindEncode, "hotspot (%d,%d) outside %dx%d image", hotspot.X, hotspot.Y, w, h)
	}

	var payload bytes.Buffer
	if err := png.Encode(&payload, img); err != nil {
		return nil, cursorerr.Wrap(cursorerr.KindEncode, err, "png encode")
	}

	out := bytes.NewBuffer(make([]byte, 0, PayloadOffset+payload.Len()))
	hdr := header{Type: TypeCursor, Count: 1}
	entry := dirEntry{
		Width:    dimByte(w),
		Height:   dimByte(h),
		HotspotX: hotspot.X,
		HotspotY: hotspot.Y,
		Size:     uint32(payload.Len()),
		Offset:   PayloadOffset,
	}
	// Writes into a bytes.Buffer can not fail.
	_ = binary.Write(out, binary.LittleEndian, hdr)
	_ = binary.Write(out, binary.LittleEndian, entry)
	out.Write(payload.Bytes())
	return out.Bytes(), nil
}

// File is a decoded cursor container. Only the first image is exposed.
type File struct {
	Type    uint16
	Count   int
	Width   int // 256 when the entry stores 0
	Height  int
	Hotspot Hotspot
	Offset  int
	Payload []byte
}

// Decode parses the header and first directory entry of data and slices out
// the payload. It does not decode the image; see File.Image.
func Decode(data []byte) (*File, error) {
	r := bytes.NewReader(data)
	var hdr header
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, cursorerr.Wrap(cursorerr.KindDecode, err, "read header")
	}
	if hdr.Reserved != 0 {
		return nil, cursorerr.New(cursorerr.KindDecode, "reserved header field is %d", hdr.Reserved)
	}
	if hdr.Type != TypeCursor {
		return nil, cursorerr.New(cursorerr.KindDecode, "container type %d is not a cursor", hdr.Type)
	}
	if hdr.Count == 0 {
		return nil, cursorerr.New(cursorerr.KindDecode, "container has no images")
	}
	if len(data) < HeaderSize+int(hdr.Count)*EntrySize {
		return nil, cursorerr.New(cursorerr.KindDecode, "truncated directory: %d bytes for %d entries", len(data), hdr.Count)
	}

	var entry dirEntry
	if err := binary.Read(r, binary.LittleEndian, &entry); err != nil {
		return nil, cursorerr.Wrap(cursorerr.KindDecode, err, "read directory entry")
	}
	end := uint64(entry.Offset) + uint64(entry.Size)
	if uint64(entry.Offset) < uint64(HeaderSize+int(hdr.Count)*EntrySize) || end > uint64(len(data)) {
		return nil, cursorerr.New(cursorerr.KindDecode, "payload [%d,%d) outside %d byte file", entry.Offset, end, len(data))
	}

	return &File{
		Type:    hdr.Type,
		Count:   int(hdr.Count),
		Width:   dimInt(entry.Width),
		Height:  dimInt(entry.Height),
		Hotspot: Hotspot{X: entry.HotspotX, Y: entry.HotspotY},
		Offset:  int(entry.Offset),
		Payload: data[entry.Offset:end],
	}, nil
}

// IsPNG reports whether the payload is an embedded PNG rather than a DIB.
func (f *File) IsPNG() bool { return bytes.HasPrefix(f.Payload, pngSignature) }

// Image decodes the PNG payload and checks it against the directory entry.
func (f *File) Image() (image.Image, error) {
	if !f.IsPNG() {
		return nil, cursorerr.New(cursorerr.KindDecode, "payload is not an embedded PNG")
	}
	img, err := png.Decode(bytes.NewReader(f.Payload))
	if err != nil {
		return nil, cursorerr.Wrap(cursorerr.KindDecode, err, "png decode")
	}
	b := img.Bounds()
	if b.Dx() != f.Width || b.Dy() != f.Height {
		return nil, cursorerr.New(cursorerr.KindDecode, "payload is %dx%d, directory says %dx%d", b.Dx(), b.Dy(), f.Width, f.Height)
	}
	return img, nil
}
