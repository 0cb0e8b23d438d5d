package curfile

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rook-computer/cursorgen/internal/cursorerr"
)

func testImage(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < size; i++ {
		img.SetNRGBA(i, i, color.NRGBA{R: 255, A: 200})
	}
	return img
}

func TestEncodeLayout(t *testing.T) {
	data, err := Encode(testImage(32), Hotspot{X: 16, Y: 16})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if want := []byte{0, 0, 2, 0, 1, 0}; !bytes.Equal(data[:6], want) {
		t.Fatalf("header = % x, want % x", data[:6], want)
	}
	entry := data[6:22]
	if entry[0] != 32 || entry[1] != 32 || entry[2] != 0 || entry[3] != 0 {
		t.Fatalf("entry size bytes = % x, want 20 20 00 00", entry[:4])
	}
	if x, y := binary.LittleEndian.Uint16(entry[4:]), binary.LittleEndian.Uint16(entry[6:]); x != 16 || y != 16 {
		t.Fatalf("hotspot = (%d,%d), want (16,16)", x, y)
	}
	size := binary.LittleEndian.Uint32(entry[8:])
	offset := binary.LittleEndian.Uint32(entry[12:])
	if offset != 22 {
		t.Fatalf("payload offset = %d, want 22", offset)
	}
	if int(size) != len(data)-22 {
		t.Fatalf("payload size = %d, want %d", size, len(data)-22)
	}
	if !bytes.HasPrefix(data[22:], pngSignature) {
		t.Fatalf("payload does not start with the PNG signature")
	}
}

func TestEncodeDimensionSentinel(t *testing.T) {
	tests := []struct {
		size     int
		wantByte uint8
	}{
		{1, 1},
		{48, 48},
		{255, 255},
		{256, 0},
	}
	for _, tt := range tests {
		data, err := Encode(image.NewNRGBA(image.Rect(0, 0, tt.size, tt.size)), Hotspot{})
		if err != nil {
			t.Fatalf("Encode(%d) failed: %v", tt.size, err)
		}
		if data[6] != tt.wantByte || data[7] != tt.wantByte {
			t.Errorf("Encode(%d) dimension bytes = %d,%d want %d", tt.size, data[6], data[7], tt.wantByte)
		}
		f, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode(%d) failed: %v", tt.size, err)
		}
		if f.Width != tt.size || f.Height != tt.size {
			t.Errorf("Decode(%d) = %dx%d", tt.size, f.Width, f.Height)
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		img     image.Image
		hotspot Hotspot
	}{
		{"empty", image.NewNRGBA(image.Rectangle{}), Hotspot{}},
		{"too wide", image.NewNRGBA(image.Rect(0, 0, 257, 32)), Hotspot{}},
		{"too tall", image.NewNRGBA(image.Rect(0, 0, 32, 300)), Hotspot{}},
		{"hotspot x", testImage(32), Hotspot{X: 32}},
		{"hotspot y", testImage(32), Hotspot{Y: 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.img, tt.hotspot)
			if !cursorerr.Is(err, cursorerr.KindEncode) {
				t.Fatalf("Encode error = %v, want Encode kind", err)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	src := testImage(32)
	data, err := Encode(src, Hotspot{X: 3, Y: 7})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	f, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := File{Type: TypeCursor, Count: 1, Width: 32, Height: 32, Hotspot: Hotspot{X: 3, Y: 7}, Offset: PayloadOffset, Payload: data[PayloadOffset:]}
	if diff := cmp.Diff(want, *f); diff != "" {
		t.Fatalf("Decode mismatch (-want +got):\n%s", diff)
	}
	img, err := f.Image()
	if err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if want := src.NRGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	a, _ := Encode(testImage(32), Hotspot{})
	b, _ := Encode(testImage(32), Hotspot{})
	if !bytes.Equal(a, b) {
		t.Fatalf("Encode is not deterministic")
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	good, err := Encode(testImage(8), Hotspot{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	mutate := func(f func(b []byte) []byte) []byte {
		b := append([]byte(nil), good...)
		return f(b)
	}
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", good[:4]},
		{"icon type", mutate(func(b []byte) []byte { b[2] = TypeIcon; return b })},
		{"reserved", mutate(func(b []byte) []byte { b[0] = 1; return b })},
		{"no images", mutate(func(b []byte) []byte { b[4] = 0; return b })},
		{"truncated directory", good[:12]},
		{"payload past end", good[:len(good)-1]},
		{"offset inside directory", mutate(func(b []byte) []byte { binary.LittleEndian.PutUint32(b[18:], 4); return b })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.data); !cursorerr.Is(err, cursorerr.KindDecode) {
				t.Fatalf("Decode error = %v, want Decode kind", err)
			}
		})
	}
}

func TestImageChecksDirectory(t *testing.T) {
	data, _ := Encode(testImage(16), Hotspot{})
	data[6] = 32 // lie about the width
	f, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if _, err := f.Image(); !cursorerr.Is(err, cursorerr.KindDecode) {
		t.Fatalf("Image error = %v, want Decode kind", err)
	}

	f.Payload = []byte("BM not a png")
	if f.IsPNG() {
		t.Fatalf("IsPNG accepted a bitmap payload")
	}
}
