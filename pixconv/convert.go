// Package pixconv converts client pixel buffers (SHM wl_shm and DRM fourcc
// source formats) into a canonical straight-alpha RGBA8888 buffer, in
// row-major order. It is a support library to the renderer: callers submit
// raw bytes and format metadata and get back a freshly allocated, GPU-upload
// ready buffer.
//
// This package never touches GPU resources or shared compositor state; it is
// pure byte-slice-in, byte-slice-out conversion, grounded on the same
// straight-alpha RGBA convention the teacher engine's texture staging uses
// (common.TextureStagingData / ImportedTexture.Decode).
package pixconv

import (
	"github.com/axiom-wm/axiom/internal/axerr"
)

// SourceFormat identifies a recognised client pixel buffer layout.
type SourceFormat int

const (
	XRGB8888 SourceFormat = iota
	ARGB8888
	XBGR8888
	ABGR8888
	RGB565
	BGR565
	BGR888
	RGBA4444
	BGRA4444
	RGBA5551
)

// Warning is an out-of-band, non-fatal signal returned alongside a
// successful Convert call — currently only UnsupportedFormat.
type Warning struct {
	Kind axerr.Kind
	Fmt  SourceFormat
}

// tileSize is the edge length in pixels of each checkerboard tile in the
// unsupported-format fallback pattern.
const tileSize = 16

// Convert produces a freshly allocated RGBA8888 buffer of width*height*4
// bytes from src, interpreting it per format. Alpha is straight (not
// premultiplied); X-variants always produce alpha 255.
//
// Returns a non-nil Warning (and a deterministic diagnostic fallback
// pattern in place of real pixel data) if format is unrecognised and
// allowFallback is true. If allowFallback is false, an unrecognised format
// is a hard error.
func Convert(src []byte, width, height, stride, offset int, format SourceFormat, allowFallback bool) ([]byte, *Warning, error) {
	if width <= 0 || height <= 0 {
		return nil, nil, axerr.New(axerr.KindUnsupportedFormat, "width and height must be positive, got %dx%d", width, height)
	}
	if offset < 0 || stride < 0 || len(src) < offset+stride*height {
		return nil, nil, axerr.New(axerr.KindUnsupportedFormat, "source slice too small: need at least %d bytes, have %d", offset+stride*height, len(src))
	}

	decode, ok := decoders[format]
	if !ok {
		if !allowFallback {
			return nil, nil, axerr.New(axerr.KindUnsupportedFormat, "unrecognised source format %d", format)
		}
		return fallbackPattern(width, height), &Warning{Kind: axerr.KindUnsupportedFormat, Fmt: format}, nil
	}

	out := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		row := src[offset+y*stride:]
		for x := 0; x < width; x++ {
			r, g, b, a := decode(row, x)
			o := (y*width + x) * 4
			out[o], out[o+1], out[o+2], out[o+3] = r, g, b, a
		}
	}
	return out, nil, nil
}

// pixelDecoder reads the pixel at column x of a single source row (already
// offset to the row's start) and returns its straight-alpha RGBA8888 value.
type pixelDecoder func(row []byte, x int) (r, g, b, a byte)

var decoders = map[SourceFormat]pixelDecoder{
	XRGB8888: decode8888(1, 2, 3, -1),
	ARGB8888: decode8888(1, 2, 3, 0),
	XBGR8888: decode8888(3, 2, 1, -1),
	ABGR8888: decode8888(3, 2, 1, 0),
	BGR888:   decode888,
	RGB565:   decode565(false),
	BGR565:   decode565(true),
	RGBA4444: decode4444(false),
	BGRA4444: decode4444(true),
	RGBA5551: decode5551,
}

// expand scales a lo-order-bits value of N bits up to 8 bits via a plain
// left shift with zero-fill (the formula this core fixes for Open
// Question 1 — see SPEC_FULL.md §4.1).
func expand(v byte, bits int) byte {
	return v << uint(8-bits)
}

// decode8888 builds a decoder for a 4-byte-per-pixel format where rBytePos,
// gBytePos, bBytePos are the byte offsets (0-3) within the pixel for each
// channel, and aBytePos is the alpha byte offset, or -1 for an X-variant
// (alpha forced to 255).
func decode8888(rBytePos, gBytePos, bBytePos, aBytePos int) pixelDecoder {
	return func(row []byte, x int) (byte, byte, byte, byte) {
		p := row[x*4 : x*4+4]
		a := byte(255)
		if aBytePos >= 0 {
			a = p[aBytePos]
		}
		return p[rBytePos], p[gBytePos], p[bBytePos], a
	}
}

func decode888(row []byte, x int) (byte, byte, byte, byte) {
	p := row[x*3 : x*3+3]
	// name order B,G,R: byte0=B, byte1=G, byte2=R
	return p[2], p[1], p[0], 255
}

// decode565 builds a decoder for a 2-byte 5:6:5 packed pixel. swapRB selects
// BGR565 (blue occupies the low 5 bits) instead of RGB565 (red low).
func decode565(swapRB bool) pixelDecoder {
	return func(row []byte, x int) (byte, byte, byte, byte) {
		v := uint16(row[x*2]) | uint16(row[x*2+1])<<8
		c0 := expand(byte(v&0x1F), 5)
		g := expand(byte((v>>5)&0x3F), 6)
		c1 := expand(byte((v>>11)&0x1F), 5)
		if swapRB {
			return c1, g, c0, 255
		}
		return c0, g, c1, 255
	}
}

// decode4444 builds a decoder for a 2-byte 4:4:4:4 packed pixel. swapRB
// selects BGRA4444 (blue in the lowest nibble) instead of RGBA4444.
func decode4444(swapRB bool) pixelDecoder {
	return func(row []byte, x int) (byte, byte, byte, byte) {
		v := uint16(row[x*2]) | uint16(row[x*2+1])<<8
		c0 := expand(byte(v&0xF), 4)
		g := expand(byte((v>>4)&0xF), 4)
		c1 := expand(byte((v>>8)&0xF), 4)
		a := expand(byte((v>>12)&0xF), 4)
		if swapRB {
			return c1, g, c0, a
		}
		return c0, g, c1, a
	}
}

func decode5551(row []byte, x int) (byte, byte, byte, byte) {
	v := uint16(row[x*2]) | uint16(row[x*2+1])<<8
	r := expand(byte(v&0x1F), 5)
	g := expand(byte((v>>5)&0x1F), 5)
	b := expand(byte((v>>10)&0x1F), 5)
	a := byte(0)
	if v&0x8000 != 0 {
		a = 255
	}
	return r, g, b, a
}

// fallbackPattern produces a deterministic diagonal two-tone checkerboard so
// visual corruption from an unsupported format is immediately diagnosable
// rather than silently blank.
func fallbackPattern(width, height int) []byte {
	out := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			o := (y*width + x) * 4
			if ((x/tileSize)+(y/tileSize))%2 == 0 {
				out[o], out[o+1], out[o+2], out[o+3] = 0xFF, 0x00, 0xFF, 0xFF
			} else {
				out[o], out[o+1], out[o+2], out[o+3] = 0x00, 0xFF, 0x00, 0xFF
			}
		}
	}
	return out
}
