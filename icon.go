package main

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"runtime"
)

var defaultIcon = func() []byte {
	data := renderIcon(32)
	if runtime.GOOS == "windows" {
		return wrapICO(data, 32)
	}
	return data
}()

// renderIcon draws two overlapping window frames, the back one outlined
// and the front one filled.
func renderIcon(size int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	ink := color.RGBA{R: 30, G: 30, B: 30, A: 255}
	accent := color.RGBA{R: 66, G: 133, B: 244, A: 255}

	s := size
	back := image.Rect(s/8, s/8, s*5/8+s/8, s*5/8)
	front := image.Rect(s*3/8-s/8, s*3/8, s*7/8, s*7/8)
	border := max(1, s/16)

	for y := 0; y < s; y++ {
		for x := 0; x < s; x++ {
			p := image.Pt(x, y)
			switch {
			case p.In(front):
				if p.In(front.Inset(border)) {
					img.Set(x, y, accent)
				} else {
					img.Set(x, y, ink)
				}
			case p.In(back) && !p.In(back.Inset(border)):
				img.Set(x, y, ink)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic("renderIcon: " + err.Error())
	}
	return buf.Bytes()
}

// wrapICO embeds a PNG in a single-image ICO container, which Windows
// accepts since Vista.
func wrapICO(pngData []byte, size int) []byte {
	var buf bytes.Buffer
	w := func(v any) { _ = binary.Write(&buf, binary.LittleEndian, v) }

	w(uint16(0)) // reserved
	w(uint16(1)) // type: icon
	w(uint16(1)) // count

	dim := uint8(size)
	if size >= 256 {
		dim = 0
	}
	w(dim)                   // width
	w(dim)                   // height
	w(uint8(0))              // palette
	w(uint8(0))              // reserved
	w(uint16(1))             // planes
	w(uint16(32))            // bpp
	w(uint32(len(pngData)))  // size
	w(uint32(6 + 16))        // offset
	buf.Write(pngData)
	return buf.Bytes()
}

// getIcon returns the tray icon bytes
func getIcon() []byte {
	return defaultIcon
}
