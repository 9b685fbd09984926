// Package preview готовит кадры для окна просмотра: уменьшает изображение
// до размеров окна и приводит его к RGBA.
package preview

import (
	"image"

	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"
)

// DefaultMaxSize — наибольшая сторона окна по умолчанию.
const DefaultMaxSize = 1024

// Fit уменьшает img с сохранением пропорций, чтобы он поместился
// в maxWidth x maxHeight. Изображение, которое уже помещается, возвращается как есть.
func Fit(img image.Image, maxWidth, maxHeight uint) image.Image {
	b := img.Bounds()
	if uint(b.Dx()) <= maxWidth && uint(b.Dy()) <= maxHeight {
		return img
	}
	return resize.Thumbnail(maxWidth, maxHeight, img, resize.Bilinear)
}

// Frame возвращает кадр RGBA с началом координат в (0, 0),
// уменьшенный до maxSize по большей стороне.
// Порядок байт R, G, B, A совпадает с SDL PIXELFORMAT_ABGR8888.
func Frame(img image.Image, maxSize uint) *image.RGBA {
	if maxSize == 0 {
		maxSize = DefaultMaxSize
	}
	src := Fit(img, maxSize, maxSize)
	b := src.Bounds()
	if rgba, ok := src.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	return dst
}
