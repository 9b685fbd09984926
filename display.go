package main

import (
	"image"
	"log/slog"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Raimguzhinov/pnmstretch/internal/pnm"
	"github.com/Raimguzhinov/pnmstretch/internal/preview"
)

// SDL работает только из главного потока.
func init() {
	runtime.LockOSThread()
}

// window — окно SDL с текстурой одного кадра.
type window struct {
	win  *sdl.Window
	rend *sdl.Renderer
	tex  *sdl.Texture
}

// show открывает два окна, исходное и обработанное изображения,
// и крутит цикл отрисовки, пока одно из них не закроют.
func show(logger *slog.Logger, original, processed *pnm.Image, maxSize uint) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}
	defer sdl.Quit()

	before := preview.Frame(original.Image(), maxSize)
	after := preview.Frame(processed.Image(), maxSize)

	winOrig, err := newWindow("Original "+original.Magic(), before, 100, 100)
	if err != nil {
		return err
	}
	defer winOrig.destroy()

	winConv, err := newWindow("Stretched "+processed.Magic(), after, int32(120+before.Rect.Dx()), 100)
	if err != nil {
		return err
	}
	defer winConv.destroy()

	showLoop(logger, winOrig, winConv)
	return nil
}

// showLoop отрисовывает окна и разбирает события в одном потоке,
// как требует SDL. Выход — по закрытию любого окна или завершению приложения.
func showLoop(logger *slog.Logger, windows ...*window) {
	for {
		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			switch e := ev.(type) {
			case *sdl.QuitEvent:
				logger.Debug("Завершение цикла SDL")
				return
			case *sdl.WindowEvent:
				if e.Event == sdl.WINDOWEVENT_CLOSE {
					logger.Debug("Окно закрыто", "window", e.WindowID)
					return
				}
			}
		}
		for _, w := range windows {
			w.render()
		}
		sdl.Delay(16) // ~60 FPS
	}
}

// newWindow создаёт окно размером с кадр и загружает кадр в текстуру.
func newWindow(title string, frame *image.RGBA, x, y int32) (*window, error) {
	w, h := int32(frame.Rect.Dx()), int32(frame.Rect.Dy())

	win, err := sdl.CreateWindow(title, x, y, w, h, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, err
	}
	rend, err := sdl.CreateRenderer(win, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		win.Destroy()
		return nil, err
	}
	tex, err := rend.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, w, h)
	if err != nil {
		rend.Destroy()
		win.Destroy()
		return nil, err
	}
	pixels, pitch, err := tex.Lock(nil)
	if err != nil {
		tex.Destroy()
		rend.Destroy()
		win.Destroy()
		return nil, err
	}
	rowBytes := int(w) * 4
	for row := 0; row < int(h); row++ {
		src := frame.Pix[row*frame.Stride : row*frame.Stride+rowBytes]
		copy(pixels[row*pitch:row*pitch+rowBytes], src)
	}
	tex.Unlock()

	return &window{win: win, rend: rend, tex: tex}, nil
}

func (w *window) render() {
	w.rend.SetDrawColor(0, 0, 0, 255)
	w.rend.Clear()
	w.rend.Copy(w.tex, nil, nil)
	w.rend.Present()
}

func (w *window) destroy() {
	w.tex.Destroy()
	w.rend.Destroy()
	w.win.Destroy()
}
