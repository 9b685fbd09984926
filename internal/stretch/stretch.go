// Package stretch растягивает контраст 8-битных изображений по гистограмме:
// считает гистограммы каналов, находит границы отсечения по доле хвостов,
// строит таблицу перекодировки и применяет её параллельно.
package stretch

import (
	"fmt"
	"math"
)

// Options управляет одним запуском Stretch.
type Options struct {
	// Threshold — доля пикселей в [0, 1], отсекаемая с каждого края диапазона.
	Threshold float64
	// Workers — число воркеров, 0 означает runtime.GOMAXPROCS(0).
	Workers int
	// Tail — способ объединения хвостов каналов.
	Tail TailMode
}

// Result содержит обработанный буфер и промежуточные данные.
type Result struct {
	Pix        []byte
	Histograms []Histogram
	Bounds     Bounds
	Colormap   Colormap
	// Workers — фактически использованное число воркеров.
	Workers int
}

// Stretch растягивает контраст буфера pix с чередованием каналов.
// Входной буфер не изменяется.
func Stretch(pix []byte, channels, width, height int, opts Options) (*Result, error) {
	if err := validate(pix, channels, width, height, opts); err != nil {
		return nil, err
	}
	workers := resolveWorkers(opts.Workers)

	hists, err := BuildHistograms(pix, channels, workers)
	if err != nil {
		return nil, err
	}
	bounds := DeriveBounds(hists, uint64(width)*uint64(height), opts.Threshold, opts.Tail)
	cm := BuildColormap(bounds)
	Logger().Debug("bounds derived",
		"low", bounds.Low,
		"high", bounds.High,
		"found", bounds.Found(),
		"threshold", opts.Threshold,
		"tail", opts.Tail.String())

	return &Result{
		Pix:        cm.Apply(pix, workers),
		Histograms: hists,
		Bounds:     bounds,
		Colormap:   cm,
		Workers:    workers,
	}, nil
}

func validate(pix []byte, channels, width, height int, opts Options) error {
	if channels != 1 && channels != 3 {
		return fmt.Errorf("%w: число каналов %d, ожидается 1 или 3", ErrInvalidInput, channels)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: размеры %dx%d", ErrInvalidInput, width, height)
	}
	if want := uint64(width) * uint64(height) * uint64(channels); uint64(len(pix)) != want {
		return fmt.Errorf("%w: длина буфера %d, ожидается %d", ErrInvalidInput, len(pix), want)
	}
	if math.IsNaN(opts.Threshold) || opts.Threshold < 0 || opts.Threshold > 1 {
		return fmt.Errorf("%w: порог %v вне [0, 1]", ErrInvalidInput, opts.Threshold)
	}
	if opts.Workers < 0 {
		return fmt.Errorf("%w: отрицательное число воркеров %d", ErrInvalidInput, opts.Workers)
	}
	if !opts.Tail.valid() {
		return fmt.Errorf("%w: неизвестный режим хвостов %v", ErrInvalidInput, opts.Tail)
	}
	return nil
}
