package stretch

import (
	"fmt"
	"sync"
)

// Histogram — число отсчётов каждого значения яркости 0..255 в одном канале.
type Histogram [256]uint64

// Total возвращает сумму по всем корзинам.
func (h *Histogram) Total() uint64 {
	var sum uint64
	for _, n := range h {
		sum += n
	}
	return sum
}

// BuildHistograms считает гистограмму каждого канала буфера pix.
//
// Буфер режется на порции по chunkPixels пикселей, каждый воркер получает
// непрерывную группу порций и копит счётчики в собственных массивах.
// Закончив группу, воркер один раз под мьютексом прибавляет их к общим
// итогам. Результат не зависит от числа воркеров и порядка слияния.
func BuildHistograms(pix []byte, channels, workers int) ([]Histogram, error) {
	if channels != 1 && channels != 3 {
		return nil, fmt.Errorf("%w: число каналов %d, ожидается 1 или 3", ErrInvalidInput, channels)
	}
	if len(pix)%channels != 0 {
		return nil, fmt.Errorf("%w: длина буфера %d не кратна числу каналов %d", ErrInvalidInput, len(pix), channels)
	}
	if workers < 0 {
		return nil, fmt.Errorf("%w: отрицательное число воркеров %d", ErrInvalidInput, workers)
	}

	hists := make([]Histogram, channels)
	step := chunkPixels * channels
	chunks := chunkCount(len(pix), step)

	var mu sync.Mutex
	parallelFor(resolveWorkers(workers), chunks, func(first, last int) {
		var local [3]Histogram
		start := first * step
		end := min(last*step, len(pix))
		if channels == 1 {
			for _, v := range pix[start:end] {
				local[0][v]++
			}
		} else {
			for k := start; k < end; k += 3 {
				local[0][pix[k]]++
				local[1][pix[k+1]]++
				local[2][pix[k+2]]++
			}
		}

		mu.Lock()
		for c := range hists {
			for v, n := range local[c] {
				hists[c][v] += n
			}
		}
		mu.Unlock()
	})

	Logger().Debug("histograms built",
		"channels", channels,
		"chunks", chunks,
		"workers", min(resolveWorkers(workers), max(chunks, 1)))
	return hists, nil
}
