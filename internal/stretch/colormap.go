package stretch

import "math"

// Colormap — таблица перекодировки значений яркости, общая для всех каналов.
type Colormap [256]uint8

// sat вычитает с насыщением в диапазон [0, 255].
func sat(x, y int) int {
	return min(255, max(0, x-y))
}

// BuildColormap строит таблицу по границам b.
// При Low == High всё изображение переходит в High. Значения не выше Low
// становятся 0, не ниже High — 255, остальные растягиваются линейно
// с округлением.
func BuildColormap(b Bounds) Colormap {
	var cm Colormap
	for i := range cm {
		switch {
		case b.Low == b.High:
			cm[i] = uint8(b.High)
		case i <= b.Low:
			cm[i] = 0
		case i >= b.High:
			cm[i] = 255
		default:
			cm[i] = uint8(math.Round(255 * float64(sat(i, b.Low)) / float64(sat(b.High, b.Low))))
		}
	}
	return cm
}

// Apply возвращает новый буфер, в котором каждый отсчёт pix заменён
// значением из таблицы. Буфер делится на непрерывные участки между воркерами;
// таблица только читается.
func (cm *Colormap) Apply(pix []byte, workers int) []byte {
	out := make([]byte, len(pix))
	parallelFor(resolveWorkers(workers), chunkCount(len(pix), chunkPixels), func(first, last int) {
		start := first * chunkPixels
		end := min(last*chunkPixels, len(pix))
		dst := out[start:end]
		for k, v := range pix[start:end] {
			dst[k] = cm[v]
		}
	})
	return out
}
