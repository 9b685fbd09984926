package stretch

import (
	"runtime"
	"sync"
)

// chunkPixels — размер порции в пикселях. Порция всегда содержит целое
// число пикселей, поэтому каналы одного пикселя не разрываются между воркерами.
const chunkPixels = 16 * 1024

// resolveWorkers заменяет 0 на число доступных процессоров.
func resolveWorkers(workers int) int {
	if workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return workers
}

// chunkCount возвращает число порций по step отсчётов в буфере длины size.
func chunkCount(size, step int) int {
	return (size + step - 1) / step
}

// parallelFor делит [0, total) на непрерывные диапазоны, по одному на воркер,
// и ждёт завершения всех горутин.
func parallelFor(workers, total int, fn func(first, last int)) {
	if total <= 0 {
		return
	}
	workers = min(workers, total)
	if workers <= 1 {
		fn(0, total)
		return
	}
	step := (total + workers - 1) / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		first := i * step
		if first >= total {
			break
		}
		last := min(first+step, total)
		wg.Add(1)
		go func(f, l int) {
			defer wg.Done()
			fn(f, l)
		}(first, last)
	}
	wg.Wait()
}
