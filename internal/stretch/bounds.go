package stretch

import "fmt"

// TailMode определяет, как суммы хвостов разных каналов сравниваются с порогом.
type TailMode int

const (
	// TailPooled складывает хвосты всех каналов и сравнивает общую сумму.
	TailPooled TailMode = iota
	// TailAnyChannel срабатывает, как только хвост любого канала превысил порог.
	TailAnyChannel
)

func (m TailMode) String() string {
	switch m {
	case TailPooled:
		return "pooled"
	case TailAnyChannel:
		return "any"
	default:
		return fmt.Sprintf("TailMode(%d)", int(m))
	}
}

// ParseTailMode разбирает имя режима: "pooled" или "any".
func ParseTailMode(s string) (TailMode, error) {
	switch s {
	case "", "pooled":
		return TailPooled, nil
	case "any":
		return TailAnyChannel, nil
	default:
		return 0, fmt.Errorf("%w: неизвестный режим хвостов %q", ErrInvalidInput, s)
	}
}

func (m TailMode) valid() bool {
	return m == TailPooled || m == TailAnyChannel
}

// exceeds сообщает, превысили ли накопленные суммы хвоста порог n.
func (m TailMode) exceeds(sums []uint64, n uint64) bool {
	if m == TailAnyChannel {
		for _, s := range sums {
			if s > n {
				return true
			}
		}
		return false
	}
	var total uint64
	for _, s := range sums {
		total += s
	}
	return total > n
}

const (
	// NoLow — значение Low, если нижний хвост так и не превысил порог.
	NoLow = 256
	// NoHigh — значение High, если верхний хвост так и не превысил порог.
	NoHigh = -1
)

// Bounds — границы отсечения. Low <= High не гарантируется.
type Bounds struct {
	Low  int
	High int
}

// Found сообщает, что обе границы найдены.
func (b Bounds) Found() bool {
	return b.Low != NoLow && b.High != NoHigh
}

// DeriveBounds находит границы отсечения по гистограммам.
//
// n = floor(threshold * pixels). Проход идёт по i = 0..255, одновременно
// накапливая нижний хвост (корзина i) и верхний хвост (корзина 255-i).
// Low становится i, когда нижний хвост впервые превысил n, High становится
// 255-i для верхнего. Проход останавливается на шаге, где найдена вторая граница.
// Если хвост так и не превысил n, граница остаётся NoLow или NoHigh.
func DeriveBounds(hists []Histogram, pixels uint64, threshold float64, mode TailMode) Bounds {
	n := uint64(threshold * float64(pixels))
	b := Bounds{Low: NoLow, High: NoHigh}

	sumLow := make([]uint64, len(hists))
	sumHigh := make([]uint64, len(hists))
	for i := 0; i < 256; i++ {
		for c := range hists {
			sumLow[c] += hists[c][i]
			sumHigh[c] += hists[c][255-i]
		}
		if b.Low == NoLow && mode.exceeds(sumLow, n) {
			b.Low = i
			if b.High != NoHigh {
				break
			}
		}
		if b.High == NoHigh && mode.exceeds(sumHigh, n) {
			b.High = 255 - i
			if b.Low != NoLow {
				break
			}
		}
	}
	return b
}
