package stretch

import "errors"

// ErrInvalidInput возвращается, когда входные данные нарушают предусловия конвейера:
// длина буфера не равна width*height*channels, неверное число каналов,
// порог вне [0, 1] или отрицательное число воркеров.
var ErrInvalidInput = errors.New("stretch: некорректные входные данные")
