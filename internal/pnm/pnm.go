// Package pnm читает и пишет бинарные растры P5 (оттенки серого) и P6 (RGB)
// с глубиной 8 бит.
package pnm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

var (
	// ErrMalformedHeader — неизвестная сигнатура, неверные размеры или maxval.
	ErrMalformedHeader = errors.New("pnm: некорректный заголовок")
	// ErrTruncated — пиксельных данных меньше, чем объявлено в заголовке.
	ErrTruncated = errors.New("pnm: данные изображения обрезаны")
	// ErrIO — файл не открывается, не создаётся или не записывается.
	ErrIO = errors.New("pnm: ошибка ввода-вывода")
)

const (
	maxSampleValue = 255
	// maxBufferSize ограничивает размер буфера, объявленный заголовком.
	maxBufferSize = 1 << 34
)

// Image — растр с чередованием каналов.
type Image struct {
	Width    int
	Height   int
	Channels int
	// MaxValue — maxval из заголовка, переносится в выходной файл без изменений.
	MaxValue int
	Pix      []byte
}

// Magic возвращает сигнатуру формата: "P5" для одного канала, "P6" для трёх.
func (img *Image) Magic() string {
	if img.Channels == 1 {
		return "P5"
	}
	return "P6"
}

// Decode читает заголовок и пиксели растра из r.
func Decode(r io.Reader) (*Image, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	magic, err := readToken(br)
	if err != nil {
		return nil, fmt.Errorf("%w: сигнатура: %w", ErrMalformedHeader, err)
	}
	img := &Image{}
	switch magic {
	case "P5":
		img.Channels = 1
	case "P6":
		img.Channels = 3
	default:
		return nil, fmt.Errorf("%w: неподдерживаемая сигнатура %q", ErrMalformedHeader, magic)
	}

	fields := []struct {
		name string
		dst  *int
		max  uint64
	}{
		{"ширина", &img.Width, 1<<32 - 1},
		{"высота", &img.Height, 1<<32 - 1},
		{"maxval", &img.MaxValue, maxSampleValue},
	}
	for _, f := range fields {
		tok, err := readToken(br)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedHeader, f.name, err)
		}
		v, err := strconv.ParseUint(tok, 10, 32)
		if err != nil || v == 0 || v > f.max {
			return nil, fmt.Errorf("%w: %s %q", ErrMalformedHeader, f.name, tok)
		}
		*f.dst = int(v)
	}

	pixels := uint64(img.Width) * uint64(img.Height)
	if pixels > maxBufferSize/uint64(img.Channels) {
		return nil, fmt.Errorf("%w: слишком большое изображение %dx%d", ErrMalformedHeader, img.Width, img.Height)
	}
	img.Pix = make([]byte, pixels*uint64(img.Channels))
	if _, err := io.ReadFull(br, img.Pix); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %w", ErrTruncated, io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return img, nil
}

// readToken возвращает очередное слово заголовка, пропуская пробелы
// и комментарии от '#' до конца строки. Завершающий пробельный символ
// поглощается, так что после maxval поток стоит на первом байте пикселей.
func readToken(r *bufio.Reader) (string, error) {
	var tok []byte
	for {
		c, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(tok) > 0 {
				return string(tok), nil
			}
			if errors.Is(err, io.EOF) {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		switch {
		case c == '#' && len(tok) == 0:
			if _, err := r.ReadString('\n'); err != nil {
				return "", io.ErrUnexpectedEOF
			}
		case isSpace(c):
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, c)
		}
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Encode пишет растр в том же формате заголовка, что и исходный файл.
func Encode(w io.Writer, img *Image) error {
	if img.Channels != 1 && img.Channels != 3 {
		return fmt.Errorf("%w: число каналов %d", ErrMalformedHeader, img.Channels)
	}
	if img.Width <= 0 || img.Height <= 0 || len(img.Pix) != img.Width*img.Height*img.Channels {
		return fmt.Errorf("%w: буфер %d байт не соответствует %dx%dx%d",
			ErrMalformedHeader, len(img.Pix), img.Width, img.Height, img.Channels)
	}
	maxValue := img.MaxValue
	if maxValue <= 0 || maxValue > maxSampleValue {
		maxValue = maxSampleValue
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", img.Magic(), img.Width, img.Height, maxValue); err != nil {
		return err
	}
	if _, err := bw.Write(img.Pix); err != nil {
		return err
	}
	return bw.Flush()
}

// Load читает растр из файла.
func Load(filename string) (*Image, error) {
	f, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	return Decode(bufio.NewReader(f))
}

// Save пишет растр в файл, создавая или перезаписывая его.
func Save(filename string, img *Image) (err error) {
	f, err := os.Create(filepath.Clean(filename))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrIO, cerr)
		}
	}()

	if err := Encode(f, img); err != nil {
		if errors.Is(err, ErrMalformedHeader) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// Image возвращает растр как *image.Gray или *image.RGBA для показа и экспорта.
// Для одного канала пиксели не копируются.
func (img *Image) Image() image.Image {
	rect := image.Rect(0, 0, img.Width, img.Height)
	if img.Channels == 1 {
		return &image.Gray{Pix: img.Pix, Stride: img.Width, Rect: rect}
	}
	rgba := image.NewRGBA(rect)
	for i, j := 0, 0; i+2 < len(img.Pix); i, j = i+3, j+4 {
		rgba.Pix[j+0] = img.Pix[i+0]
		rgba.Pix[j+1] = img.Pix[i+1]
		rgba.Pix[j+2] = img.Pix[i+2]
		rgba.Pix[j+3] = 255
	}
	return rgba
}
