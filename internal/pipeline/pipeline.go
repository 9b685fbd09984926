// Package pipeline связывает чтение растра, растяжение контраста и запись
// результата в конвейер из горутин.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Raimguzhinov/pnmstretch/internal/export"
	"github.com/Raimguzhinov/pnmstretch/internal/pnm"
	"github.com/Raimguzhinov/pnmstretch/internal/stretch"
)

// Job — одно задание: откуда читать, куда писать и с какими параметрами.
type Job struct {
	Input  string
	Output string
	// Export — необязательный файл PNG, BMP или TIFF с копией результата.
	Export  string
	Stretch stretch.Options
}

// Result — исходное и обработанное изображения, а также время работы ядра.
type Result struct {
	Original  *pnm.Image
	Processed *pnm.Image
	Bounds    stretch.Bounds
	Workers   int
	Elapsed   time.Duration
}

// Run выполняет задание. Стадии чтения, обработки и записи работают
// в отдельных горутинах и соединены каналами; первая ошибка останавливает
// конвейер. После обработки в report печатается строка
// "Time (<n> thread(s)): <ms> ms".
func Run(ctx context.Context, job Job, report io.Writer, logger *slog.Logger) (*Result, error) {
	loaded := make(chan *pnm.Image, 1)
	stretched := make(chan *pnm.Image, 1)
	res := &Result{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(loaded)
		img, err := pnm.Load(job.Input)
		if err != nil {
			return err
		}
		logger.Debug("Изображение прочитано",
			"path", job.Input,
			"format", img.Magic(),
			"width", img.Width,
			"height", img.Height)
		res.Original = img
		select {
		case loaded <- img:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	g.Go(func() error {
		defer close(stretched)
		for img := range loaded {
			start := time.Now()
			sr, err := stretch.Stretch(img.Pix, img.Channels, img.Width, img.Height, job.Stretch)
			if err != nil {
				return err
			}
			res.Elapsed = time.Since(start)
			res.Bounds = sr.Bounds
			res.Workers = sr.Workers
			fmt.Fprintf(report, "Time (%d thread(s)): %g ms\n", sr.Workers, float64(res.Elapsed.Microseconds())/1000)
			logger.Debug("Контраст растянут", "low", sr.Bounds.Low, "high", sr.Bounds.High, "elapsed", res.Elapsed)

			out := *img
			out.Pix = sr.Pix
			select {
			case stretched <- &out:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	g.Go(func() error {
		for img := range stretched {
			res.Processed = img
			var writers errgroup.Group
			writers.Go(func() error {
				return pnm.Save(job.Output, img)
			})
			if job.Export != "" {
				writers.Go(func() error {
					if err := export.Save(job.Export, img.Image()); err != nil {
						return err
					}
					logger.Info("Результат экспортирован", "path", job.Export)
					return nil
				})
			}
			if err := writers.Wait(); err != nil {
				return err
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// Kind называет класс ошибки: MalformedHeader, IOFailure, InvalidInput
// или InvalidArgument.
func Kind(err error) string {
	switch {
	case errors.Is(err, pnm.ErrMalformedHeader), errors.Is(err, pnm.ErrTruncated):
		return "MalformedHeader"
	case errors.Is(err, stretch.ErrInvalidInput):
		return "InvalidInput"
	case errors.Is(err, export.ErrUnsupportedFormat):
		return "InvalidArgument"
	default:
		return "IOFailure"
	}
}
