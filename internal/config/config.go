// Package config разбирает командную строку, переменные окружения
// и необязательный INI-файл настроек.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/jessevdk/go-flags"

	"github.com/Raimguzhinov/pnmstretch/internal/export"
	"github.com/Raimguzhinov/pnmstretch/internal/pipeline"
	"github.com/Raimguzhinov/pnmstretch/internal/stretch"
)

// ErrInvalidArgument — аргументы командной строки или файла настроек некорректны.
var ErrInvalidArgument = errors.New("config: некорректный аргумент")

// Options — настройки запуска. Приоритет: командная строка, затем INI-файл,
// затем переменные окружения, затем значения по умолчанию.
type Options struct {
	Show        bool           `short:"s" long:"show" env:"PNMSTRETCH_SHOW" description:"Показать исходное и обработанное изображения"`
	Export      string         `short:"e" long:"export" env:"PNMSTRETCH_EXPORT" description:"Дополнительно сохранить результат в PNG, BMP или TIFF"`
	TailMode    string         `long:"tail-mode" env:"PNMSTRETCH_TAIL_MODE" default:"pooled" choice:"pooled" choice:"any" description:"Сравнение хвостов каналов с порогом: суммарно (pooled) или по любому каналу (any)"`
	PreviewSize uint           `long:"preview-size" env:"PNMSTRETCH_PREVIEW_SIZE" default:"1024" description:"Наибольшая сторона окна просмотра"`
	LogLevel    string         `long:"log-level" env:"PNMSTRETCH_LOG_LEVEL" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"Уровень логирования"`
	Config      flags.Filename `short:"c" long:"config" env:"PNMSTRETCH_CONFIG" no-ini:"true" description:"INI-файл с настройками"`
	Version     bool           `short:"v" long:"version" no-ini:"true" description:"Показать версию и выйти"`
	Help        bool           `short:"h" long:"help" no-ini:"true" description:"Показать справку с описанием алгоритма"`

	Args struct {
		Threads   uint    `positional-arg-name:"threads" description:"Число потоков, 0 — все доступные"`
		Input     string  `positional-arg-name:"input" description:"Входной файл P5/P6"`
		Output    string  `positional-arg-name:"output" description:"Выходной файл"`
		Threshold float64 `positional-arg-name:"threshold" description:"Доля отсекаемых пикселей с каждого края, [0, 1]"`
	} `positional-args:"yes" required:"yes"`
}

// Parse разбирает args (без имени программы). Даже при ошибке возвращает
// заполненную часть настроек, чтобы вызывающий мог обработать --help и --version.
func Parse(args []string) (*Options, error) {
	var opts Options
	parser := flags.NewParser(&opts, flags.IgnoreUnknown)

	rest, err := parser.ParseArgs(args)
	if err != nil {
		return &opts, wrap(err)
	}
	if opts.Config != "" {
		if err := flags.NewIniParser(parser).ParseFile(string(opts.Config)); err != nil {
			return &opts, fmt.Errorf("%w: %s: %w", ErrInvalidArgument, opts.Config, err)
		}
		// Повторный разбор возвращает приоритет командной строке.
		if rest, err = parser.ParseArgs(args); err != nil {
			return &opts, wrap(err)
		}
	}
	if len(rest) > 0 {
		return &opts, fmt.Errorf("%w: лишние аргументы %q", ErrInvalidArgument, rest)
	}
	if err := opts.validate(); err != nil {
		return &opts, err
	}
	return &opts, nil
}

// Tail возвращает выбранный режим сравнения хвостов.
func (o *Options) Tail() stretch.TailMode {
	mode, err := stretch.ParseTailMode(o.TailMode)
	if err != nil {
		return stretch.TailPooled
	}
	return mode
}

// Job собирает задание для конвейера.
func (o *Options) Job() pipeline.Job {
	return pipeline.Job{
		Input:   o.Args.Input,
		Output:  o.Args.Output,
		Export:  o.Export,
		Stretch: o.StretchOptions(),
	}
}

// StretchOptions собирает параметры ядра.
func (o *Options) StretchOptions() stretch.Options {
	return stretch.Options{
		Threshold: o.Args.Threshold,
		Workers:   int(o.Args.Threads),
		Tail:      o.Tail(),
	}
}

func (o *Options) validate() error {
	if math.IsNaN(o.Args.Threshold) || o.Args.Threshold < 0 || o.Args.Threshold > 1 {
		return fmt.Errorf("%w: порог %v вне [0, 1]", ErrInvalidArgument, o.Args.Threshold)
	}
	if _, err := stretch.ParseTailMode(o.TailMode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if o.Export != "" {
		if _, err := export.FormatFromPath(o.Export); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
	}
	if o.PreviewSize == 0 {
		return fmt.Errorf("%w: размер окна просмотра должен быть положительным", ErrInvalidArgument)
	}
	return nil
}

func wrap(err error) error {
	var ferr *flags.Error
	if errors.As(err, &ferr) {
		return fmt.Errorf("%w: %s", ErrInvalidArgument, ferr.Message)
	}
	return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
}
