package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Raimguzhinov/pnmstretch/internal/config"
	"github.com/Raimguzhinov/pnmstretch/internal/logging"
	"github.com/Raimguzhinov/pnmstretch/internal/pipeline"
	"github.com/Raimguzhinov/pnmstretch/internal/stretch"
)

func main() {
	opts, err := config.Parse(os.Args[1:])
	if opts.Help {
		fmt.Print(detailedHelp)
		return
	}
	if opts.Version {
		fmt.Println(version)
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Print(detailedHelp)
		os.Exit(1)
	}

	logger, err := logging.New(opts.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	stretch.SetLogger(logger)

	res, err := pipeline.Run(context.Background(), opts.Job(), os.Stdout, logger)
	if err != nil {
		logger.Error("Ошибка в конвейере", "err", err, "kind", pipeline.Kind(err))
		os.Exit(1)
	}
	logger.Info("Файл успешно записан", "path", filepath.Join(".", opts.Args.Output))

	if opts.Show {
		if err := show(logger, res.Original, res.Processed, opts.PreviewSize); err != nil {
			logger.Error("Ошибка показа", "err", err)
			os.Exit(1)
		}
	}
}
