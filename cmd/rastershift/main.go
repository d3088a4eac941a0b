package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/itohio/rastershift/pkg/logger"
	"github.com/itohio/rastershift/x/config"
	"github.com/itohio/rastershift/x/decomposition"
	"github.com/itohio/rastershift/x/fft/gonumfft"
	"github.com/itohio/rastershift/x/raster/tiffdataset"
	"github.com/itohio/rastershift/x/rimage"
	"github.com/itohio/rastershift/x/shift"
	"github.com/itohio/rastershift/x/sirius"
	"github.com/itohio/rastershift/x/stream"
	"github.com/itohio/rastershift/x/streamer"
	"github.com/itohio/rastershift/x/translation"
)

const (
	exitSuccess = 0
	exitUsage   = 1
	exitIO      = 2
	exitProcess = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	input := flag.String("input", "", "input raster path")
	output := flag.String("output", "", "output raster path")
	rowShift := flag.Float64("row-shift", 0, "translation on the row (y) axis, in pixels")
	colShift := flag.Float64("col-shift", 0, "translation on the column (x) axis, in pixels")
	blockSize := flag.Int("block-size", 0, "stream block size in pixels (0: use config default)")
	parallelWorkers := flag.Int("parallel-workers", 0, "max parallel workers (0: use config default)")
	decompositionName := flag.String("decomposition", "", "decomposition policy: regular or periodic-smooth")
	configPath := flag.String("config", "", "path to a YAML configuration file")
	help := flag.Bool("help", false, "print usage and exit")

	flag.Parse()

	if *help {
		flag.PrintDefaults()
		return exitSuccess
	}
	if *input == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "rastershift: --input and --output are required")
		flag.PrintDefaults()
		return exitUsage
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rastershift: loading config: %v\n", err)
			return exitIO
		}
		cfg = loaded
	}

	var decompositionOverride config.Decomposition
	switch *decompositionName {
	case "regular":
		decompositionOverride = config.Regular
	case "periodic-smooth":
		decompositionOverride = config.PeriodicSmooth
	case "":
		// keep config/default value
	default:
		fmt.Fprintf(os.Stderr, "rastershift: unknown decomposition %q\n", *decompositionName)
		return exitUsage
	}
	cfg = cfg.Apply(
		config.WithBlockSize(*blockSize),
		config.WithParallelWorkers(*parallelWorkers),
		config.WithDecomposition(decompositionOverride),
	)

	if err := process(*input, *output, *rowShift, *colShift, cfg); err != nil {
		switch sirius.KindOf(err) {
		case sirius.IOFailure:
			fmt.Fprintf(os.Stderr, "rastershift: %v\n", err)
			return exitIO
		case sirius.InvalidArgument:
			fmt.Fprintf(os.Stderr, "rastershift: %v\n", err)
			return exitUsage
		default:
			fmt.Fprintf(os.Stderr, "rastershift: %v\n", err)
			return exitProcess
		}
	}
	return exitSuccess
}

func process(inputPath, outputPath string, rowShift, colShift float64, cfg config.Config) error {
	log := logger.With("rastershift")

	source, err := tiffdataset.Open(inputPath)
	if err != nil {
		return err
	}
	defer source.Close()

	reader, err := stream.NewBlockReader(source, rimage.Size{Row: cfg.BlockSize, Col: cfg.BlockSize}, rowShift, colShift)
	if err != nil {
		return err
	}

	writer, err := stream.NewBlockWriter(outputPath, source.Size(), source.GeoReference(), rowShift, colShift)
	if err != nil {
		return err
	}
	defer writer.Close()

	fft := gonumfft.New()
	kernel := translation.New(fft)

	var policy decomposition.Policy
	switch cfg.Decomposition {
	case config.Regular:
		policy = decomposition.Regular{}
	default:
		policy = decomposition.PeriodicSmooth{FFT: fft}
	}

	translator := shift.New(policy, kernel, rowShift, colShift)
	s := streamer.New(reader, writer, cfg.ParallelWorkers)

	log.Info().Str("input", inputPath).Str("output", outputPath).
		Float64("row_shift", rowShift).Float64("col_shift", colShift).
		Int("block_size", cfg.BlockSize).Int("parallel_workers", cfg.ParallelWorkers).
		Msg("starting shift stream")

	return s.Stream(translator)
}
