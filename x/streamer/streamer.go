// Package streamer implements the C10 shift streamer: it drives a
// BlockReader/Translator/BlockWriter triple either as a single-
// threaded loop or as a reader/worker-pool/writer pipeline connected
// by two bounded queues, following the pack's ShiftStreamer exactly
// (RunMonothreadStream / RunMultithreadStream).
package streamer

import (
	"golang.org/x/sync/errgroup"

	"github.com/itohio/rastershift/pkg/logger"
	"github.com/itohio/rastershift/x/queue"
	"github.com/itohio/rastershift/x/shift"
	"github.com/itohio/rastershift/x/stream"
)

var log = logger.With("shift_streamer")

// ShiftStreamer drives a BlockReader/Translator/BlockWriter triple to
// completion, choosing a single-threaded loop or a concurrent pipeline
// based on MaxParallelWorkers.
type ShiftStreamer struct {
	Reader             *stream.BlockReader
	Writer             *stream.BlockWriter
	MaxParallelWorkers int
}

// New builds a ShiftStreamer over reader/writer with the given worker
// count. A worker count <= 1 selects the single-threaded loop.
func New(reader *stream.BlockReader, writer *stream.BlockWriter, maxParallelWorkers int) *ShiftStreamer {
	return &ShiftStreamer{Reader: reader, Writer: writer, MaxParallelWorkers: maxParallelWorkers}
}

// Stream runs the configured translator over every block the reader
// produces, writing each shifted block out, until the input is
// exhausted or an unrecoverable error occurs.
func (s *ShiftStreamer) Stream(translator *shift.Translator) error {
	if s.MaxParallelWorkers <= 1 {
		return s.runMonothread(translator)
	}
	return s.runMultithread(translator)
}

func (s *ShiftStreamer) runMonothread(translator *shift.Translator) error {
	log.Info().Msg("start monothreaded streaming")
	defer log.Info().Msg("end monothreaded streaming")

	for !s.Reader.IsAtEnd() {
		block, err := s.Reader.Read()
		if err != nil {
			log.Error().Err(err).Msg("error while reading block")
			return err
		}

		shifted, err := translator.Compute(block.Image)
		if err != nil {
			log.Error().Err(err).Msg("error while computing shift")
			return err
		}
		block.Image = shifted

		if err := s.Writer.Write(block); err != nil {
			log.Error().Err(err).Msg("error while writing block")
			return err
		}
	}
	return nil
}

func (s *ShiftStreamer) runMultithread(translator *shift.Translator) error {
	log.Info().Msg("start multithreaded streaming")
	defer log.Info().Msg("end multithreaded streaming")

	inputQueue := queue.New[stream.Block](s.MaxParallelWorkers)
	outputQueue := queue.New[stream.Block](s.MaxParallelWorkers)

	var readerGroup errgroup.Group
	readerGroup.Go(func() error {
		log.Info().Msg("start reading blocks")
		defer log.Info().Msg("end reading blocks")
		for !s.Reader.IsAtEnd() && inputQueue.IsActive() {
			block, err := s.Reader.Read()
			if err != nil {
				log.Error().Err(err).Msg("error while reading block")
				break
			}
			if err := inputQueue.Push(block); err != nil {
				log.Error().Err(err).Msg("cannot push input block into input queue")
				break
			}
		}
		inputQueue.Deactivate()
		return nil
	})

	var workerGroup errgroup.Group
	for i := 0; i < s.MaxParallelWorkers; i++ {
		workerGroup.Go(func() error {
			for inputQueue.CanPop() {
				block, err := inputQueue.Pop()
				if err != nil {
					break
				}

				shifted, err := translator.Compute(block.Image)
				if err != nil {
					log.Error().Err(err).Msg("exception while processing block")
					inputQueue.Deactivate()
					outputQueue.Deactivate()
					return err
				}
				block.Image = shifted

				if err := outputQueue.Push(block); err != nil {
					log.Error().Err(err).Msg("cannot push computed block into output queue")
					break
				}
			}
			return nil
		})
	}

	var writerGroup errgroup.Group
	writerGroup.Go(func() error {
		log.Info().Msg("start writing blocks")
		defer log.Info().Msg("end writing blocks")
		for outputQueue.CanPop() {
			block, err := outputQueue.Pop()
			if err != nil {
				break
			}
			if err := s.Writer.Write(block); err != nil {
				log.Error().Err(err).Msg("error while writing block")
				outputQueue.DeactivateAndClear()
			}
		}
		outputQueue.Deactivate()
		return nil
	})

	log.Info().Int("workers", s.MaxParallelWorkers).Msg("start shift processing")
	workerErr := workerGroup.Wait()
	if workerErr != nil {
		log.Error().Err(workerErr).Msg("exception on worker task")
	}
	log.Info().Msg("end translation processing")

	outputQueue.Deactivate()
	_ = writerGroup.Wait()
	_ = readerGroup.Wait()
	return workerErr
}
