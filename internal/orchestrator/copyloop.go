package orchestrator

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/richardhapb/lspdock/internal/frame"
	"github.com/richardhapb/lspdock/internal/rewrite"
)

// copyLoop reads frames from src, rewrites them for dir, and writes them
// to dst, strictly in the order received, until the stream ends, the
// context is cancelled, or a fatal framing error occurs. A clean EOF is
// not an error: it is one of the ordinary ways a session ends.
func copyLoop(ctx context.Context, name string, src io.Reader, dst io.Writer, pipeline *rewrite.Pipeline, dir rewrite.Direction, log *zap.Logger) error {
	r := frame.NewReader(src)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		f, err := r.ReadFrame()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Info("stream closed", zap.String("loop", name))
				return nil
			}
			log.Error("framing error, ending session", zap.String("loop", name), zap.Error(err))
			return err
		}

		log.Debug("frame received", zap.String("loop", name), zap.ByteString("payload", f.Payload))

		out := pipeline.Rewrite(ctx, dir, f.Payload)

		log.Debug("frame forwarded", zap.String("loop", name), zap.ByteString("payload", out))

		if err := frame.WriteFrame(dst, out); err != nil {
			log.Error("write failed, ending session", zap.String("loop", name), zap.Error(err))
			return err
		}
	}
}
