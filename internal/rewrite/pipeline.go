package rewrite

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/richardhapb/lspdock/internal/rpc"
)

// Pipeline applies the full set of direction-dependent transformations to
// a single frame payload: URI/path translation, PID patching, and
// on-demand materialization of container-only files. A Pipeline built
// with ShortCircuit true is the identity function, used when the session
// is not containerized.
type Pipeline struct {
	Mapper       PathMapper
	PatchPID     bool
	Materializer *Materializer
	ShortCircuit bool
	Log          *zap.Logger
}

// Rewrite transforms payload for the given direction. It never returns
// an error: malformed JSON is a PayloadError, which per the error
// taxonomy is handled locally by forwarding the frame unchanged.
func (p *Pipeline) Rewrite(ctx context.Context, dir Direction, payload []byte) []byte {
	if p.ShortCircuit {
		return payload
	}

	var tree any
	if err := json.Unmarshal(payload, &tree); err != nil {
		p.Log.Warn("payload is not valid JSON, forwarding unchanged",
			zap.String("direction", dir.String()), zap.Error(err))
		return payload
	}

	method := rpc.Method(payload)

	tree = rpc.Walk(tree, func(key, value string) string {
		return p.rewriteString(ctx, dir, key, value)
	})

	if dir == ToServer && p.PatchPID && method == "initialize" {
		tree = patchProcessID(tree)
	}

	out, err := json.Marshal(tree)
	if err != nil {
		p.Log.Error("re-serializing rewritten payload failed, forwarding original",
			zap.String("direction", dir.String()), zap.Error(err))
		return payload
	}
	return out
}

// rewriteString is the per-string visitor driving the structural walk. It
// handles both file:// URIs (wherever they appear) and the bare
// filesystem path carried by the well-known "rootPath" field.
func (p *Pipeline) rewriteString(ctx context.Context, dir Direction, key, value string) string {
	if key == "rootPath" {
		return p.rewritePlainPath(dir, value)
	}

	if !strings.HasPrefix(value, "file://") {
		return value
	}

	switch dir {
	case ToServer:
		translated, ok := p.Mapper.ToServerURI(value)
		if !ok {
			return value
		}
		return translated
	default:
		return p.rewriteToClientURI(ctx, value)
	}
}

func (p *Pipeline) rewritePlainPath(dir Direction, path string) string {
	if dir == ToServer {
		if translated, ok := p.Mapper.ToServerPath(path); ok {
			return translated
		}
		return path
	}
	if translated, ok := p.Mapper.ToClientPath(path); ok {
		return translated
	}
	return path
}

// rewriteToClientURI translates a server-side URI. A path under
// ContainerRoot maps onto LocalRoot and is materialized there if it
// doesn't exist locally yet. A path outside ContainerRoot entirely
// (a library bundled elsewhere in the image, for instance) has no
// corresponding local path at all, so it is copied into the session's
// staging directory instead.
func (p *Pipeline) rewriteToClientURI(ctx context.Context, value string) string {
	containerPath, isFileURI := ContainerPathOf(value)
	if !isFileURI {
		return value
	}

	translated, mapped := p.Mapper.ToClientURI(value)
	if !mapped {
		return p.materializeOutsideRoot(ctx, containerPath, value)
	}

	localPath, _ := ContainerPathOf(translated)
	if _, err := os.Stat(localPath); err == nil {
		return translated
	}

	if p.Materializer == nil {
		return translated
	}

	if err := p.Materializer.Materialize(ctx, containerPath, localPath); err != nil {
		p.Log.Error("materialization failed, emitting translated URI unmaterialized",
			zap.String("containerPath", containerPath), zap.Error(err))
	}
	return translated
}

// materializeOutsideRoot copies a container path that has no
// representation under LocalRoot into the staging directory and returns
// a file:// URI pointing at the copy. On failure it logs and falls back
// to the original, untranslated URI.
func (p *Pipeline) materializeOutsideRoot(ctx context.Context, containerPath, original string) string {
	if p.Materializer == nil {
		return original
	}

	dest := p.Materializer.DestinationFor(containerPath)
	if err := p.Materializer.Materialize(ctx, containerPath, dest); err != nil {
		p.Log.Error("materialization failed, emitting original URI unmaterialized",
			zap.String("containerPath", containerPath), zap.Error(err))
		return original
	}
	return encodeFileURI(dest)
}
