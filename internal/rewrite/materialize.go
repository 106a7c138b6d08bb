package rewrite

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Registry is the session-scoped set of local destination paths already
// materialized from the container. Per the concurrency model it is only
// ever touched by the to-client loop, but the lock costs nothing and
// protects us if materialization is ever moved to a worker pool.
type Registry struct {
	mu   sync.Mutex
	seen map[string]bool
}

// NewRegistry returns an empty copy-out registry.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]bool)}
}

// Seen reports whether dest has already been materialized this session.
func (r *Registry) Seen(dest string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seen[dest]
}

// Mark records dest as materialized.
func (r *Registry) Mark(dest string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen[dest] = true
}

// MaterializationError reports a failed copy-out. Per the error taxonomy
// it is recoverable: the caller logs it and continues emitting the
// translated-but-not-materialized URI.
type MaterializationError struct {
	ContainerPath string
	Err           error
}

func (e *MaterializationError) Error() string {
	return fmt.Sprintf("materializing %s: %v", e.ContainerPath, e.Err)
}

func (e *MaterializationError) Unwrap() error { return e.Err }

// Materializer copies container-only files referenced by to-client
// responses out to the local filesystem, via the host's docker CLI
// (never a Docker SDK, per the container-runtime non-goal).
type Materializer struct {
	Container  string
	LocalRoot  string
	StagingDir string
	Registry   *Registry

	// runDockerCat is overridable in tests; it defaults to shelling out to
	// "docker exec <container> cat <path>".
	runDockerCat func(ctx context.Context, container, path string, out *os.File) error
}

// NewMaterializer builds a Materializer with a session-scoped staging
// directory under base for container paths that fall outside LocalRoot.
func NewMaterializer(container, localRoot, stagingBase string, reg *Registry) *Materializer {
	return &Materializer{
		Container:  container,
		LocalRoot:  localRoot,
		StagingDir: filepath.Join(stagingBase, "lspdock-"+uuid.NewString()),
		Registry:   reg,
	}
}

// DestinationFor computes the local destination, under the staging
// directory, for a container path that has no representation under
// LocalRoot at all — a path outside ContainerRoot entirely.
func (m *Materializer) DestinationFor(containerPath string) string {
	return filepath.Join(m.StagingDir, strings.TrimPrefix(containerPath, "/"))
}

// Materialize copies containerPath out of the container to dest,
// idempotently: a dest already present in the registry, or already on
// disk, is not re-copied.
func (m *Materializer) Materialize(ctx context.Context, containerPath, dest string) error {
	if m.Registry.Seen(dest) {
		return nil
	}
	if _, err := os.Stat(dest); err == nil {
		m.Registry.Mark(dest)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return &MaterializationError{ContainerPath: containerPath, Err: err}
	}

	f, err := os.Create(dest)
	if err != nil {
		return &MaterializationError{ContainerPath: containerPath, Err: err}
	}
	defer f.Close()

	run := m.runDockerCat
	if run == nil {
		run = runDockerCat
	}
	if err := run(ctx, m.Container, containerPath, f); err != nil {
		os.Remove(dest)
		return &MaterializationError{ContainerPath: containerPath, Err: err}
	}

	m.Registry.Mark(dest)
	return nil
}

func runDockerCat(ctx context.Context, container, path string, out *os.File) error {
	cmd := exec.CommandContext(ctx, "docker", "exec", container, "cat", path)
	cmd.Stdout = out
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return err
	}
	return nil
}
