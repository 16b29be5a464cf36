// Package upload manages the directory that uploaded avatars are stored in. Files are exposed
// under a public URL path; only files below that path are ever removed by the service.
package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"gitlab.com/dirk.krummacker/contactbook-service/internal/logger"
)

const (
	// PublicURLPath is the URL path the public directory is served under.
	PublicURLPath = "/public"
	// uploadsSubdir is the directory below the public directory that holds uploads.
	uploadsSubdir = "uploads"
	// maxParallelRemovals bounds the number of files removed at the same time.
	maxParallelRemovals = 4
)

// Store saves uploaded files to the managed upload directory and removes them again.
//
// Removal is best-effort: it runs in the background, and failures are logged but never
// reported to the caller. A crash before a removal finished leaves a stale file behind.
type Store struct {
	publicDir string
	dir       string
	prefix    string
	log       *logger.Logger

	// mu guards pending and idle. idle is closed when pending drops to zero.
	mu      sync.Mutex
	pending int
	idle    chan struct{}
}

// NewStore creates the upload directory below publicDir if it does not exist yet.
func NewStore(publicDir string, log *logger.Logger) (*Store, error) {
	dir := filepath.Join(publicDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &Store{
		publicDir: publicDir,
		dir:       dir,
		prefix:    path.Join(PublicURLPath, uploadsSubdir) + "/",
		log:       log,
	}, nil
}

// PublicDir returns the directory served under PublicURLPath.
func (s *Store) PublicDir() string {
	return s.publicDir
}

// FileName generates a collision resistant name for an uploaded file, keeping the original
// extension.
func FileName(original string, now time.Time) string {
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), uuid.NewString(), strings.ToLower(filepath.Ext(original)))
}

// Save stores the uploaded file and returns its public path, e.g.
// "/public/uploads/1700000000000-0b5c...-9d1e.png".
func (s *Store) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	name := FileName(file.Filename, time.Now())
	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create avatar file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("write avatar file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write avatar file: %w", err)
	}
	return s.prefix + name, nil
}

// Managed reports whether the public path points into the managed upload directory. Paths
// elsewhere, e.g. avatars hosted externally, are never touched.
func (s *Store) Managed(publicPath string) bool {
	_, ok := s.localPath(publicPath)
	return ok
}

// localPath maps a managed public path onto the file system.
func (s *Store) localPath(publicPath string) (string, bool) {
	if !strings.HasPrefix(publicPath, s.prefix) {
		return "", false
	}
	name := strings.TrimPrefix(publicPath, s.prefix)
	if name == "" || name == "." || name == ".." || name != path.Base(name) {
		return "", false
	}
	return filepath.Join(s.dir, name), true
}

// RemoveAsync removes the managed files among the public paths in the background.
func (s *Store) RemoveAsync(publicPaths ...string) {
	var files []string
	for _, p := range publicPaths {
		if local, ok := s.localPath(p); ok {
			files = append(files, local)
		}
	}
	if len(files) == 0 {
		return
	}

	s.begin()
	go func() {
		defer s.done()
		var g errgroup.Group
		g.SetLimit(maxParallelRemovals)
		for _, f := range files {
			f := f
			g.Go(func() error {
				return os.Remove(f)
			})
		}
		if err := g.Wait(); err != nil {
			s.log.Debug("could not remove avatar file", "error", err)
		}
	}()
}

// Wait blocks until all pending removals are done or the context expires. Removals may still be
// started while Wait is blocked; Wait returns once none are left.
func (s *Store) Wait(ctx context.Context) error {
	for {
		s.mu.Lock()
		if s.pending == 0 {
			s.mu.Unlock()
			return nil
		}
		idle := s.idle
		s.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *Store) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == 0 {
		s.idle = make(chan struct{})
	}
	s.pending++
}

func (s *Store) done() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--
	if s.pending == 0 {
		close(s.idle)
	}
}
