package vfs

import (
	"context"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"

	"gitlab.com/remotefs/remotefs/metrics"
)

//go:generate mockgen -source=vfs.go -destination=mock/mock_vfs.go -package=mock

// FS abstracts the filesystem operations the daemon maps HTTP verbs onto.
// All paths are absolute and already confined to the served root.
type FS interface {
	Stat(ctx context.Context, path string) (os.FileInfo, error)
	ReadDir(ctx context.Context, path string) ([]string, error)
	Open(ctx context.Context, path string) (File, error)
	Create(ctx context.Context, path string) (WriteFile, error)
	Remove(ctx context.Context, path string) error
	RemoveDir(ctx context.Context, path string) error
}

// Instrumented wraps fs so every operation is counted and traced under name
func Instrumented(fs FS, name string) FS {
	return &instrumentedFS{fs: fs, name: name}
}

type instrumentedFS struct {
	fs   FS
	name string
}

func (i *instrumentedFS) increment(operation string, err error) {
	metrics.VFSOperations.WithLabelValues(i.name, operation, strconv.FormatBool(err == nil)).Inc()
}

func (i *instrumentedFS) trace(operation, path string, err error) {
	log.WithField("vfs", i.name).
		WithField("operation", operation).
		WithField("path", path).
		WithError(err).
		Traceln("VFS call")
}

func (i *instrumentedFS) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	fi, err := i.fs.Stat(ctx, path)
	i.increment("Stat", err)
	i.trace("Stat", path, err)

	return fi, err
}

func (i *instrumentedFS) ReadDir(ctx context.Context, path string) ([]string, error) {
	names, err := i.fs.ReadDir(ctx, path)
	i.increment("ReadDir", err)
	i.trace("ReadDir", path, err)

	return names, err
}

func (i *instrumentedFS) Open(ctx context.Context, path string) (File, error) {
	f, err := i.fs.Open(ctx, path)
	i.increment("Open", err)
	i.trace("Open", path, err)

	return f, err
}

func (i *instrumentedFS) Create(ctx context.Context, path string) (WriteFile, error) {
	f, err := i.fs.Create(ctx, path)
	i.increment("Create", err)
	i.trace("Create", path, err)

	return f, err
}

func (i *instrumentedFS) Remove(ctx context.Context, path string) error {
	err := i.fs.Remove(ctx, path)
	i.increment("Remove", err)
	i.trace("Remove", path, err)

	return err
}

func (i *instrumentedFS) RemoveDir(ctx context.Context, path string) error {
	err := i.fs.RemoveDir(ctx, path)
	i.increment("RemoveDir", err)
	i.trace("RemoveDir", path, err)

	return err
}
