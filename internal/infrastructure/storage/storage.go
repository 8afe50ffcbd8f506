// Package storage keeps whole-collection JSON documents. Every backend reads
// and replaces a collection as a single document; there is no per-record I/O.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

const (
	DriverFile     = "file"
	DriverBadger   = "badger"
	DriverPostgres = "postgres"
)

var (
	ErrMissingCollection = errors.New("collection does not exist")
	ErrUnknownDriver     = errors.New("unknown storage driver")
)

// emptyCollection seeds collections that do not exist yet.
var emptyCollection = []byte("[]\n")

type Document struct {
	Collection string
	Data       []byte
}

type Backend interface {
	Read(ctx context.Context, collection string) ([]byte, error)
	// Write replaces every given document. Whether the documents land
	// together or one by one depends on the backend.
	Write(ctx context.Context, docs ...Document) error
	Close() error
}

type Options struct {
	Driver         string
	DataDir        string
	BadgerPath     string
	BadgerInMemory bool
	PostgresDSN    string
	Collections    []string
	Logger         *logrus.Logger
}

func Open(ctx context.Context, opts Options) (Backend, error) {
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}
	log := opts.Logger.WithField("driver", opts.Driver)

	var (
		b   Backend
		err error
	)
	switch opts.Driver {
	case "", DriverFile:
		b, err = NewFileBackend(opts.DataDir, opts.Collections)
		log = log.WithField("dir", opts.DataDir)
	case DriverBadger:
		b, err = NewBadgerBackend(opts.BadgerPath, opts.BadgerInMemory, opts.Collections)
		log = log.WithField("path", opts.BadgerPath)
	case DriverPostgres:
		b, err = NewPostgresBackend(ctx, opts.PostgresDSN, opts.Collections)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
	if err != nil {
		return nil, err
	}

	log.WithField("collections", opts.Collections).Info("storage opened")
	return b, nil
}
