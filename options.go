package hgmanifest

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kezhuw/hgmanifest/internal/compress"
	"github.com/kezhuw/hgmanifest/internal/logger"
	"github.com/kezhuw/hgmanifest/internal/options"
)

// CompressionType defines compression methods to compress stored nodes.
type CompressionType int

const (
	DefaultCompression CompressionType = iota // Points to SnappyCompression
	NoCompression
	SnappyCompression
)

// Options contains options controlling a Repo.
type Options struct {
	// Logger receives debug lines for store requests and warnings for
	// failed resolutions.
	//
	// The default value is DiscardLogger.
	Logger Logger

	// CacheCapacity specifys how many nodes, and separately how many
	// history entries, are kept in memory. A negative value disables
	// caching.
	//
	// The default value is 512.
	CacheCapacity int

	// Registerer receives store request and cache metrics.
	//
	// The default value is nil, which disables metrics.
	Registerer prometheus.Registerer

	// FetchConcurrency bounds concurrent store requests issued by Walk
	// and ResolveContents.
	//
	// The default value is 8.
	FetchConcurrency int

	// StrictParse specifys whether manifests read from the store are
	// rejected when their lines are not in strictly increasing order.
	//
	// The default value is false.
	StrictParse bool
}

func (opts *Options) getLogger() logger.Logger {
	if opts == nil || opts.Logger == nil {
		return logger.Discard
	}
	return opts.Logger
}

func (opts *Options) getCacheCapacity() int {
	switch {
	case opts == nil || opts.CacheCapacity == 0:
		return options.DefaultCacheCapacity
	case opts.CacheCapacity < 0:
		return 0
	}
	return opts.CacheCapacity
}

func (opts *Options) getRegisterer() prometheus.Registerer {
	if opts == nil {
		return nil
	}
	return opts.Registerer
}

func (opts *Options) getFetchConcurrency() int {
	if opts == nil || opts.FetchConcurrency <= 0 {
		return options.DefaultFetchConcurrency
	}
	return opts.FetchConcurrency
}

func (opts *Options) getStrictParse() bool {
	return opts != nil && opts.StrictParse
}

// DirStoreOptions contains options controlling a directory store.
type DirStoreOptions struct {
	// Compression type used to compress node payloads.
	//
	// The default value points to SnappyCompression.
	Compression CompressionType

	// FileSystem defines a hierarchical file storage interface.
	//
	// The default file system is built around os package.
	FileSystem FileSystem

	// ReadOnly opens the store without taking its lock. Writes fail with
	// ErrStoreReadOnly.
	//
	// The default value is false.
	ReadOnly bool
}

func (opts *DirStoreOptions) getCompression() compress.Type {
	switch opts.Compression {
	case NoCompression:
		return compress.NoCompression
	case SnappyCompression:
		return compress.SnappyCompression
	}
	return options.DefaultCompression
}

func (opts *DirStoreOptions) getFileSystem() FileSystem {
	if opts.FileSystem == nil {
		return DefaultFileSystem
	}
	return opts.FileSystem
}

func convertDirStoreOptions(opts *DirStoreOptions) *options.DirOptions {
	if opts == nil {
		return &options.DefaultDirOptions
	}
	return &options.DirOptions{
		Compression: opts.getCompression(),
		FileSystem:  opts.getFileSystem(),
		ReadOnly:    opts.ReadOnly,
	}
}
