package domain

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

const (
	// AppDirName is the name of the cache directory below the user cache directory.
	AppDirName = "envcache"

	// CacheDirEnv overrides the cache root.
	CacheDirEnv = "ENVCACHE_CACHE_DIR"

	// PythonEnv overrides the interpreter used when the project file does not name one.
	PythonEnv = "ENVCACHE_PYTHON"

	// NoCacheEnv forces a refresh of every cached environment when set to a non-empty value.
	NoCacheEnv = "ENVCACHE_NO_CACHE"

	// ProjectFileName is the name of the project configuration file.
	ProjectFileName = "envcache.yaml"

	// EnvConfigFileName is the name of the environment configuration file at an environment root.
	EnvConfigFileName = "pyvenv.cfg"

	// OverlayFileName is the import-path-extension file written into ephemeral environments.
	OverlayFileName = "_envcache_ephemeral_overlay.pth"

	// DefaultPython is the interpreter looked up on PATH when nothing else is configured.
	DefaultPython = "python3"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// Bucket names a top-level namespace inside the cache root.
// Buckets carry a version suffix so layout changes never read stale data.
type Bucket string

const (
	// EnvironmentsBucket holds the content-addressed links to published environments.
	EnvironmentsBucket Bucket = "environments-v1"
	// ArchiveBucket holds published, immutable environment trees.
	ArchiveBucket Bucket = "archive-v0"
	// BuildsBucket holds scratch space for in-flight builds.
	BuildsBucket Bucket = "builds-v0"
	// InterpreterBucket holds cached interpreter query results.
	InterpreterBucket Bucket = "interpreter-v0"
	// EphemeralBucket holds throwaway environments of running commands. Pruning never touches it.
	EphemeralBucket Bucket = "ephemeral-v0"
)

// Buckets lists every bucket owned by the cache, in removal order.
func Buckets() []Bucket {
	return []Bucket{EnvironmentsBucket, ArchiveBucket, BuildsBucket, InterpreterBucket, EphemeralBucket}
}

// DefaultCacheDir returns the cache root: $ENVCACHE_CACHE_DIR, or envcache below the user cache directory.
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv(CacheDirEnv); dir != "" {
		return filepath.Abs(dir)
	}
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", zerr.Wrap(err, ErrCacheDirUnavailable.Error())
	}
	return filepath.Join(userCacheDir, AppDirName), nil
}
