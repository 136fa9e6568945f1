package domain

import "go.trai.ch/zerr"

var (
	// ErrInterpreterResolution is returned when the base interpreter cannot be located or queried.
	ErrInterpreterResolution = zerr.New("failed to resolve base interpreter")

	// ErrInterpreterQueryFailed is returned when an interpreter does not report valid metadata.
	ErrInterpreterQueryFailed = zerr.New("failed to query interpreter")

	// ErrNoSitePackages is returned when an environment has no package-install directory.
	ErrNoSitePackages = zerr.New("environment has no site-packages directory")

	// ErrCacheMiss is returned when a cache entry does not resolve to a usable archive.
	ErrCacheMiss = zerr.New("cache miss")

	// ErrCacheDirUnavailable is returned when the cache root cannot be determined.
	ErrCacheDirUnavailable = zerr.New("failed to determine cache directory")

	// ErrScratchCreateFailed is returned when a scratch build directory cannot be created.
	ErrScratchCreateFailed = zerr.New("failed to create scratch directory")

	// ErrScratchConsumed is returned when a scratch directory handle is used after persisting.
	ErrScratchConsumed = zerr.New("scratch directory already persisted")

	// ErrPersistFailed is returned when a built environment cannot be moved into the cache.
	ErrPersistFailed = zerr.New("failed to persist environment into cache")

	// ErrLinkUpdateFailed is returned when a cache entry cannot be pointed at its archive.
	ErrLinkUpdateFailed = zerr.New("failed to update cache entry link")

	// ErrInvalidEnvironment is returned when a directory is not a loadable environment.
	ErrInvalidEnvironment = zerr.New("not a valid environment")

	// ErrEnvironmentCreateFailed is returned when a new environment cannot be created.
	ErrEnvironmentCreateFailed = zerr.New("failed to create environment")

	// ErrConfigReadFailed is returned when an environment configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read environment configuration")

	// ErrConfigWriteFailed is returned when an environment configuration file cannot be written.
	ErrConfigWriteFailed = zerr.New("failed to write environment configuration")

	// ErrOverlayWriteFailed is returned when the overlay file cannot be written.
	ErrOverlayWriteFailed = zerr.New("failed to write overlay file")

	// ErrInvalidRequirement is returned when a requirement string cannot be parsed.
	ErrInvalidRequirement = zerr.New("invalid requirement")

	// ErrUnpinnedRequirement is returned when the pinned resolver sees a requirement without an exact version.
	ErrUnpinnedRequirement = zerr.New("requirement is not pinned to an exact version")

	// ErrConflictingRequirements is returned when requirements or constraints disagree on a package.
	ErrConflictingRequirements = zerr.New("conflicting requirements")

	// ErrLocalSourceNotFound is returned when a path requirement does not exist.
	ErrLocalSourceNotFound = zerr.New("local source not found")

	// ErrInstallFailed is returned when the installer fails to bring an environment in sync.
	ErrInstallFailed = zerr.New("failed to install packages")

	// ErrProjectFileNotFound is returned when no project file can be found.
	ErrProjectFileNotFound = zerr.New("could not find envcache.yaml")

	// ErrProjectFileReadFailed is returned when the project file cannot be read.
	ErrProjectFileReadFailed = zerr.New("failed to read project file")

	// ErrProjectFileParseFailed is returned when the project file cannot be parsed.
	ErrProjectFileParseFailed = zerr.New("failed to parse project file")

	// ErrNoCommand is returned when run is invoked without a command.
	ErrNoCommand = zerr.New("no command specified")

	// ErrCommandFailed is returned when a command run inside an environment exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")
)
