package venv

import (
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/zerr"
)

// layout is the set of paths that make up an environment.
type layout struct {
	root         string
	scripts      string
	executable   string
	sitePackages []string
}

func (c *Creator) layout(root, version string) (layout, error) {
	if c.goos == "windows" {
		scripts := filepath.Join(root, "Scripts")
		return layout{
			root:         root,
			scripts:      scripts,
			executable:   filepath.Join(scripts, "python.exe"),
			sitePackages: []string{filepath.Join(root, "Lib", "site-packages")},
		}, nil
	}

	mm, err := (&domain.Interpreter{Version: version}).MajorMinor()
	if err != nil {
		return layout{}, zerr.With(errors.Join(domain.ErrInvalidEnvironment, err), "root", root)
	}
	scripts := filepath.Join(root, "bin")
	return layout{
		root:         root,
		scripts:      scripts,
		executable:   filepath.Join(scripts, "python"),
		sitePackages: []string{filepath.Join(root, "lib", "python"+mm, "site-packages")},
	}, nil
}

// Load opens the environment rooted at root.
func (c *Creator) Load(root string) (*domain.Environment, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrInvalidEnvironment, err), "root", root)
	}

	configPath := filepath.Join(abs, domain.EnvConfigFileName)
	cfg, err := readConfig(configPath)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrInvalidEnvironment, err), "root", abs)
	}

	version, ok := cfg.Get(VersionInfoKey)
	if !ok {
		// The standard library's venv module writes "version" instead.
		version, ok = cfg.Get(VersionKey)
	}
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidEnvironment, "missing version_info"), "root", abs)
	}
	home, _ := cfg.Get(HomeKey)

	l, err := c.layout(abs, version)
	if err != nil {
		return nil, err
	}
	if _, err := os.Lstat(l.executable); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrInvalidEnvironment, err), "executable", l.executable)
	}

	var sitePackages []string
	for _, dir := range l.sitePackages {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			sitePackages = append(sitePackages, dir)
		}
	}

	impl, _ := cfg.Get(ImplementationKey)
	return &domain.Environment{
		Root: abs,
		Interpreter: &domain.Interpreter{
			SysExecutable:  l.executable,
			SysPrefix:      abs,
			SysBasePrefix:  c.basePrefix(home),
			Version:        version,
			Implementation: impl,
		},
		Scripts:      l.scripts,
		SitePackages: sitePackages,
		ConfigPath:   configPath,
	}, nil
}

// basePrefix derives the base installation prefix from the home key.
func (c *Creator) basePrefix(home string) string {
	if home == "" || c.goos == "windows" {
		return home
	}
	return filepath.Dir(home)
}

// SetConfig writes key = value into the environment's pyvenv.cfg, replacing a previous value.
// The file is replaced atomically.
func (c *Creator) SetConfig(env *domain.Environment, key, value string) error {
	cfg, err := readConfig(env.ConfigPath)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrConfigWriteFailed, err), "path", env.ConfigPath)
	}
	cfg.Set(key, value)

	dir := filepath.Dir(env.ConfigPath)
	tmp, err := os.CreateTemp(dir, ".pyvenv-*.cfg")
	if err != nil {
		return zerr.With(errors.Join(domain.ErrConfigWriteFailed, err), "path", env.ConfigPath)
	}
	tmpName := tmp.Name()
	defer func() {
		if _, err := os.Stat(tmpName); err == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(cfg.Bytes()); err != nil {
		_ = tmp.Close()
		return zerr.With(errors.Join(domain.ErrConfigWriteFailed, err), "path", env.ConfigPath)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(errors.Join(domain.ErrConfigWriteFailed, err), "path", env.ConfigPath)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(errors.Join(domain.ErrConfigWriteFailed, err), "path", env.ConfigPath)
	}
	if err := os.Rename(tmpName, env.ConfigPath); err != nil {
		return zerr.With(errors.Join(domain.ErrConfigWriteFailed, err), "path", env.ConfigPath)
	}
	return nil
}

// Config reads every key of the environment's pyvenv.cfg.
func (c *Creator) Config(env *domain.Environment) (map[string]string, error) {
	cfg, err := readConfig(env.ConfigPath)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", env.ConfigPath)
	}
	return cfg.Map(), nil
}

func readConfig(path string) (*Config, error) {
	//nolint:gosec // Path is the configuration file of a managed environment
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data), nil
}
