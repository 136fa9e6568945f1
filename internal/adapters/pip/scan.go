package pip

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// directURL is the subset of direct_url.json the installer compares.
type directURL struct {
	URL string `json:"url"`
}

// Installed lists the distributions installed in the given site-packages directories.
// Metadata directories are read concurrently, bounded by limit.
func Installed(ctx context.Context, sitePackages []string, limit int) ([]domain.InstalledDistribution, error) {
	var dirs []string
	for _, site := range sitePackages {
		entries, err := os.ReadDir(site)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, "failed to list site-packages"), "path", site)
		}
		for _, e := range entries {
			if e.IsDir() && strings.HasSuffix(e.Name(), ".dist-info") {
				dirs = append(dirs, filepath.Join(site, e.Name()))
			}
		}
	}

	var (
		mu        sync.Mutex
		installed = make([]domain.InstalledDistribution, 0, len(dirs))
	)
	g, _ := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, dir := range dirs {
		g.Go(func() error {
			dist, err := readDistInfo(dir)
			if err != nil {
				return err
			}
			mu.Lock()
			installed = append(installed, dist)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(installed, func(a, b domain.InstalledDistribution) int {
		return strings.Compare(string(a.Name), string(b.Name))
	})
	return installed, nil
}

func readDistInfo(dir string) (domain.InstalledDistribution, error) {
	//nolint:gosec // Path is inside a managed environment
	data, err := os.ReadFile(filepath.Join(dir, "METADATA"))
	if err != nil {
		return domain.InstalledDistribution{}, zerr.With(zerr.Wrap(err, "failed to read distribution metadata"), "path", dir)
	}

	dist := domain.InstalledDistribution{MetadataDir: dir}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			// Headers end at the first blank line; the description follows.
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "Name":
			dist.Name = domain.NormalizeName(value)
		case "Version":
			dist.Version = strings.TrimSpace(value)
		}
	}
	if dist.Name == "" {
		return domain.InstalledDistribution{}, zerr.With(zerr.New("distribution metadata has no name"), "path", dir)
	}

	//nolint:gosec // Path is inside a managed environment
	if raw, err := os.ReadFile(filepath.Join(dir, "direct_url.json")); err == nil {
		var u directURL
		if err := json.Unmarshal(raw, &u); err == nil {
			dist.URL = u.URL
		}
	}
	return dist, nil
}
