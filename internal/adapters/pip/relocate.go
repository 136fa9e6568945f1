package pip

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/zerr"
)

const defaultGOOS = runtime.GOOS

// relocatableShebang starts a script with a polyglot header that finds the interpreter
// next to the script at run time, so the environment keeps working after it is moved.
const relocatableShebang = "#!/bin/sh\n" +
	"'''exec' \"$(dirname -- \"$(realpath -- \"$0\")\")\"/'python' \"$0\" \"$@\"\n" +
	"' '''\n"

// MakeRelocatable rewrites scripts whose shebang names an interpreter in scripts.
func MakeRelocatable(scripts string) error {
	entries, err := os.ReadDir(scripts)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to list scripts"), "path", scripts)
	}

	prefix := []byte("#!" + scripts + string(filepath.Separator))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		path := filepath.Join(scripts, e.Name())
		//nolint:gosec // Path is inside a managed environment
		data, err := os.ReadFile(path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read script"), "path", path)
		}
		if !bytes.HasPrefix(data, prefix) {
			continue
		}

		var body []byte
		if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
			body = data[idx+1:]
		}

		info, err := e.Info()
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to stat script"), "path", path)
		}
		out := append([]byte(relocatableShebang), body...)
		if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to rewrite script"), "path", path)
		}
	}
	return nil
}
