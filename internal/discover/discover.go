// Package discover implements the engine's directory-scan entry point: a
// standalone I/O boundary (spec.md §5) that walks a repository and
// returns every file this engine can register with a Project, stopping
// short of parsing any of them. Adapted from the teacher's own discover
// package, with its extra-ignore-file hook generalized from a bare
// `.cgrignore` line list to internal/config's structured ignore patterns.
package discover

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/scopeforge/codegraph/internal/lang"
)

// defaultIgnoreDirs are directory names skipped during discovery
// regardless of any configured patterns, covering VCS metadata, editor
// state, and the package/build-output directories every supported
// language's toolchain tends to produce.
var defaultIgnoreDirs = map[string]bool{
	".cache": true, ".claude": true, ".eclipse": true, ".eggs": true,
	".env": true, ".git": true, ".gradle": true, ".hg": true,
	".idea": true, ".maven": true, ".mypy_cache": true, ".nox": true,
	".npm": true, ".nyc_output": true, ".pnpm-store": true,
	".pytest_cache": true, ".ruff_cache": true, ".svn": true, ".tmp": true,
	".tox": true, ".venv": true, ".vs": true, ".vscode": true, ".yarn": true,
	"__pycache__": true, "bin": true, "bower_components": true,
	"build": true, "coverage": true, "dist": true, "env": true,
	"htmlcov": true, "node_modules": true, "obj": true, "out": true,
	"Pods": true, "site-packages": true, "target": true, "temp": true,
	"tmp": true, "vendor": true, "venv": true,
}

// defaultIgnoreSuffixes are file suffixes skipped regardless of language
// registration: editor backups and compiled artifacts a language's
// extension table would otherwise never see because they shadow a real
// source extension (e.g. "main.go~").
var defaultIgnoreSuffixes = []string{".tmp", "~", ".pyc", ".pyo", ".o", ".a", ".so", ".dll", ".class"}

// FileInfo is one discovered source file.
type FileInfo struct {
	Path     string        // absolute path
	RelPath  string        // relative to the scan root, forward-slash separated
	Language lang.Language // detected from its extension via internal/lang
}

// Options configures one Discover call. IgnorePatterns supplements
// defaultIgnoreDirs with additional directory-name or glob patterns (e.g.
// loaded from internal/config.Config.IgnorePatterns); IgnoreFile, if set,
// names a newline-delimited pattern file to merge in as well (the
// teacher's `.cgrignore` convention).
type Options struct {
	IgnorePatterns []string
	IgnoreFile     string
}

func shouldSkipDir(name, rel string, extraIgnore []string) bool {
	if defaultIgnoreDirs[name] {
		return true
	}
	for _, pattern := range extraIgnore {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

func hasIgnoredSuffix(path string) bool {
	for _, suffix := range defaultIgnoreSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// Discover walks repoPath and returns every file whose extension resolves
// to a registered language, honoring opts' ignore patterns. ctx is
// checked before the walk starts and periodically during it, so a caller
// can cancel a scan of a very large tree without waiting for it to finish
// (spec.md §5: discovery is one of the engine's only suspension points).
func Discover(ctx context.Context, repoPath string, opts *Options) ([]FileInfo, error) {
	repoPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var extraIgnore []string
	if opts != nil {
		extraIgnore = append(extraIgnore, opts.IgnorePatterns...)
		if opts.IgnoreFile != "" {
			if patterns, err := loadIgnoreFile(opts.IgnoreFile); err == nil {
				extraIgnore = append(extraIgnore, patterns...)
			}
		}
	} else {
		ignPath := filepath.Join(repoPath, ".cgrignore")
		extraIgnore, _ = loadIgnoreFile(ignPath)
	}

	var files []FileInfo

	err = filepath.Walk(repoPath, func(path string, info os.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			return filepath.SkipDir
		}

		rel, _ := filepath.Rel(repoPath, path)

		if info.IsDir() {
			if shouldSkipDir(info.Name(), rel, extraIgnore) {
				return filepath.SkipDir
			}
			return nil
		}
		if hasIgnoredSuffix(path) {
			return nil
		}

		ext := filepath.Ext(path)
		l, ok := lang.LanguageForExtension(ext)
		if !ok {
			return nil
		}
		files = append(files, FileInfo{
			Path:     path,
			RelPath:  filepath.ToSlash(rel),
			Language: l,
		})
		return nil
	})

	return files, err
}

func loadIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, line)
		}
	}
	return patterns, scanner.Err()
}
