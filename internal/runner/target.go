package runner

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Target is one contract file queued for analysis.
type Target struct {
	Path     string // path handed to the tools
	RelPath  string // slash-separated, relative to the batch root
	Model    string // first directory under the root
	Contract string // file name without the .sol extension
}

// Key returns the report key for this target.
func (t *Target) Key() string {
	return t.Model + "/" + t.Contract
}

// TargetDiscovery walks a contracts tree and returns analyzable targets.
type TargetDiscovery struct {
	IgnorePatterns []string
}

// Discover walks root and returns all .sol targets in lexical order,
// respecting .scevalignore. Files directly under the root have no model
// directory and are skipped.
func (td *TargetDiscovery) Discover(root string) ([]*Target, error) {
	td.loadIgnoreFile(root)

	var targets []*Target
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible files
		}
		if info.IsDir() {
			base := info.Name()
			if base == ".git" || base == "node_modules" || base == ".sceval" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".sol" {
			return nil
		}
		relPath, _ := filepath.Rel(root, path)
		rel := filepath.ToSlash(relPath)
		if td.isIgnored(rel) {
			return nil
		}
		model, _, found := strings.Cut(rel, "/")
		if !found {
			return nil
		}
		targets = append(targets, &Target{
			Path:     path,
			RelPath:  rel,
			Model:    model,
			Contract: strings.TrimSuffix(info.Name(), ".sol"),
		})
		return nil
	})
	return targets, err
}

func (td *TargetDiscovery) loadIgnoreFile(root string) {
	f, err := os.Open(filepath.Join(root, ".scevalignore"))
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			td.IgnorePatterns = append(td.IgnorePatterns, line)
		}
	}
}

func (td *TargetDiscovery) isIgnored(relPath string) bool {
	for _, pattern := range td.IgnorePatterns {
		if matchGlob(pattern, relPath) {
			return true
		}
	}
	return false
}

// matchGlob supports ** globs that filepath.Match does not.
// "dir/**" matches any file under dir/ at any depth.
// "**/*.sol" matches any .sol file at any depth.
// "dir/" matches every file below a directory of that name at any depth.
func matchGlob(pattern, relPath string) bool {
	if strings.HasSuffix(pattern, "/") {
		name := strings.TrimSuffix(pattern, "/")
		parts := strings.Split(relPath, "/")
		for _, dir := range parts[:len(parts)-1] {
			if matched, _ := filepath.Match(name, dir); matched {
				return true
			}
		}
		return false
	}

	// Fast path: no ** means filepath.Match is sufficient
	if !strings.Contains(pattern, "**") {
		if matched, _ := filepath.Match(pattern, relPath); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, filepath.Base(relPath)); matched {
			return true
		}
		return false
	}

	// "prefix/**" → match anything under prefix/
	if strings.HasSuffix(pattern, "/**") {
		prefix := strings.TrimSuffix(pattern, "/**")
		if strings.HasPrefix(relPath, prefix+"/") || relPath == prefix {
			return true
		}
	}

	// "**/<glob>" → match <glob> against every path suffix
	if strings.HasPrefix(pattern, "**/") {
		suffix := strings.TrimPrefix(pattern, "**/")
		parts := strings.Split(relPath, "/")
		for i := range parts {
			candidate := strings.Join(parts[i:], "/")
			if matched, _ := filepath.Match(suffix, candidate); matched {
				return true
			}
		}
	}

	// "prefix/**/suffix" → prefix matches start, suffix matches rest
	if idx := strings.Index(pattern, "/**/"); idx >= 0 {
		prefix := pattern[:idx]
		suffix := pattern[idx+4:]
		if strings.HasPrefix(relPath, prefix+"/") {
			rest := strings.TrimPrefix(relPath, prefix+"/")
			parts := strings.Split(rest, "/")
			for i := range parts {
				candidate := strings.Join(parts[i:], "/")
				if matched, _ := filepath.Match(suffix, candidate); matched {
					return true
				}
			}
		}
	}

	return false
}
