// Package resource maps robot description URIs onto local files.
package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aalvaropc/meshviz/internal/domain"
	"github.com/aalvaropc/meshviz/internal/ports"
)

const (
	packageScheme = "package://"
	fileScheme    = "file://"
	manifestFile  = "package.xml"
)

// Resolver resolves package:// URIs against a ROS package path, file:// URIs
// as absolute paths and anything else as a path relative to BaseDir.
type Resolver struct {
	packagePath []string
	baseDir     string

	mu       sync.Mutex
	packages map[string]string
}

type Option func(*Resolver)

// WithBaseDir sets the directory used for relative plain paths.
func WithBaseDir(dir string) Option {
	return func(r *Resolver) { r.baseDir = dir }
}

func NewResolver(packagePath []string, opts ...Option) *Resolver {
	r := &Resolver{
		packages: map[string]string{},
	}
	for _, p := range packagePath {
		if p = strings.TrimSpace(p); p != "" {
			r.packagePath = append(r.packagePath, p)
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.ResourceResolver = (*Resolver)(nil)

func (r *Resolver) Resolve(uri string) (string, error) {
	switch {
	case strings.HasPrefix(uri, packageScheme):
		return r.resolvePackage(uri)
	case strings.HasPrefix(uri, fileScheme):
		return checkFile(uri, strings.TrimPrefix(uri, fileScheme))
	default:
		p := uri
		if !filepath.IsAbs(p) && r.baseDir != "" {
			p = filepath.Join(r.baseDir, p)
		}
		return checkFile(uri, filepath.Clean(p))
	}
}

func (r *Resolver) resolvePackage(uri string) (string, error) {
	rest := strings.TrimPrefix(uri, packageScheme)
	pkg, rel, ok := strings.Cut(rest, "/")
	if !ok || pkg == "" || rel == "" {
		return "", &domain.OpError{
			Op:   "resource.resolve",
			Kind: domain.KindInvalidDescription,
			Path: uri,
			Err:  errors.New("expected package://<package>/<path>"),
		}
	}

	dir, err := r.findPackage(pkg)
	if err != nil {
		return "", &domain.OpError{
			Op:   "resource.resolve",
			Kind: domain.KindNotFound,
			Path: uri,
			Err:  err,
		}
	}
	return checkFile(uri, filepath.Join(dir, filepath.FromSlash(rel)))
}

func (r *Resolver) findPackage(pkg string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dir, ok := r.packages[pkg]; ok {
		return dir, nil
	}

	for _, root := range r.packagePath {
		if dir, ok := searchPackage(root, pkg); ok {
			r.packages[pkg] = dir
			return dir, nil
		}
	}
	return "", fmt.Errorf("package %q not found in ROS_PACKAGE_PATH %v", pkg, r.packagePath)
}

// searchPackage looks for a directory named pkg holding a package.xml,
// either root itself or anywhere below it.
func searchPackage(root, pkg string) (string, bool) {
	if filepath.Base(filepath.Clean(root)) == pkg && isPackage(root) {
		return filepath.Clean(root), true
	}
	if direct := filepath.Join(root, pkg); isPackage(direct) {
		return direct, true
	}

	var found string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if d.Name() == pkg && isPackage(path) {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	return found, found != ""
}

func isPackage(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, manifestFile))
	return err == nil && !info.IsDir()
}

func checkFile(uri, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", &domain.OpError{
			Op:   "resource.resolve",
			Kind: domain.KindNotFound,
			Path: uri,
			Err:  err,
		}
	}
	if info.IsDir() {
		return "", &domain.OpError{
			Op:   "resource.resolve",
			Kind: domain.KindNotFound,
			Path: uri,
			Err:  fmt.Errorf("%s is a directory", path),
		}
	}
	return path, nil
}
