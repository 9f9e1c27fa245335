package registry

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"veritas-hq/praetor/pkg/sdl/ast"
	"veritas-hq/praetor/pkg/sdl/parser"
)

// LoaderConfig configures statute loading from the file system.
type LoaderConfig struct {
	// MaxFileSize is the largest source file accepted, in bytes.
	// Default: 10MB.
	MaxFileSize int64

	// Extensions is the list of file extensions treated as SDL sources
	// when walking directories. Default: .sdl, .statute.
	Extensions []string

	// OnParse, when set, observes every parse attempt: outcome is
	// "success" or "error", statutes is the number of statutes in the
	// document (0 on error).
	OnParse func(outcome string, duration time.Duration, statutes int)
}

// DefaultLoaderConfig returns the default loader configuration.
func DefaultLoaderConfig() *LoaderConfig {
	return &LoaderConfig{
		MaxFileSize: 10 * 1024 * 1024,
		Extensions:  []string{".sdl", ".statute"},
	}
}

// LoadError describes a failure to load one source file. Parse errors
// keep their rich SDL diagnostics in Cause.
type LoadError struct {
	FilePath string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load %s: %s: %v", e.FilePath, e.Message, e.Cause)
	}
	return fmt.Sprintf("load %s: %s", e.FilePath, e.Message)
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// LoadResult describes one completed load session.
type LoadResult struct {
	// SessionID uniquely identifies this load for audit records.
	SessionID string

	// Documents maps source path to its parsed document.
	Documents map[string]*ast.Document

	// Warnings are all non-fatal diagnostics, tagged by source path.
	Warnings map[string][]ast.Warning

	// StatuteCount is the total number of statutes across all documents.
	StatuteCount int
}

// Loader reads SDL sources from the file system and parses them.
//
// Each Load call uses one parser instance for the whole session, so the
// per-source warning split relies on draining the buffer between files.
// A Loader is not safe for concurrent use; batch ingestion shards by
// running one Loader per worker.
type Loader struct {
	config *LoaderConfig
	parser *parser.Parser
	logger *slog.Logger
}

// NewLoader creates a loader. A nil config selects the defaults.
func NewLoader(config *LoaderConfig) *Loader {
	if config == nil {
		config = DefaultLoaderConfig()
	}
	return &Loader{
		config: config,
		parser: parser.New(),
		logger: slog.Default().With("component", "registry.loader"),
	}
}

// LoadPath loads SDL sources from a file or directory path. Directories
// are walked recursively; only files with configured extensions count.
func (l *Loader) LoadPath(path string) (*LoadResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{FilePath: path, Message: "failed to access path", Cause: err}
	}

	if info.IsDir() {
		return l.loadDirectory(path)
	}
	return l.loadFiles([]string{path})
}

// LoadBytes parses a single in-memory source under the given name.
func (l *Loader) LoadBytes(data []byte, name string) (*LoadResult, error) {
	result := newLoadResult()
	if err := l.loadOne(result, name, data); err != nil {
		return nil, err
	}
	l.logLoaded(result)
	return result, nil
}

func (l *Loader) loadDirectory(dir string) (*LoadResult, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if l.hasSourceExtension(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, &LoadError{FilePath: dir, Message: "directory walk failed", Cause: err}
	}

	sort.Strings(paths)
	return l.loadFiles(paths)
}

func (l *Loader) loadFiles(paths []string) (*LoadResult, error) {
	result := newLoadResult()

	for _, path := range paths {
		data, err := l.readSource(path)
		if err != nil {
			return nil, err
		}
		if err := l.loadOne(result, path, data); err != nil {
			return nil, err
		}
	}

	l.logLoaded(result)
	return result, nil
}

func (l *Loader) loadOne(result *LoadResult, path string, data []byte) error {
	start := time.Now()
	doc, err := l.parser.ParseDocument(string(data))
	if err != nil {
		l.observeParse("error", time.Since(start), 0)
		return &LoadError{FilePath: path, Message: "parse failed", Cause: err}
	}
	l.observeParse("success", time.Since(start), len(doc.Statutes))

	result.Documents[path] = doc
	result.StatuteCount += len(doc.Statutes)

	// Drain the session warning buffer so the next file starts clean.
	if warnings := l.parser.Warnings(); len(warnings) > 0 {
		result.Warnings[path] = append([]ast.Warning(nil), warnings...)
		l.parser.ClearWarnings()
	}
	return nil
}

func (l *Loader) observeParse(outcome string, duration time.Duration, statutes int) {
	if l.config.OnParse != nil {
		l.config.OnParse(outcome, duration, statutes)
	}
}

func (l *Loader) readSource(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{FilePath: path, Message: "failed to access file", Cause: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &LoadError{FilePath: path, Message: "not a regular file"}
	}
	if info.Size() > l.config.MaxFileSize {
		return nil, &LoadError{
			FilePath: path,
			Message:  fmt.Sprintf("file size %d bytes exceeds maximum %d bytes", info.Size(), l.config.MaxFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{FilePath: path, Message: "failed to read file", Cause: err}
	}
	if !utf8.Valid(data) {
		return nil, &LoadError{FilePath: path, Message: "file contains invalid UTF-8"}
	}
	return data, nil
}

func (l *Loader) hasSourceExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range l.config.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (l *Loader) logLoaded(result *LoadResult) {
	warningCount := 0
	for _, w := range result.Warnings {
		warningCount += len(w)
	}
	l.logger.Info("statute sources loaded",
		"session_id", result.SessionID,
		"documents", len(result.Documents),
		"statutes", result.StatuteCount,
		"warnings", warningCount,
	)
}

func newLoadResult() *LoadResult {
	return &LoadResult{
		SessionID: uuid.NewString(),
		Documents: make(map[string]*ast.Document),
		Warnings:  make(map[string][]ast.Warning),
	}
}
