package gen

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/syssam/modelgen"
)

// Writer renders units with a target and writes them to disk.
type Writer struct {
	target Target

	// Metrics for the generated output.
	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics tracks generated output.
type WriterMetrics struct {
	FilesGenerated int
	TotalBytes     int64
}

// Sub returns the output written since the earlier metrics o.
func (m WriterMetrics) Sub(o WriterMetrics) WriterMetrics {
	return WriterMetrics{
		FilesGenerated: m.FilesGenerated - o.FilesGenerated,
		TotalBytes:     m.TotalBytes - o.TotalBytes,
	}
}

// NewWriter creates a writer for the given target.
func NewWriter(t Target) *Writer {
	return &Writer{target: t}
}

// Target returns the target of the writer.
func (w *Writer) Target() Target { return w.target }

// Metrics returns a copy of the writer metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// Write renders u and writes it to dir, returning the written path.
// Failures are reported as *modelgen.EmissionError.
func (w *Writer) Write(u *Unit, dir string) (string, error) {
	path := filepath.Join(dir, w.target.FileName(u))
	src, err := w.target.Render(u)
	if err != nil {
		return "", modelgen.NewEmissionError(u.Name, path, err)
	}
	if f, ok := w.target.(Formatter); ok {
		formatted, err := f.Format(path, src)
		if err != nil {
			// Keep the unformatted output around for debugging; we are
			// already failing, so errors here are ignored.
			debugPath := path + ".error"
			_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
			_ = os.WriteFile(debugPath, src, 0o644)
			return "", modelgen.NewEmissionError(u.Name, path, err)
		}
		src = formatted
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", modelgen.NewEmissionError(u.Name, path, err)
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return "", modelgen.NewEmissionError(u.Name, path, err)
	}
	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(src))
	w.mu.Unlock()
	return path, nil
}
