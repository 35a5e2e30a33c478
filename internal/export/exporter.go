// Package export writes the generated README variants to the output
// directory.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/fabioluciano/profile-analyzer/internal/errors"
)

// Exporter writes README files into a directory. Each file goes through
// a temp-file + rename so a crash never leaves a torn README; the group
// of variants is still replaced one file at a time, not transactionally.
type Exporter struct {
	dir string
}

// NewExporter creates an exporter rooted at dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// WriteReadmes writes one file per language variant plus the primary
// README.md, which carries the first language's content. Either every
// write is attempted in order or the first failure aborts with an export
// error; no partially written file is ever visible.
func (e *Exporter) WriteReadmes(content map[string]string, languages []string) error {
	if len(languages) == 0 {
		return apperrors.New(apperrors.ErrorTypeExport, "no output languages configured")
	}

	primary, ok := content[languages[0]]
	if !ok || primary == "" {
		return apperrors.New(apperrors.ErrorTypeExport, fmt.Sprintf("no content generated for primary language %s", languages[0]))
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return apperrors.ExportErrorf(err, "create output dir %s", e.dir)
	}

	for _, lang := range languages {
		text, ok := content[lang]
		if !ok || text == "" {
			// Best-effort report generator: fall back to the primary
			// variant rather than failing the whole export.
			text = primary
		}
		if err := e.writeFile("README."+lang+".md", text); err != nil {
			return err
		}
	}

	return e.writeFile("README.md", primary)
}

func (e *Exporter) writeFile(name, text string) error {
	target := filepath.Join(e.dir, name)

	tmp, err := os.CreateTemp(e.dir, name+".*")
	if err != nil {
		return apperrors.ExportErrorf(err, "create temp file for %s", name)
	}

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return apperrors.ExportErrorf(err, "write %s", name)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return apperrors.ExportErrorf(err, "close temp file for %s", name)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return apperrors.ExportErrorf(err, "replace %s", target)
	}

	return nil
}
