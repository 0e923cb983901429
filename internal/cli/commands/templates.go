package commands

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed all:templates
var templateFS embed.FS

// scaffoldFile is one file written by copyTemplate, relative to the project.
type scaffoldFile struct {
	Path string
	// Kept is set when an existing file was left alone.
	Kept bool
}

// isSeed reports whether the file belongs to the seeds directory.
func (f scaffoldFile) isSeed() bool {
	return strings.HasPrefix(filepath.ToSlash(f.Path), "seeds/")
}

// copyTemplate writes the embedded project template into targetDir.
// Files named gitignore become dotfiles. Existing files are kept unless force.
func copyTemplate(templateName, targetDir string, force bool) ([]scaffoldFile, error) {
	root := path.Join("templates", templateName)

	var written []scaffoldFile
	err := fs.WalkDir(templateFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		if rel == "" {
			return nil
		}
		rel = dotfileName(rel)
		target := filepath.Join(targetDir, filepath.FromSlash(rel))

		if d.IsDir() {
			return os.MkdirAll(target, 0o750)
		}

		if _, statErr := os.Stat(target); statErr == nil && !force {
			written = append(written, scaffoldFile{Path: rel, Kept: true})
			return nil
		}

		content, err := templateFS.ReadFile(p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, content, 0o600); err != nil {
			return err
		}
		written = append(written, scaffoldFile{Path: rel})
		return nil
	})
	return written, err
}

// dotfileName restores the leading dot of files embedded without one.
func dotfileName(rel string) string {
	dir, base := path.Split(rel)
	if base == "gitignore" {
		return dir + ".gitignore"
	}
	return rel
}
