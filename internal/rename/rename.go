package rename

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/paper-renamer/internal/apperr"
	"go.uber.org/zap"
)

// BackupSuffix is appended to the source path to name its backup copy.
const BackupSuffix = ".bak"

// Options tunes an Executor.
type Options struct {
	Backup bool
}

// Executor performs confirmed renames.
type Executor struct {
	opts       Options
	log        *zap.Logger
	renameFile func(oldpath, newpath string) error
}

// NewExecutor creates an Executor. A nil logger disables logging.
func NewExecutor(opts Options, log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{opts: opts, log: log, renameFile: renameNoReplace}
}

// Rename moves sourcePath to targetName in the same directory and returns
// the new path. It never overwrites an existing file.
func (e *Executor) Rename(sourcePath, targetName string) (string, error) {
	if err := checkBareName(targetName); err != nil {
		return "", err
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", apperr.Newf(apperr.KindSourceMissing, "%s no longer exists", sourcePath)
		}
		return "", apperr.Wrap(apperr.KindSourceMissing, "cannot stat "+sourcePath, err)
	}
	if !info.Mode().IsRegular() {
		return "", apperr.Newf(apperr.KindSourceMissing, "%s is not a regular file", sourcePath)
	}

	targetPath := filepath.Join(filepath.Dir(sourcePath), targetName)
	if filepath.Clean(sourcePath) == targetPath {
		e.log.Debug("rename.noop", zap.String("path", targetPath))
		return targetPath, nil
	}

	if _, err := os.Lstat(targetPath); err == nil {
		return "", apperr.Newf(apperr.KindTargetExists, "%s already exists", targetPath).
			WithRemedy("choose a different name with the edit option")
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", apperr.Wrap(apperr.KindRenameFailed, "cannot check "+targetPath, err)
	}

	var backup string
	if e.opts.Backup {
		backup = sourcePath + BackupSuffix
		if err := copyExclusive(sourcePath, backup); err != nil {
			if errors.Is(err, fs.ErrExist) {
				return "", apperr.Newf(apperr.KindRenameFailed, "backup %s already exists", backup)
			}
			return "", apperr.Wrap(apperr.KindRenameFailed, "backup failed", err)
		}
		e.log.Debug("rename.backup", zap.String("path", backup))
	}

	if err := e.renameFile(sourcePath, targetPath); err != nil {
		if backup != "" {
			if rerr := os.Remove(backup); rerr != nil {
				e.log.Warn("rename.backup_cleanup_failed", zap.String("path", backup), zap.Error(rerr))
			}
		}
		if errors.Is(err, fs.ErrExist) {
			return "", apperr.Newf(apperr.KindTargetExists, "%s already exists", targetPath).
				WithRemedy("choose a different name with the edit option")
		}
		if errors.Is(err, fs.ErrNotExist) {
			return "", apperr.Wrap(apperr.KindSourceMissing, sourcePath+" disappeared", err)
		}
		return "", apperr.Wrap(apperr.KindRenameFailed, "rename failed", err)
	}

	e.log.Info("rename.done", zap.String("from", sourcePath), zap.String("to", targetPath))
	return targetPath, nil
}

func checkBareName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return apperr.Newf(apperr.KindRenameFailed, "%q is not a file name", name)
	case strings.ContainsAny(name, `/\`), filepath.Base(name) != name:
		return apperr.Newf(apperr.KindRenameFailed, "%q must not contain a directory", name)
	}
	return nil
}

// copyExclusive copies src to dst, failing with fs.ErrExist if dst is
// already there.
func copyExclusive(src, dst string) (err error) {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := destFile.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			os.Remove(dst)
		}
	}()

	if _, err = io.Copy(destFile, sourceFile); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	return destFile.Sync()
}
