package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// BackupService copies the database file. That is the whole contract:
// sqlite databases back up and restore as plain files. After a restore the
// process should be restarted so open connections reread the file.
type BackupService struct {
	DBPath string
}

func NewBackupService(dbPath string) *BackupService { return &BackupService{DBPath: dbPath} }

func (s *BackupService) Create(destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("posd-backup-%s.db", time.Now().UTC().Format("20060102-150405"))
	dest := filepath.Join(destDir, name)
	if err := copyFile(s.DBPath, dest); err != nil {
		return "", err
	}
	return dest, nil
}

func (s *BackupService) Restore(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	return copyFile(path, s.DBPath)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
