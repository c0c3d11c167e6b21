package log

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"
)

const (
	dateLayout = "2006-01-02"
	latestLink = "latest"
)

// FileWriter appends to dir/YYYY-MM-DD.jsonl, switching files when the date
// changes and keeping dir/latest pointed at the current one. Files are
// private to the user since flows log user codes and verification URLs.
type FileWriter struct {
	dir      string
	now      func() time.Time
	mu       sync.Mutex
	file     *os.File
	currDate string
}

// NewFileWriter creates a FileWriter rooted at dir, creating it if needed.
func NewFileWriter(dir string) (*FileWriter, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating debug log dir: %w", err)
	}

	fw := &FileWriter{dir: dir, now: time.Now}
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if err := fw.openLocked(fw.now().Format(dateLayout)); err != nil {
		return nil, err
	}
	return fw, nil
}

// Write implements io.Writer.
func (fw *FileWriter) Write(p []byte) (int, error) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if today := fw.now().Format(dateLayout); today != fw.currDate {
		if err := fw.openLocked(today); err != nil {
			return 0, err
		}
	}
	return fw.file.Write(p)
}

// Close closes the underlying file.
func (fw *FileWriter) Close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.file == nil {
		return nil
	}
	err := fw.file.Close()
	fw.file = nil
	return err
}

func (fw *FileWriter) openLocked(date string) error {
	if fw.file != nil {
		fw.file.Close()
	}

	name := date + ".jsonl"
	f, err := os.OpenFile(filepath.Join(fw.dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	fw.file = f
	fw.currDate = date
	fw.pointLatest(name)
	return nil
}

// pointLatest swaps the latest symlink via rename. Failures are ignored.
func (fw *FileWriter) pointLatest(target string) {
	link := filepath.Join(fw.dir, latestLink)
	tmp := link + ".tmp"

	os.Remove(tmp)
	if err := os.Symlink(target, tmp); err != nil {
		return
	}
	_ = os.Rename(tmp, link)
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.jsonl$`)

// Cleanup removes dated log files older than retentionDays. Other files in
// dir are left alone.
func Cleanup(dir string, retentionDays int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !datePattern.MatchString(name) {
			continue
		}
		fileDate, err := time.Parse(dateLayout, name[:len(dateLayout)])
		if err != nil {
			continue
		}
		if fileDate.Before(cutoff) {
			os.Remove(filepath.Join(dir, name))
		}
	}
}
