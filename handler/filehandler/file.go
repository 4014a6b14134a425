package filehandler

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/philipp01105/tablelog/core"
	"github.com/philipp01105/tablelog/formatter"
	"github.com/philipp01105/tablelog/handler"
)

// backupLayout is the timestamp appended to rotated files. It sorts
// lexically in chronological order.
const backupLayout = "2006-01-02T15-04-05.000"

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Level is the minimum level written
	Level core.Level
	// Formatter to use (default: plain TextFormatter with caller columns)
	Formatter formatter.Formatter
	// Width and TimeFormat configure the default formatter
	Width      int
	TimeFormat string
	// MaxSize is the maximum size in bytes before rotation (0 = no rotation)
	MaxSize int64
	// MaxBackups is the maximum number of old log files to retain (0 = keep all)
	MaxBackups int
	// MaxAge rotates the file once its oldest record is this old (0 = no age rotation)
	MaxAge time.Duration
	// RotateInterval rotates the file this long after the previous rotation,
	// or after the handler opened it (0 = no interval rotation)
	RotateInterval time.Duration
}

// FileHandler appends formatted entries to a file and rotates it by size,
// by age and by interval.
type FileHandler struct {
	*handler.Base

	mu              sync.Mutex
	filename        string
	file            *os.File
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	buf             bytes.Buffer
	maxSize         int64
	maxBackups      int
	maxAge          time.Duration
	rotateInterval  time.Duration
	currentSize     int64
	firstWrite      time.Time
	lastRotate      time.Time
	closed          bool

	now    func() time.Time
	rename func(oldpath, newpath string) error
}

// NewFileHandler opens (or creates) the log file in append mode, creating
// missing parent directories.
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, errors.New("filehandler: filename is required")
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{
			IncludeCaller:     true,
			TimeFormat:        cfg.TimeFormat,
			Width:             cfg.Width,
			OmitRepeatedTimes: true,
		})
	}

	filename, err := filepath.Abs(cfg.Filename)
	if err != nil {
		return nil, fmt.Errorf("filehandler: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, fmt.Errorf("filehandler: %w", err)
	}

	h := &FileHandler{
		Base:       handler.NewBase(cfg.Level),
		filename:   filename,
		formatter:  cfg.Formatter,
		maxSize:        cfg.MaxSize,
		maxBackups:     cfg.MaxBackups,
		maxAge:         cfg.MaxAge,
		rotateInterval: cfg.RotateInterval,
		now:            time.Now,
		rename:         os.Rename,
	}
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	h.buf.Grow(256)

	if err := h.open(); err != nil {
		return nil, err
	}
	h.lastRotate = h.now()
	return h, nil
}

// Filename returns the absolute path of the active log file
func (h *FileHandler) Filename() string {
	return h.filename
}

// Handle writes the entry if it passes the level and filters
func (h *FileHandler) Handle(entry *core.Entry) error {
	if !h.Accept(entry) {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return fmt.Errorf("filehandler: %w", os.ErrClosed)
	}

	var data []byte
	if h.bufferFormatter != nil {
		h.buf.Reset()
		h.bufferFormatter.FormatEntry(entry, &h.buf)
		data = h.buf.Bytes()
	} else {
		var err error
		if data, err = h.formatter.Format(entry); err != nil {
			h.Counters().IncrementFailed()
			return fmt.Errorf("filehandler: format: %w", err)
		}
	}

	if h.file == nil {
		if err := h.open(); err != nil {
			h.Counters().IncrementFailed()
			return err
		}
	}

	// A failed rotation still writes the record into whichever file is open
	var rotateErr error
	if h.shouldRotate(len(data)) {
		rotateErr = h.rotate()
		if h.file == nil {
			h.Counters().IncrementFailed()
			return rotateErr
		}
	}

	if h.currentSize == 0 && h.maxAge > 0 {
		h.firstWrite = h.now()
	}
	n, err := h.file.Write(data)
	h.currentSize += int64(n)
	if err != nil {
		h.Counters().IncrementFailed()
		return multierr.Append(rotateErr, fmt.Errorf("filehandler: write: %w", err))
	}
	h.Counters().IncrementProcessed()
	return rotateErr
}

// shouldRotate reports whether the next write of n bytes goes to a fresh
// file: it would push the file past maxSize, or the file has outlived
// maxAge or rotateInterval. An empty file always takes the write.
func (h *FileHandler) shouldRotate(n int) bool {
	if h.currentSize == 0 {
		return false
	}
	if h.maxSize > 0 && h.currentSize+int64(n) > h.maxSize {
		return true
	}
	if h.maxAge <= 0 && h.rotateInterval <= 0 {
		return false
	}
	now := h.now()
	if h.maxAge > 0 && now.Sub(h.firstWrite) >= h.maxAge {
		return true
	}
	return h.rotateInterval > 0 && now.Sub(h.lastRotate) >= h.rotateInterval
}

func (h *FileHandler) open() error {
	file, err := os.OpenFile(h.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("filehandler: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return fmt.Errorf("filehandler: %w", err)
	}
	h.file = file
	h.currentSize = info.Size()
	if h.currentSize > 0 {
		// Age of earlier records is unknown; count from now
		h.firstWrite = h.now()
	}
	return nil
}

// rotate closes the active file, renames it with a timestamp suffix and
// opens a fresh one. When the rename fails the original file is reopened
// and the error returned. h.file is nil afterwards only if no file could
// be opened at all.
func (h *FileHandler) rotate() error {
	var err error
	if cerr := h.file.Close(); cerr != nil {
		err = fmt.Errorf("filehandler: rotate: %w", cerr)
	}
	h.file = nil
	h.lastRotate = h.now()

	if rerr := h.rename(h.filename, h.backupName()); rerr != nil {
		err = multierr.Append(err, fmt.Errorf("filehandler: rotate: %w", rerr))
	} else if h.maxBackups > 0 {
		h.cleanupOldBackups()
	}
	return multierr.Append(err, h.open())
}

// backupName returns an unused name for the next rotated file
func (h *FileHandler) backupName() string {
	name := h.filename + "." + h.now().Format(backupLayout)
	candidate := name
	for i := 1; ; i++ {
		if _, err := os.Lstat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%04d", name, i)
	}
}

// Backups returns the rotated files of this handler, oldest first
func (h *FileHandler) Backups() ([]string, error) {
	return listBackups(h.filename)
}

func listBackups(filename string) ([]string, error) {
	dir := filepath.Dir(filename)
	prefix := filepath.Base(filename) + "."

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var backups []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		stamp := strings.TrimPrefix(name, prefix)
		if len(stamp) < len(backupLayout) {
			continue
		}
		if _, err := time.Parse(backupLayout, stamp[:len(backupLayout)]); err != nil {
			continue
		}
		backups = append(backups, filepath.Join(dir, name))
	}
	sort.Strings(backups)
	return backups, nil
}

// cleanupOldBackups removes old backup files based on MaxBackups
func (h *FileHandler) cleanupOldBackups() {
	backups, err := listBackups(h.filename)
	if err != nil || len(backups) <= h.maxBackups {
		return
	}
	for _, file := range backups[:len(backups)-h.maxBackups] {
		if err := os.Remove(file); err != nil {
			return
		}
	}
}

// CanRecycleEntry returns true because the handler processes entries immediately.
func (h *FileHandler) CanRecycleEntry() bool {
	return true
}

// Close syncs and closes the underlying file. Calling Close twice is safe.
func (h *FileHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	if h.file == nil {
		return nil
	}

	if err := h.file.Sync(); err != nil {
		h.file.Close()
		return fmt.Errorf("filehandler: %w", err)
	}
	return h.file.Close()
}
