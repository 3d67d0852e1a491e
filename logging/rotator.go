package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// filePrefix names every log file
const filePrefix = "interactions-"

// segmentRegex matches size-rotated files: interactions-2025-W07_03.log
var segmentRegex = regexp.MustCompile(`^interactions-(\d{4}-W\d{2})_(\d{2,})\.log$`)

// Rotator is an io.Writer over weekly log files. A week starts in
// interactions-YYYY-Www.log; once a file reaches the size limit, writes
// continue in interactions-YYYY-Www_01.log, _02 and so on. Files last
// written before the retention window are pruned whenever a file is opened.
type Rotator struct {
	dir       string
	retention time.Duration
	maxSize   int64 // 0 disables size rotation
	now       func() time.Time

	mu     sync.Mutex
	file   *os.File
	week   string
	size   int64
	closed bool
}

// NewRotator creates dir if needed and opens the current week's file
func NewRotator(dir string, retentionWeeks int, maxSize int64) (*Rotator, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	r := &Rotator{
		dir:       dir,
		retention: time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		maxSize:   maxSize,
		now:       time.Now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.openWeek(weekKey(r.now())); err != nil {
		return nil, err
	}
	return r, nil
}

// weekKey formats the ISO week of t as YYYY-Www
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// segmentName returns the file name of one segment; segment 0 has no suffix
func segmentName(week string, segment int) string {
	if segment == 0 {
		return filePrefix + week + ".log"
	}
	return fmt.Sprintf("%s%s_%02d.log", filePrefix, week, segment)
}

// lastSegment returns the highest segment on disk for week, 0 when none
func (r *Rotator) lastSegment(week string) int {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return 0
	}

	last := 0
	for _, e := range entries {
		m := segmentRegex.FindStringSubmatch(e.Name())
		if m == nil || m[1] != week {
			continue
		}
		if n, err := strconv.Atoi(m[2]); err == nil && n > last {
			last = n
		}
	}
	return last
}

// openWeek continues the newest segment of week, or starts the next one
// when it is already full. Caller holds mu.
func (r *Rotator) openWeek(week string) error {
	segment := r.lastSegment(week)
	if r.maxSize > 0 {
		if info, err := os.Stat(filepath.Join(r.dir, segmentName(week, segment))); err == nil && info.Size() >= r.maxSize {
			segment++
		}
	}
	return r.openSegment(week, segment)
}

// openSegment swaps the current file for one segment. Caller holds mu.
func (r *Rotator) openSegment(week string, segment int) error {
	if r.file != nil {
		_ = r.file.Close()
		r.file = nil
	}

	path := filepath.Join(r.dir, segmentName(week, segment))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	r.file, r.week, r.size = f, week, size
	r.prune()
	return nil
}

// Write appends p to the current file, rotating first when the week has
// changed or p would overflow a non-empty file.
func (r *Rotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, os.ErrClosed
	}

	if week := weekKey(r.now()); r.file == nil || week != r.week {
		if err := r.openWeek(week); err != nil {
			return 0, err
		}
	} else if r.maxSize > 0 && r.size > 0 && r.size+int64(len(p)) > r.maxSize {
		if err := r.openSegment(r.week, r.lastSegment(r.week)+1); err != nil {
			return 0, err
		}
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

// prune removes log files last written before the retention window and
// returns how many were removed. Caller holds mu.
func (r *Rotator) prune() int {
	if r.retention <= 0 {
		return 0
	}
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return 0
	}

	current := ""
	if r.file != nil {
		current = filepath.Base(r.file.Name())
	}
	cutoff := r.now().Add(-r.retention)

	removed := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == current || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if os.Remove(filepath.Join(r.dir, name)) == nil {
			removed++
		}
	}
	return removed
}

// Close closes the current file. Later writes fail with os.ErrClosed.
func (r *Rotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
