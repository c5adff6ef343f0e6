package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Entry is one line of the server log.
type Entry struct {
	Level slog.Level
	Text  string
}

// Tail returns at most maxLines entries at or above min from the end of the
// slog text log at path. A missing file yields no entries.
func Tail(path string, maxLines int, min slog.Level) ([]Entry, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]Entry, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		line := scanner.Text()
		level := ParseLevel(line)
		if level < min {
			continue
		}
		ring[idx] = Entry{Level: level, Text: line}
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	entries := make([]Entry, count)
	if count == maxLines {
		for i := range count {
			entries[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(entries, ring[:count])
	}
	return entries, nil
}

// ParseLevel reads the level=... attribute of a slog text line. Lines
// without one are treated as info.
func ParseLevel(line string) slog.Level {
	i := strings.Index(line, "level=")
	if i < 0 {
		return slog.LevelInfo
	}
	rest := line[i+len("level="):]
	if j := strings.IndexByte(rest, ' '); j >= 0 {
		rest = rest[:j]
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(rest)); err != nil {
		return slog.LevelInfo
	}
	return level
}
