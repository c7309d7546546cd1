package stream

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fsnotify/fsnotify"
)

// FileSource reads records from a JSONL transcript, one wire record per line.
// In follow mode it tails the file as an external process appends to it,
// waking on filesystem notifications instead of polling.
type FileSource struct {
	file    *os.File
	reader  *bufio.Reader
	follow  bool
	watcher *fsnotify.Watcher
	partial []byte
}

// OpenFile opens a transcript file. With follow set, Next blocks at end of
// file until more lines are appended.
func OpenFile(path string, follow bool) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}

	s := &FileSource{
		file:   f,
		reader: bufio.NewReader(f),
		follow: follow,
	}
	if follow {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create watcher: %w", err)
		}
		if err := watcher.Add(path); err != nil {
			watcher.Close()
			f.Close()
			return nil, fmt.Errorf("failed to watch transcript: %w", err)
		}
		s.watcher = watcher
	}
	return s, nil
}

// Next returns the next well-formed record, skipping blank, malformed and
// unknown lines.
func (s *FileSource) Next(ctx context.Context) (Record, error) {
	for {
		line, err := s.readLine(ctx)
		if err != nil {
			return Record{}, err
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		rec, err := Decode(line)
		if err != nil || rec.Kind == KindUnknown {
			continue
		}
		return rec, nil
	}
}

// readLine reads one complete line, waiting for appends in follow mode. A
// partial trailing line is buffered until its newline arrives.
func (s *FileSource) readLine(ctx context.Context) ([]byte, error) {
	for {
		chunk, err := s.reader.ReadBytes('\n')
		s.partial = append(s.partial, chunk...)
		if err == nil {
			line := s.partial
			s.partial = nil
			return line, nil
		}
		if err != io.EOF {
			return nil, fmt.Errorf("failed to read transcript: %w", err)
		}
		if !s.follow {
			if len(s.partial) > 0 {
				line := s.partial
				s.partial = nil
				return line, nil
			}
			return nil, io.EOF
		}
		if err := s.waitForWrite(ctx); err != nil {
			return nil, err
		}
	}
}

func (s *FileSource) waitForWrite(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-s.watcher.Events:
			if !ok {
				return io.EOF
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				return nil
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				return io.EOF
			}
		case _, ok := <-s.watcher.Errors:
			if !ok {
				return io.EOF
			}
			// Keep watching.
		}
	}
}

// Close releases the file and any watcher.
func (s *FileSource) Close() error {
	if s.watcher != nil {
		s.watcher.Close()
	}
	return s.file.Close()
}
