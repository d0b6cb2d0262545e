package store

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/google/renameio/v2"
	"go.uber.org/zap"
)

// MaxEntries is the number of scores the ledger keeps.
const MaxEntries = 5

type Entry struct {
	Score int    `json:"score"`
	Name  string `json:"name"`
}

// Ledger is the top scores file: one "score,name" record per line, highest
// first.
type Ledger struct {
	Path   string
	logger *zap.Logger
}

func NewLedger(path string, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Ledger{Path: path, logger: logger}
}

// Load returns at most MaxEntries scores, descending. A ledger that does not
// exist yet is empty, not an error. On a read failure the returned entries are
// empty and the error is a *LedgerIOError.
func (l *Ledger) Load() ([]Entry, error) {
	data, err := os.ReadFile(l.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	} else if err != nil {
		return []Entry{}, &LedgerIOError{Op: "read", Path: l.Path, Err: err}
	}

	entries := l.parse(data)
	sortEntries(entries)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	return entries, nil
}

func (l *Ledger) parse(data []byte) []Entry {
	entries := []Entry{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		scoreStr, name, ok := strings.Cut(line, ",")
		score, err := strconv.Atoi(strings.TrimSpace(scoreStr))
		if !ok || err != nil {
			l.logger.Warn("skipping ledger line", zap.String("path", l.Path), zap.Int("line", n), zap.String("text", line))
			continue
		}

		entries = append(entries, Entry{Score: score, Name: name})
	}

	return entries
}

// Record inserts a score and atomically rewrites the ledger. It returns the
// stored entries. An unreadable ledger is not overwritten.
func (l *Ledger) Record(name string, score int) ([]Entry, error) {
	entries, err := l.Load()
	if err != nil {
		return nil, err
	}

	name = strings.NewReplacer("\n", " ", "\r", " ").Replace(name)
	entries = append(entries, Entry{Score: score, Name: name})
	sortEntries(entries)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	var buf bytes.Buffer
	for _, e := range entries {
		fmt.Fprintf(&buf, "%d,%s\n", e.Score, e.Name)
	}

	if err := renameio.WriteFile(l.Path, buf.Bytes(), 0o644); err != nil {
		return nil, &LedgerIOError{Op: "write", Path: l.Path, Err: err}
	}

	l.logger.Info("recorded score", zap.String("name", name), zap.Int("score", score))
	return entries, nil
}

// Qualifies reports whether score would enter the current top list.
func Qualifies(entries []Entry, score int) bool {
	return len(entries) < MaxEntries || score > entries[len(entries)-1].Score
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}
