package pkg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	"github.com/qnkhuat/gestris/pkg/config"
	"go.uber.org/zap"
	gossh "golang.org/x/crypto/ssh"
)

const ServerIdleTimeout = 5 * time.Minute

// Server hands every SSH session its own game process on a pty.
type Server struct {
	*ssh.Server

	binary string
	args   []string
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]string
}

// NewServer prepares an SSH server from cfg. Extra args are passed to the
// game binary before the nickname.
func NewServer(cfg config.SSHConfig, args []string, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		binary:   cfg.Binary,
		args:     args,
		logger:   logger,
		sessions: make(map[uuid.UUID]string),
	}

	s.Server = &ssh.Server{
		Addr:        cfg.Address,
		IdleTimeout: ServerIdleTimeout,
		Handler:     s.handle,
		// Anyone may play; the ssh user name becomes the nickname.
		KeyboardInteractiveHandler: func(ctx ssh.Context, _ gossh.KeyboardInteractiveChallenge) bool {
			return true
		},
	}

	keyPath, err := expandHome(cfg.HostKey)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(keyPath); err == nil {
		if err := s.SetOption(ssh.HostKeyFile(keyPath)); err != nil {
			return nil, fmt.Errorf("host key %s: %w", keyPath, err)
		}
	} else {
		logger.Warn("host key not found, using a generated one", zap.String("path", keyPath))
	}

	return s, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	return filepath.Join(home, path[2:]), nil
}

// Sessions returns the nicknames of the connected players.
func (s *Server) Sessions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.sessions))
	for _, n := range s.sessions {
		names = append(names, n)
	}
	return names
}

func (s *Server) track(id uuid.UUID, nick string) func() {
	s.mu.Lock()
	s.sessions[id] = nick
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
	}
}

// Command builds the game process for a session.
func (s *Server) Command(ctx context.Context, nick, term string, environ []string) *exec.Cmd {
	args := append(append([]string{}, s.args...), "--nick", nick)
	cmd := exec.CommandContext(ctx, s.binary, args...)
	cmd.Env = append(environ, fmt.Sprintf("TERM=%s", term))

	return cmd
}

func (s *Server) handle(sess ssh.Session) {
	id := uuid.New()
	nick := SanitizeNickname(sess.User())
	logger := s.logger.With(zap.Stringer("session", id), zap.String("nick", nick), zap.Stringer("remote", sess.RemoteAddr()))

	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "non-interactive terminals are not supported\n")
		sess.Exit(1)
		return
	}

	cmdCtx, cancelCmd := context.WithCancel(sess.Context())
	defer cancelCmd()

	cmd := s.Command(cmdCtx, nick, ptyReq.Term, sess.Environ())
	f, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(ptyReq.Window.Height),
		Cols: uint16(ptyReq.Window.Width),
	})
	if err != nil {
		logger.Error("failed to start game", zap.Error(err))
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sess.Exit(1)
		return
	}
	defer f.Close()

	untrack := s.track(id, nick)
	defer untrack()
	logger.Info("session started")

	go func() {
		for win := range winCh {
			pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)})
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	f.Close()
	err = cmd.Wait()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		sess.Exit(0)
	case errors.As(err, &exitErr):
		sess.Exit(exitErr.ExitCode())
	default:
		sess.Exit(1)
	}
	logger.Info("session ended", zap.Error(err))
}
