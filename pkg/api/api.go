// Package api serves the running game over HTTP.
package api

import (
	"context"
	"errors"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qnkhuat/gestris/pkg/game"
	"github.com/qnkhuat/gestris/pkg/gui"
	"github.com/qnkhuat/gestris/pkg/mino"
	"github.com/qnkhuat/gestris/pkg/store"
	"go.uber.org/zap"
)

type StateSource interface {
	State() (game.State, bool)
}

type ScoreSource interface {
	Load() ([]store.Entry, error)
}

type pieceJSON struct {
	Shape    string `json:"shape"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Rotation int    `json:"rotation"`
	Color    int    `json:"color"`
}

type stateJSON struct {
	Width   int        `json:"width"`
	Height  int        `json:"height"`
	Cells   [][]int    `json:"cells"`
	Current *pieceJSON `json:"current"`
	Next    *pieceJSON `json:"next"`
	Score   int        `json:"score"`
	Level   int        `json:"level"`
	Phase   string     `json:"phase"`
	Paused  bool       `json:"paused"`
}

func toPieceJSON(p *mino.Piece) *pieceJSON {
	if p == nil {
		return nil
	}
	return &pieceJSON{Shape: p.Shape.String(), X: p.X, Y: p.Y, Rotation: p.Rotation, Color: int(p.Color)}
}

func toStateJSON(st game.State) stateJSON {
	cells := make([][]int, st.Board.H)
	for row := range cells {
		cells[row] = make([]int, st.Board.W)
		for col := range cells[row] {
			cells[row][col] = int(st.Board.Block(row, col))
		}
	}

	return stateJSON{
		Width:   st.Board.W,
		Height:  st.Board.H,
		Cells:   cells,
		Current: toPieceJSON(st.Current),
		Next:    toPieceJSON(st.Next),
		Score:   st.Score,
		Level:   st.Level,
		Phase:   st.Phase.String(),
		Paused:  st.Paused,
	}
}

type handler struct {
	states StateSource
	scores ScoreSource
	theme  func() gui.Theme
	logger *zap.Logger
}

// NewRouter builds the read-only game API. theme picks the palette for
// /board.png; nil means the light theme.
func NewRouter(states StateSource, scores ScoreSource, theme func() gui.Theme, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if theme == nil {
		theme = func() gui.Theme { return gui.ThemeLight }
	}

	h := &handler{states: states, scores: scores, theme: theme, logger: logger}

	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())
	router.GET("/state", h.getState)
	router.GET("/scores", h.getScores)
	router.GET("/board.png", h.getBoard)

	return router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}

func (h *handler) currentState(c *gin.Context) (game.State, bool) {
	st, ok := h.states.State()
	if !ok || st.Board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no game in progress"})
		return st, false
	}
	return st, true
}

func (h *handler) getState(c *gin.Context) {
	st, ok := h.currentState(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, toStateJSON(st))
}

func (h *handler) getScores(c *gin.Context) {
	entries, err := h.scores.Load()
	if err != nil {
		h.logger.Warn("highscores unreadable", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "highscores unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"scores": entries})
}

func (h *handler) getBoard(c *gin.Context) {
	scale := 1
	if s := c.Query("scale"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > MaxScale {
			c.JSON(http.StatusBadRequest, gin.H{"error": "scale must be an integer between 1 and 8"})
			return
		}
		scale = n
	}

	st, ok := h.currentState(c)
	if !ok {
		return
	}

	img := Scale(RenderBoard(st, h.theme()), scale)
	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	if err := png.Encode(c.Writer, img); err != nil {
		h.logger.Warn("png encode failed", zap.Error(err))
	}
}

// Serve runs the API on addr until ctx is done.
func Serve(ctx context.Context, addr string, h http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("http api listening", zap.String("address", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
