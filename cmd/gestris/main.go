package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/qnkhuat/gestris/pkg"
	"github.com/qnkhuat/gestris/pkg/api"
	"github.com/qnkhuat/gestris/pkg/audio"
	"github.com/qnkhuat/gestris/pkg/config"
	"github.com/qnkhuat/gestris/pkg/gui"
	"github.com/qnkhuat/gestris/pkg/store"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	configPath := flag.String("config", "settings.json", "path to settings file")
	logPath := flag.String("log", "", "path to log file (overrides log.path)")
	nick := flag.String("nick", "", "player nickname (overrides player.nickname)")
	tracker := flag.String("connect", "", "hand tracker address: ws://, tcp://, unix:// or - for stdin")
	httpAddr := flag.String("http", "", "serve the spectator API on this address")
	scores := flag.Bool("scores", false, "print the highscores and exit")
	flag.Parse()

	if err := run(*configPath, *logPath, *nick, *tracker, *httpAddr, *scores); err != nil {
		fmt.Fprintln(os.Stderr, "gestris:", err)
		os.Exit(1)
	}
}

func run(configPath, logPath, nick, tracker, httpAddr string, scores bool) error {
	cfg, err := config.Load(configPath, nil)
	if err != nil {
		return err
	}
	settings := cfg.Settings()

	if logPath == "" {
		logPath = settings.Log.Path
	}
	logger, err := pkg.InitLog(logPath, settings.Log.Level)
	if err != nil {
		return fmt.Errorf("init log: %w", err)
	}
	defer logger.Sync()
	cfg.SetLogger(logger)

	ledger := store.NewLedger(settings.Files.Highscores, logger)
	if scores {
		return printScores(os.Stdout, ledger)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	if nick == "" {
		nick = settings.Player.Nickname
	}
	player, err := pkg.NewPlayer(nick)
	if err != nil {
		return fmt.Errorf("nickname %q: %w", nick, err)
	}
	if tracker == "" {
		tracker = settings.Tracker.Address
	}
	if httpAddr == "" {
		httpAddr = settings.HTTP.Address
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sound := audio.NewSoundManager(settings.SoundEnabled)
	if err := sound.Initialize(); err != nil {
		logger.Warn("audio unavailable", zap.Error(err))
	}
	defer sound.Cleanup()

	var ui *gui.UI
	match := pkg.NewMatch(pkg.MatchOptions{
		Player:       player,
		Width:        settings.Game.Width,
		Height:       settings.Game.Height,
		TickInterval: settings.Game.TickInterval,
		Cooldown:     settings.Gesture.Cooldown,
		Seed:         settings.Game.Seed,
		SavePath:     settings.Files.Save,
		Ledger:       ledger,
		Sounds:       sound,
		Logger:       logger,
		OnUpdate: func(pkg.Snapshot) {
			if ui != nil {
				ui.Refresh()
			}
		},
	})
	ui = gui.New(ctx, match, cfg, ledger, sound, logger)

	cfg.Watch(func(s config.Settings) {
		ui.ApplySettings(s)
		if err := match.SetTickInterval(ctx, s.Game.TickInterval); err != nil {
			logger.Warn("tick interval not applied", zap.Error(err))
		}
	})

	go func() {
		if err := match.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("match stopped", zap.Error(err))
		}
	}()

	if tracker != "" {
		cl, err := pkg.Dial(ctx, tracker, os.Stdin, logger)
		if err != nil {
			return err
		}
		defer cl.Disconnect()

		go func() {
			if err := cl.HandleRead(ctx, match.Frames()); err != nil {
				logger.Warn("tracker stopped", zap.Error(err))
			}
		}()
	}

	if httpAddr != "" {
		themeFn := func() gui.Theme { return gui.ThemeByName(cfg.Settings().Theme) }
		router := api.NewRouter(match, ledger, themeFn, logger)
		go func() {
			if err := api.Serve(ctx, httpAddr, router, logger); err != nil {
				logger.Error("http api stopped", zap.Error(err))
			}
		}()
	}

	go func() {
		<-ctx.Done()
		ui.Stop()
	}()

	logger.Info("gestris started", zap.Stringer("match", match.ID), zap.String("player", player.Name))
	err = ui.Run()
	cancel()
	logger.Info("gestris stopped")

	return err
}
