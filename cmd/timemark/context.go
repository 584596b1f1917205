package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"timemark/internal/config"
	"timemark/internal/extract"
	"timemark/internal/history"
	"timemark/internal/logging"
	"timemark/internal/metafile"
	"timemark/internal/player"
	"timemark/internal/status"
)

type commandContext struct {
	configFlag *string
	socketFlag *string
	mediaFlag  *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

// media identifies the file a command operates on. Identifier is the raw
// location reported by the player (a URI when one was loaded that way) and
// keys the fallback metadata file; Path is the local filesystem path.
type media struct {
	Path       string
	Identifier string
}

func newCommandContext(configFlag, socketFlag, mediaFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		socketFlag: socketFlag,
		mediaFlag:  mediaFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	var loggerErr error
	c.loggerOnce.Do(func() {
		c.logger, loggerErr = logging.NewFromConfig(cfg)
	})
	if loggerErr != nil {
		return nil, loggerErr
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	return c.logger, nil
}

func (c *commandContext) engine() (*metafile.Engine, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return metafile.NewEngine(cfg.MetaDir(), logger), nil
}

func (c *commandContext) runner() (*extract.Runner, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return extract.NewRunner(cfg.RunDir(), logger), nil
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) socketPath() string {
	if c.socketFlag != nil && strings.TrimSpace(*c.socketFlag) != "" {
		return strings.TrimSpace(*c.socketFlag)
	}
	if cfg, err := c.ensureConfig(); err == nil {
		return cfg.Player.SocketPath
	}
	return ""
}

func (c *commandContext) dialPlayer() (*player.MPV, error) {
	return player.Dial(c.socketPath())
}

// withPlayer runs fn against a connected player and closes the connection
// afterwards.
func (c *commandContext) withPlayer(fn func(player.Host) error) error {
	client, err := c.dialPlayer()
	if err != nil {
		return err
	}
	defer client.Close()
	return fn(client)
}

// resolveMedia determines the media file a command targets: the --media flag
// when given, otherwise whatever the running player has loaded.
func (c *commandContext) resolveMedia() (media, error) {
	if c.mediaFlag != nil && strings.TrimSpace(*c.mediaFlag) != "" {
		path, err := config.ExpandPath(strings.TrimSpace(*c.mediaFlag))
		if err != nil {
			return media{}, fmt.Errorf("resolve media path: %w", err)
		}
		return media{Path: path, Identifier: path}, nil
	}

	var resolved media
	err := c.withPlayer(func(host player.Host) error {
		location, err := host.MediaLocation()
		if err != nil {
			return err
		}
		if strings.TrimSpace(location) == "" {
			return status.Wrap(status.ErrNoMedia, "cli", "resolve media",
				"nothing is loaded in the player (or pass --media)", nil)
		}
		path, ok := player.LocalPath(location)
		if !ok {
			return status.Wrap(status.ErrNoMedia, "cli", "resolve media",
				fmt.Sprintf("media %q has no local path", location), nil)
		}
		resolved = media{Path: path, Identifier: location}
		return nil
	})
	return resolved, err
}

// openHistory opens the extraction journal, or returns (nil, nil) when it is
// disabled in the config.
func (c *commandContext) openHistory() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, nil
	}
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		return nil, fmt.Errorf("open extraction history: %w", err)
	}
	return store, nil
}

// friendlyError keeps user-state errors terse while preserving their
// sentinel marker, so main can classify them; everything else passes
// through unchanged.
func friendlyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, status.ErrNothingSelected) {
		return fmt.Errorf("%w: no timepoint at that position", status.ErrNothingSelected)
	}
	return err
}
