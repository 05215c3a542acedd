package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/moffa90/go-uf2/converter"
	"github.com/moffa90/go-uf2/internal/logger"
	"github.com/moffa90/go-uf2/internal/server"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		maxUpload   int64
		maxSize     int64
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the decode REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			&cli.Int64Flag{
				Name:        "max-upload",
				Usage:       "largest accepted request body in bytes",
				Value:       server.DefaultMaxUploadSize,
				Destination: &maxUpload,
			},
			&cli.Int64Flag{
				Name:        "max-size",
				Usage:       "largest image to return in bytes (0 = default)",
				Value:       converter.DefaultMaxOutputSize,
				Destination: &maxSize,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			log := logger.FromContext(ctx)
			cfg := LoadConfig()
			applyServeConfig(c, cfg, &addr, &maxUpload, &maxSize)

			srvCfg := server.Config{
				MaxUploadSize: maxUpload,
				MaxOutputSize: int(maxSize),
				Logger:        log,
			}
			if cfg.HexLineLength != nil {
				srvCfg.HexLineLength = int(*cfg.HexLineLength)
			}
			srv := server.New(srvCfg)
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			srv.Register(e)
			log.Info("starting server", "address", addr)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(s *http.Server) error {
					s.ReadHeaderTimeout = readTimeout
					s.ReadTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
