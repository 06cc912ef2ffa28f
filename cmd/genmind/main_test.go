package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	t.Run("all valid levels are accepted", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "Info"} {
			t.Run(level, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: "info",
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}

		err := app.Run([]string{"test", "--log-level", "verbose"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestAIConfigFromFlags(t *testing.T) {
	app := &cli.App{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Value: "https://api.openai.com/v1"},
			&cli.StringFlag{Name: "token", Value: "none"},
			&cli.StringFlag{Name: "chat-model", Value: "gpt-4o-mini"},
			&cli.StringFlag{Name: "embedding-model", Value: "text-embedding-3-small"},
			&cli.DurationFlag{Name: "timeout"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := aiConfigFromFlags(c)
			require.NoError(t, err)
			assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
			assert.Equal(t, "qwen2.5:3b", cfg.ChatModel)
			return nil
		},
	}

	err := app.Run([]string{"test", "--host", "http://localhost:11434", "--chat-model", "qwen2.5:3b"})
	require.NoError(t, err)
}
