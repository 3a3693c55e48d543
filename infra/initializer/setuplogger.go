package initializer

import (
	"log/slog"
	"os"

	"github.com/amirasaad/balabank/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

func setupLogger(cfg *config.Log) *slog.Logger {
	styles := log.DefaultStyles()
	infoTxtColor := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warnTxtColor := lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	errorTxtColor := lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}

	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Bold(true).
		Padding(0, 1).
		Foreground(errorTxtColor)
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Bold(true).
		Padding(0, 1).
		Foreground(infoTxtColor)
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Bold(true).
		Padding(0, 1).
		Foreground(warnTxtColor)
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(errorTxtColor)
	styles.Values["error"] = lipgloss.NewStyle().Bold(true)

	formatter := log.TextFormatter
	if cfg.Format == "json" {
		formatter = log.JSONFormatter
	}

	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(styles)

	return slog.New(logger)
}
