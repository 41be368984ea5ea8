package config

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
)

const HelpMessage = `Ride analytics dashboard

Usage:
  dashboard [-mode dashboard|report] [-config-path config.yaml] [-file rides.csv]

Modes:
  dashboard   serve the interactive dashboard, its JSON API and live filtering
  report      print a Markdown report for -file, then watch IMPORT_DIR when set

Flags:
`

func PrintHelp() {
	fmt.Fprint(os.Stderr, HelpMessage)
	flag.PrintDefaults()
}

// PrintConfig prints the effective configuration with secrets masked.
func PrintConfig(cfg *Config) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	rows := [][2]string{
		{"MODE", cfg.Mode.String()},
		{"FILE", cfg.File},
		{"LOG_LEVEL", cfg.Log.Level},
		{"HTTP_PORT", cfg.HTTP.Port},
		{"HTTP_MAX_UPLOAD_MB", fmt.Sprint(cfg.HTTP.MaxUploadMB)},
		{"HTTP_READ_TIMEOUT", cfg.HTTP.ReadTimeout.String()},
		{"HTTP_WRITE_TIMEOUT", cfg.HTTP.WriteTimeout.String()},
		{"SESSION_SECRET", mask(cfg.Session.Secret)},
		{"SESSION_TTL", cfg.Session.TTL.String()},
		{"SESSION_CAPACITY", fmt.Sprint(cfg.Session.Capacity)},
		{"SESSION_SWEEP_INTERVAL", cfg.Session.SweepInterval.String()},
		{"CHART_SCHEME", cfg.Chart.Scheme},
		{"CHART_HOST", cfg.Chart.Address()},
		{"RABBITMQ_ENABLED", fmt.Sprint(cfg.RabbitMQ.Enabled)},
		{"RABBITMQ_HOST", cfg.RabbitMQ.Host},
		{"RABBITMQ_PORT", cfg.RabbitMQ.Port},
		{"RABBITMQ_USER", cfg.RabbitMQ.User},
		{"RABBITMQ_PASSWORD", mask(cfg.RabbitMQ.Password)},
		{"RABBITMQ_EXCHANGE", cfg.RabbitMQ.Exchange},
		{"IMPORT_DIR", cfg.Import.Dir},
	}

	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\n", r[0], r[1])
	}
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}
