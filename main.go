package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
	logger "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"tradejournal/src/database"
	"tradejournal/src/server"
)

func SetupLogger() {
	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))

	level, err := logger.ParseLevel(levelStr)
	if err != nil {
		level = logger.DebugLevel
	}

	logger.SetLevel(level)
	logger.SetFormatter(&logger.TextFormatter{
		FullTimestamp: true,
	})
}

func main() {
	SetupLogger()

	app := cli.NewApp()
	app.Name = "tradejournal"
	app.Usage = "Personal trading journal server and tools"

	app.Commands = []cli.Command{
		serveCMD,
		importCMD,
		shutdownCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var serverFlag = cli.StringFlag{
	Name:   "server",
	Usage:  "base URL of a running journal server",
	EnvVar: "SERVER_ADDR",
	Value:  "http://localhost:3000",
}

var (
	serveCMD = cli.Command{
		Name:        "serve",
		Usage:       "run the journal HTTP server",
		Action:      serveAction,
		Description: `Connect to the database and serve the journal API`,
	}
	importCMD = cli.Command{
		Name:        "import",
		Usage:       "upload a broker CSV export to a running server",
		ArgsUsage:   "<export.csv>",
		Flags:       []cli.Flag{serverFlag},
		Action:      importAction,
		Description: `Post a broker export through the ingestion pipeline and print the summary`,
	}
	shutdownCMD = cli.Command{
		Name:        "shutdown",
		Usage:       "ask a running server to shut down gracefully",
		Flags:       []cli.Flag{serverFlag},
		Action:      shutdownAction,
		Description: `Post to the shutdown endpoint of a running server`,
	}
)

func serveAction(_ *cli.Context) error {
	logger.Info("Starting trading journal server")

	if err := database.InitMainDB(); err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	server.StartServer(server.GetConfig().Port)
	return nil
}

func importAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("usage: tradejournal import <export.csv>")
	}

	var result struct {
		Message             string `json:"message"`
		NewTrades           int    `json:"newTrades"`
		SkippedClosedTrades int    `json:"skippedClosedTrades"`
		TotalProcessed      int    `json:"totalProcessed"`
	}

	resp, err := resty.New().R().
		SetFile("csvFile", path).
		SetResult(&result).
		Post(c.String("server") + "/api/upload-csv")
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("upload rejected (%s): %s", resp.Status(), resp.String())
	}

	logger.WithFields(map[string]interface{}{
		"new":     result.NewTrades,
		"skipped": result.SkippedClosedTrades,
		"total":   result.TotalProcessed,
	}).Info(result.Message)

	return nil
}

func shutdownAction(c *cli.Context) error {
	resp, err := resty.New().R().Post(c.String("server") + "/api/shutdown")
	if err != nil {
		return fmt.Errorf("shutdown request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("shutdown rejected (%s): %s", resp.Status(), resp.String())
	}

	logger.Info("Server shutdown requested")
	return nil
}
