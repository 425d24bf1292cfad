package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Debug    bool   `help:"Enable debug logging." env:"DEBUG"`
	DB       string `help:"SQLite database for used questions and game history." default:"data/snakesss.db" env:"SNAKESSS_DB"`
	Settings string `help:"Game settings YAML file." default:"data/settings.yaml" env:"SNAKESSS_SETTINGS"`
	Corpus   string `help:"Question corpus (.json, .yaml). Empty uses the bundled corpus." env:"SNAKESSS_CORPUS"`

	Serve struct {
		Addr      string `help:"Listen address." default:":8080" env:"SNAKESSS_ADDR"`
		PublicURL string `help:"Base URL encoded in session QR codes." env:"SNAKESSS_PUBLIC_URL"`
	} `cmd:"" default:"1" help:"Start the HTTP server."`

	Demo struct {
		Players []string      `help:"Player names." default:"Alice,Bob,Charlie,Diana"`
		Rounds  int           `help:"Rounds to play." default:"1"`
		Seconds int           `help:"Discussion length in countdown seconds." default:"10"`
		Second  time.Duration `help:"Wall-clock length of one countdown second." default:"50ms"`
		Seed    int64         `help:"Random seed; 0 picks one."`
	} `cmd:"" help:"Play a full game automatically and log every phase."`

	History struct {
		Limit int `help:"Number of games to list." default:"20"`
	} `cmd:"" help:"List finished games, newest first."`

	Questions struct {
		Remaining struct{} `cmd:"" help:"Count unused questions for the current settings."`
		Reset     struct{} `cmd:"" help:"Forget which questions were asked."`
	} `cmd:"" help:"Inspect the question pool."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// A missing .env is fine
	_ = godotenv.Load()

	kctx := kong.Parse(&CLI,
		kong.Name("snakesss"),
		kong.Description("pass-and-play social deduction trivia"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch kctx.Command() {
	case "serve":
		err = serveCommand(ctx)
	case "demo":
		err = demoCommand(ctx)
	case "history":
		err = historyCommand(ctx)
	case "questions remaining":
		err = questionsRemainingCommand()
	case "questions reset":
		err = questionsResetCommand()
	}
	if err != nil {
		stop()
		writeError(err)
	}
}
