package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/tylerb/graceful.v1"

	"go.creack.net/eqcalc/config"
	"go.creack.net/eqcalc/executor"
	"go.creack.net/eqcalc/logging"
	"go.creack.net/eqcalc/rest"
)

// customized via Makefile
var (
	Version = "development"
	GitHash = "unknown"
)

var log = logging.Core

// config file name kingpin.Value
// parses configuration on value set
type configValue struct {
	cfg *config.Config // configuration instance
	v   string         // configuration path
}

// set configuration file
func (f *configValue) Set(s string) error {
	f.v = s
	return f.cfg.ParseFile(f.v)
}

// get configuration file
func (f *configValue) String() string {
	return f.v
}

func main() {
	cfg := config.Default()

	app := kingpin.New("eqcalc", "Arithmetic equation interpreter.")
	app.Version(Version)
	app.Flag("config", "Configuration in YML format.").SetValue(&configValue{cfg: &cfg})
	debug := app.Flag("debug", "Debug mode (more log messages).").Short('d').Bool()
	skipSpaces := app.Flag("skip-spaces", "Ignore spaces and tabs in equations.").Short('s').Bool()
	tolerance := app.Flag("tolerance", "Tolerance of float equality tests.").Float64()
	level := app.Flag("logging", "Logging level of every logger.").String()

	evalCmd := app.Command("eval", "Evaluate equations from the arguments, or one per line from standard input.").Default()
	evalTree := evalCmd.Flag("tree", "Print the syntax tree instead of evaluating.").Bool()
	evalTokens := evalCmd.Flag("tokens", "Print the tokens instead of evaluating.").Bool()
	evalArgs := evalCmd.Arg("equation", "Equations to evaluate in order.").Strings()

	serveCmd := app.Command("serve", "Serve equations over HTTP.")
	serveAddr := serveCmd.Flag("address", "Address:port to listen on.").Short('l').String()

	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	// command line takes precedence over the configuration file
	if *debug {
		cfg.DebugMode = true
	}
	if *skipSpaces {
		cfg.SkipSpaces = true
	}
	if *tolerance != 0 {
		cfg.EqualityTolerance = *tolerance
	}
	if *level != "" {
		cfg.Logging = *level
	}
	if *serveAddr != "" {
		cfg.Server.ListenAddress = *serveAddr
	}
	if err := cfg.Validate(); err != nil {
		app.FatalUsage("%s\n", err)
	}
	if err := setupLogging(cfg); err != nil {
		app.FatalUsage("%s\n", err)
	}

	switch cmd {
	case evalCmd.FullCommand():
		mode := executor.ModeValue
		if *evalTree {
			mode = executor.ModeTree
		}
		if *evalTokens {
			mode = executor.ModeTokens
		}
		os.Exit(runEval(cfg, mode, *evalArgs))
	case serveCmd.FullCommand():
		runServe(cfg)
	}
}

func setupLogging(cfg config.Config) error {
	level := cfg.Logging
	if cfg.DebugMode {
		level = logrus.DebugLevel.String()
	}
	if err := logging.Apply(logging.Defaults(level)); err != nil {
		return err
	}
	return logging.Apply(cfg.LoggingOptions)
}

// runEval evaluates every equation and returns the process exit code.
func runEval(cfg config.Config, mode executor.Mode, equations []string) int {
	ex := executor.New(cfg.NewSession(), os.Stdout, os.Stderr)
	ex.Mode = mode

	failed := 0
	if len(equations) == 0 {
		n, err := ex.Run(os.Stdin)
		if err != nil {
			log.WithError(err).Error("failed to run equations")
			return 2
		}
		failed = n
	}
	for _, equation := range equations {
		if err := ex.Line(equation); err != nil {
			failed++
		}
	}

	log.WithField("failed", failed).Debug("equations done")
	if failed > 0 {
		return 1
	}
	return 0
}

func runServe(cfg config.Config) {
	// be quiet and efficient in production
	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	timeout, _ := cfg.ShutdownTimeout() // checked by Validate
	log.WithFields(map[string]interface{}{
		"version":      Version,
		"git-hash":     GitHash,
		"address":      cfg.Server.ListenAddress,
		"max-sessions": cfg.Server.MaxSessions,
		"skip-spaces":  cfg.SkipSpaces,
		"logging":      logging.Levels(),
	}).Info("starting server...")

	server := rest.NewServer(cfg)
	server.SetLoggingLevel = logging.SetLevel
	server.LoggingLevels = logging.Levels
	router := server.Router()

	// /version API endpoint
	router.GET("/version", func(ctx *gin.Context) {
		info := map[string]interface{}{
			"version":  Version,
			"git-hash": GitHash,
		}
		ctx.JSON(http.StatusOK, info)
	})

	worker := &graceful.Server{
		Timeout: timeout,
		Server:  &http.Server{Addr: cfg.Server.ListenAddress, Handler: router},
	}
	if err := worker.ListenAndServe(); err != nil {
		log.WithError(err).WithField("address", cfg.Server.ListenAddress).Fatal("failed to listen HTTP")
	}

	log.Info("server stopped")
}
