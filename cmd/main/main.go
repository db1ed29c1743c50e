package main

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/promoreport/internal/app"
	"github.com/maxbolgarin/promoreport/internal/config"
)

var (
	Version, Branch, Commit, BuildDate string
)

var (
	fromBranch = kingpin.Arg("from", "source branch being promoted").Required().String()
	toBranch   = kingpin.Arg("to", "destination branch").Required().String()

	configPath    = kingpin.Flag("config", "path to config file").Short('c').String()
	outputPath    = kingpin.Flag("output", "path of the HTML report").Short('o').Default(app.DefaultOutputPath).String()
	jsonPath      = kingpin.Flag("json", "also write report data as JSON to this path").String()
	promotionType = kingpin.Flag("type", "promotion label, derived from the destination branch if empty").String()
	commitRange   = kingpin.Flag("commit-range", "explicit git range or space separated commits instead of branch difference").String()
	noEmail       = kingpin.Flag("no-email", "do not send the report by email").Bool()
	verbose       = kingpin.Flag("verbose", "enable debug logging").Short('v').Bool()
)

func main() {
	kingpin.Version(Version)
	kingpin.Parse()

	var err error
	ctx := contem.New(contem.WithLogger(logze.DefaultPtr()), contem.Exit(&err))
	defer ctx.Shutdown()
	err = run(ctx)
	if err != nil {
		logze.DefaultPtr().Error("cannot run", "error", err)
	}
}

func run(ctx contem.Context) error {
	logze.Init(logze.C().WithConsole().WithLevel(lang.If(*verbose, logze.LevelDebug, logze.LevelInfo)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		return erro.Wrap(err, "load config")
	}
	cfg.Collector.Verbose = cfg.Collector.Verbose || *verbose
	cfg.Impact.Verbose = cfg.Impact.Verbose || *verbose

	promo, err := app.New(ctx, cfg)
	if err != nil {
		return erro.Wrap(err, "new app")
	}

	err = promo.Run(ctx, app.Options{
		From:          *fromBranch,
		To:            *toBranch,
		CommitRange:   *commitRange,
		PromotionType: *promotionType,
		OutputPath:    *outputPath,
		JSONPath:      *jsonPath,
		NoEmail:       *noEmail,
	})
	if err != nil {
		return erro.Wrap(err, "run")
	}

	return nil
}
