// Command coverlane runs the insurance agency marketing site and its
// admin dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/coverlane/coverlane/config"
	"github.com/coverlane/coverlane/internal/adminapi"
	"github.com/coverlane/coverlane/internal/app"
	"github.com/coverlane/coverlane/internal/publicapi"
	"github.com/coverlane/coverlane/internal/webserver"
	"github.com/coverlane/coverlane/internal/webui"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	confFile = flag.String("c", "", "config yaml file")
	initDb   = flag.Bool("initdb", false, "drop and recreate the database schema")
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func printVersion() {
	fmt.Printf("coverlane %s (built %s)\n", version, buildTime)
}

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		return
	}
	if *showVer {
		printVersion()
		return
	}

	cfg := config.LoadConfig(*confFile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	webserver.Init(application)
	webui.InitRouter()
	publicapi.InitRouter()
	adminapi.InitRouter()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return webserver.Instance().Start()
	})
	g.Go(func() error {
		<-ctx.Done()
		return webserver.Instance().Echo().Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		zap.S().Errorf("server stopped: %v", err)
	}
}
