package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/cursorgen/internal/app"
	"github.com/rook-computer/cursorgen/internal/config"
	"github.com/rook-computer/cursorgen/internal/generate"
	"github.com/rook-computer/cursorgen/internal/palette"
	"github.com/rook-computer/cursorgen/internal/render"
	"github.com/rook-computer/cursorgen/internal/web"
)

const stdioLogEnv = "CURSORGEN_STDIO_LOG"

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		return 2
	}
	srvCfg, err := web.DefaultServerConfigFromEnv("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "server config error:", err)
		return 2
	}

	// Flags default to the environment so either can drive a run.
	style := flag.String("style", string(cfg.Style), "cursor style")
	flag.IntVar(&cfg.Size, "size", cfg.Size, "working canvas size before normalising to 32x32")
	flag.StringVar(&cfg.OutDir, "out", cfg.OutDir, "output root; files land in <out>/<style>")
	flag.BoolVar(&cfg.Strict, "strict", cfg.Strict, "reject unknown styles instead of falling back to "+string(palette.Default))
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "entries rendered concurrently")
	verbose := flag.Bool("v", false, "log progress to stderr")
	debug := flag.Bool("debug", false, "enable debug logging to ./cursorgen-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+stdioLogEnv)
	preview := flag.Bool("preview", false, "write a "+app.PreviewFileName+" contact sheet next to the cursors")
	fbDev := flag.String("fb", "", "show the contact sheet on this framebuffer device, e.g. /dev/fb0")
	flag.StringVar(&srvCfg.ListenAddr, "listen", srvCfg.ListenAddr, "after generating, serve every style over http on this address; also configurable via "+web.EnvListenAddr)
	flag.BoolVar(&srvCfg.DevMode, "dev", srvCfg.DevMode, "enable permissive CORS on the preview server; also configurable via "+web.EnvDevMode)
	list := flag.Bool("list", false, "print the known styles and exit")
	flag.Parse()
	cfg.Style = palette.Style(*style)

	if *list {
		for _, s := range palette.Styles() {
			fmt.Println(s)
		}
		return 0
	}

	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv(stdioLogEnv)
	}
	if err := app.RedirectStdIO(logPath); err != nil {
		fmt.Println("stdio log redirect error:", err)
	}

	var loggers app.MultiLogger
	if *verbose {
		loggers = append(loggers, app.SlogLogger{L: slog.New(slog.NewTextHandler(os.Stderr, nil))})
	}
	if *debug {
		f, err := os.OpenFile("./cursorgen-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			loggers = append(loggers, app.NewFileLogger(f))
		} else {
			fmt.Println("debug log open error:", err)
		}
	}
	var logger app.Logger = app.NoopLogger{}
	if len(loggers) > 0 {
		logger = loggers
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := app.New(cfg)
	a.Logger = logger
	a.Preview = *preview
	if *fbDev != "" {
		a.Display = render.FBDisplay{Device: *fbDev, Logger: logger}
	}

	logger.Infof("main", "generating style=%s size=%d workers=%d", cfg.Style, cfg.Size, cfg.Workers)
	batch, err := a.Run(ctx)
	if batch != nil {
		fmt.Printf("%s: %s\n", batch.Style, batch.Summary())
		for _, r := range batch.Failed() {
			fmt.Fprintln(os.Stderr, "failed:", r.Err)
		}
	}
	if err != nil {
		if batch == nil || len(batch.Failed()) == 0 {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		return 1
	}

	if srvCfg.ListenAddr != "" {
		gen := generate.New(a.Catalog)
		gen.Resolver.Policy = cfg.Policy()
		gen.Workers = cfg.Workers
		gen.Logger = logger
		server := web.NewHTTPServer(srvCfg, web.NewDefaultMux(web.NewLibrary(gen, cfg.Size), srvCfg))
		server.Logger = logger
		if err := server.Start(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "web server error:", err)
			return 1
		}
		fmt.Printf("serving cursors on http://%s/api/v1/styles\n", server.ListenAddr())
		<-ctx.Done()
		if err := server.Stop(); err != nil {
			fmt.Fprintln(os.Stderr, "web server stop error:", err)
		}
	}
	return 0
}
