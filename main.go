package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"InkBoard/internal/config"
	"InkBoard/internal/geom"
	"InkBoard/internal/logger"
	inknet "InkBoard/internal/net"
	"InkBoard/internal/parallel"
	"InkBoard/internal/spline"
	"InkBoard/internal/state"
)

// CustomURLScheme prefixes share links printed by a host.
const CustomURLScheme = "inkboard://"

func main() {
	configPath := flag.String("config", config.DefaultFilename, "tuning file (YAML)")
	join := flag.String("join", "", "host address (ip:port) to stream strokes to")
	discover := flag.Bool("discover", false, "find a host on the LAN via mDNS and join it")
	flag.Parse()

	tuning, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logger.ParseLevel(tuning.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if link := flag.Arg(0); strings.HasPrefix(link, CustomURLScheme) {
		*join = strings.TrimSuffix(strings.TrimPrefix(link, CustomURLScheme), "/")
	}

	switch {
	case *discover:
		addr, err := inknet.Browse(3 * time.Second)
		if err != nil {
			logger.Logger().Error("discovery failed", "error", err)
			os.Exit(1)
		}
		exitOn(runClient(ctx, addr, os.Stdin))
	case *join != "":
		exitOn(runClient(ctx, *join, os.Stdin))
	default:
		exitOn(runHost(ctx, tuning))
	}
}

func exitOn(err error) {
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Logger().Error("exiting", "error", err)
		os.Exit(1)
	}
}

// runHost tessellates every stroke once per frame and accepts remote peers
// until ctx is cancelled.
func runHost(ctx context.Context, tuning config.Tuning) error {
	log := logger.Logger()
	log.Info("starting as host", "site", state.SiteID(),
		"basis", tuning.Basis.String(), "cycling", spline.CyclingLabel(tuning.Cyclic))

	pool := parallel.NewWorkerPool(tuning.Workers)
	defer pool.Close()
	store := state.NewStore(tuning.StrokeConfig(), pool)
	hub := inknet.NewHub(store)
	defer hub.Close()

	mux := http.NewServeMux()
	mux.Handle(inknet.Path, hub)
	ln, err := net.Listen("tcp", tuning.Listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", tuning.Listen, err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
		}
	}()
	defer srv.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	log.Info("host listening", "addr", ln.Addr().String(),
		"share", fmt.Sprintf("%s%s:%d", CustomURLScheme, inknet.GetOutgoingIP(), port))

	if tuning.Advertise {
		mdnsServer, err := inknet.Advertise(port)
		if err != nil {
			log.Warn("mDNS advertise failed", "error", err)
		} else {
			defer mdnsServer.Shutdown()
		}
	}

	ticker := time.NewTicker(tuning.FrameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			ext := store.Extent()
			log.Info("host shutting down", "strokes", store.Len(),
				"width", ext.Width(), "height", ext.Height())
			return ctx.Err()
		case <-ticker.C:
			if added := store.UpdateAll(); added > 0 {
				log.Debug("frame", "vertices", added, "strokes", store.Len(), "peers", hub.Peers())
			}
		}
	}
}

// runClient streams strokes read from r to the host at addr. Each line is
// "x y"; a blank line releases the pointer.
func runClient(ctx context.Context, addr string, r io.Reader) error {
	log := logger.Logger()
	log.Info("starting as client", "host", addr)

	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	client, err := inknet.Dial(dialCtx, inknet.URL(addr))
	if err != nil {
		return err
	}
	defer client.Close()

	go func() {
		for msg := range client.Errors() {
			log.Warn("host rejected message", "stroke", msg.Stroke, "error", msg.Error)
		}
	}()

	var current string
	release := func() error {
		if current == "" {
			return nil
		}
		id := current
		current = ""
		return client.CloseStroke(id)
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			if err := release(); err != nil {
				return err
			}
			continue
		}
		p, err := parsePoint(line)
		if err != nil {
			log.Warn("skipping sample", "line", line, "error", err)
			continue
		}
		if current == "" {
			current = state.NewStrokeID()
			err = client.Open(current, p)
		} else {
			err = client.Points(current, p)
		}
		if err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return release()
}

func parsePoint(line string) (geom.Point, error) {
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(fields) != 2 {
		return geom.Point{}, fmt.Errorf("want 2 coordinates, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return geom.Point{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return geom.Point{}, err
	}
	p := geom.Pt(float32(x), float32(y))
	if !p.IsFinite() {
		return geom.Point{}, fmt.Errorf("coordinates must be finite, got %q", line)
	}
	return p, nil
}
