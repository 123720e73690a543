/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"demowin/internal/app"
	"demowin/internal/config"
	"demowin/internal/crash"
	"demowin/internal/demo"
	"demowin/internal/linkserver"
	applog "demowin/internal/log"
	"demowin/internal/telemetry"
	"demowin/internal/tui"
	"demowin/internal/ui"
	"demowin/internal/version"
)

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "demowin — demo window orchestrator")
	_, _ = fmt.Fprintf(w, "Version: %s\n", version.String())
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  demowin version|-v|--version             Show version")
	_, _ = fmt.Fprintln(w, "  demowin run [flags]                      Start the host chosen by general.host")
	_, _ = fmt.Fprintln(w, "  demowin ui [flags]                       Desktop UI (build with -tags fyne)")
	_, _ = fmt.Fprintln(w, "  demowin tui [flags]                      Terminal UI")
	_, _ = fmt.Fprintln(w, "  demowin frames [-n N] [flags]            Run N frames headless and print the last one")
	_, _ = fmt.Fprintln(w, "  demowin link <name> [--addr host:port]   Ask a running demowin to open a link (\"\" clears)")
	_, _ = fmt.Fprintln(w, "  demowin config path|show|token <t>|forget-token")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Host flags: --link <name>  --state-dir <dir>  --no-persist  --no-clock  --serve")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the exit, so it can be tested.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, token, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	logOpts := applog.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format, AddSource: cfg.Logging.Source, File: cfg.Logging.File}
	if len(args) > 0 && usesTerminal(args[0], cfg.General.Host) {
		// The terminal host owns the screen.
		logOpts.Console = io.Discard
	}
	applog.Init(logOpts)
	l := applog.WithComponent("cli")
	l.Debug("start", slog.Int("args", len(args)))

	telemetry.SetDefault(telemetry.New(telemetry.Config{
		OptIn:     cfg.Telemetry.OptIn,
		EventsURL: cfg.Telemetry.URL,
		CrashURL:  cfg.Telemetry.CrashURL,
		Token:     token,
	}))
	defer telemetry.Default().Close()

	if len(args) == 0 {
		usage(stdout)
		return 0
	}
	switch args[0] {
	case "version", "--version", "-v":
		_, _ = fmt.Fprintln(stdout, "demowin")
		_, _ = fmt.Fprintln(stdout, version.String())
		return 0
	case "run":
		return runHost(cfg, cfg.General.Host, args[1:], stdout, stderr)
	case "ui":
		return runHost(cfg, config.HostFyne, args[1:], stdout, stderr)
	case "tui":
		return runHost(cfg, config.HostTUI, args[1:], stdout, stderr)
	case "frames":
		return runHost(cfg, config.HostHeadless, args[1:], stdout, stderr)
	case "link":
		return sendLink(cfg, args[1:], stdout, stderr)
	case "config":
		return configCmd(cfg, args[1:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	}
	_, _ = fmt.Fprintf(stderr, "unknown command %q\n", args[0])
	usage(stderr)
	return 2
}

func usesTerminal(cmd, host string) bool {
	if cmd == "run" {
		cmd = map[string]string{config.HostFyne: "ui", config.HostTUI: "tui"}[host]
	}
	return cmd == "tui" || (cmd == "ui" && ui.Headless())
}

type hostFlags struct {
	link      string
	stateDir  string
	noPersist bool
	noClock   bool
	serve     bool
	frames    int
	every     bool
}

func parseHostFlags(cfg config.AppConfig, name string, args []string, stderr io.Writer) (hostFlags, error) {
	hf := hostFlags{link: cfg.General.Link, stateDir: cfg.Storage.Dir, noPersist: !cfg.General.Persist, noClock: !cfg.General.Clock, serve: cfg.LinkServer.Enabled}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&hf.link, "link", hf.link, "deep link applied at startup (clock)")
	fs.StringVar(&hf.stateDir, "state-dir", hf.stateDir, "directory for state.json and memory.sqlite")
	fs.BoolVar(&hf.noPersist, "no-persist", hf.noPersist, "do not load or save state")
	fs.BoolVar(&hf.noClock, "no-clock", hf.noClock, "hide the menu bar clock")
	fs.BoolVar(&hf.serve, "serve", hf.serve, "accept deep links on the websocket link server")
	fs.IntVar(&hf.frames, "n", 1, "frames to run (frames command)")
	fs.BoolVar(&hf.every, "all", false, "print every frame, not just the last (frames command)")
	if err := fs.Parse(args); err != nil {
		return hf, err
	}
	return hf, nil
}

func runHost(cfg config.AppConfig, host string, args []string, stdout, stderr io.Writer) int {
	l := applog.WithComponent("cli")
	hf, err := parseHostFlags(cfg, host, args, stderr)
	if err != nil {
		return 2
	}
	link, err := demo.ParseLink(hf.link)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 2
	}
	dir := hf.stateDir
	if dir == "" && !hf.noPersist {
		if dir, err = cfg.StateDir(); err != nil {
			_, _ = fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
	}

	opts := app.Options{StateDir: dir, Persist: !hf.noPersist, ShowClock: !hf.noClock, Link: link}
	var srv *linkserver.Server
	if hf.serve {
		srv = linkserver.New(cfg.LinkServer.Addr)
		srv.Set(link)
		if err := srv.Start(); err != nil {
			_, _ = fmt.Fprintln(stderr, "Error: link server:", err)
			return 1
		}
		defer func() { _ = srv.Close() }()
		opts.LinkSource = srv
	}

	sess, err := app.Open(opts)
	if err != nil {
		l.Error("open session failed", slog.Any("err", err))
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	defer crash.Recover(sess)

	switch host {
	case config.HostFyne:
		if ui.Headless() {
			err = ui.ErrNotBuilt
		} else {
			err = ui.Run(sess)
		}
		if errors.Is(err, ui.ErrNotBuilt) {
			l.Warn("desktop UI not available, using the terminal", slog.Any("err", err))
			err = tui.Run(sess)
		}
	case config.HostTUI:
		err = tui.Run(sess)
	default:
		err = dumpFrames(sess, hf.frames, hf.every, stdout)
	}
	if cerr := sess.Close(); cerr != nil {
		l.Error("close session failed", slog.Any("err", cerr))
		if err == nil {
			err = cerr
		}
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func dumpFrames(sess *app.Session, n int, every bool, w io.Writer) error {
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		f := sess.Frame(nil)
		if every || i == n-1 {
			if err := f.Dump(w); err != nil {
				return err
			}
		}
	}
	return nil
}

func sendLink(cfg config.AppConfig, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("link", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", cfg.LinkServer.Addr, "link server address")
	timeout := fs.Duration("timeout", 3*time.Second, "request timeout")
	var name string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if name == "" && fs.NArg() > 0 {
		name = fs.Arg(0)
	}
	if _, err := demo.ParseLink(name); err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 2
	}
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	resp, err := linkserver.Send(ctx, *addr, name)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	if resp.Link == "" {
		_, _ = fmt.Fprintln(stdout, "link cleared")
	} else {
		_, _ = fmt.Fprintln(stdout, "link requested:", resp.Link)
	}
	return 0
}

func configCmd(cfg config.AppConfig, args []string, stdout, stderr io.Writer) int {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
	}
	switch sub {
	case "path":
		p, err := config.ConfigPath()
		if err != nil {
			_, _ = fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		_, _ = fmt.Fprintln(stdout, p)
	case "show":
		if err := cfg.Validate(); err != nil {
			_, _ = fmt.Fprintln(stderr, "warning:", err)
		}
		for _, kv := range [][2]string{
			{"general.host", cfg.General.Host},
			{"general.link", cfg.General.Link},
			{"general.persist", fmt.Sprint(cfg.General.Persist)},
			{"storage.dir", cfg.Storage.Dir},
			{"link_server.addr", cfg.LinkServer.Addr},
			{"telemetry.opt_in", fmt.Sprint(cfg.Telemetry.OptIn)},
			{"logging.level", cfg.Logging.Level},
		} {
			line := kv[0] + " = " + kv[1]
			if env, ok := config.EnvOverrideFor(kv[0]); ok {
				line += "  (from " + env + ")"
			}
			_, _ = fmt.Fprintln(stdout, line)
		}
	case "token":
		if len(args) < 2 || strings.TrimSpace(args[1]) == "" {
			_, _ = fmt.Fprintln(stderr, "token requires a value")
			return 2
		}
		if err := config.Save(cfg, strings.TrimSpace(args[1])); err != nil {
			_, _ = fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		_, _ = fmt.Fprintln(stdout, "telemetry token stored in the OS keyring")
	case "forget-token":
		if err := config.DeleteToken(); err != nil {
			_, _ = fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		_, _ = fmt.Fprintln(stdout, "telemetry token removed")
	default:
		_, _ = fmt.Fprintf(stderr, "unknown config command %q\n", sub)
		return 2
	}
	return 0
}
