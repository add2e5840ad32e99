// Copyright 2025 The Prometheus Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// The alertmanager-mcp-server command exposes the alert and silence
// management API of a Prometheus Alertmanager as MCP tools, speaking the
// protocol on stdin and stdout. All diagnostics go to stderr, which is the
// only output channel not claimed by the protocol.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/mark3labs/mcp-go/server"
	"github.com/oklog/run"
	"github.com/prometheus/common/promslog"
	promslogflag "github.com/prometheus/common/promslog/flag"
	"github.com/prometheus/common/version"

	"github.com/prometheus-community/alertmanager-mcp-server/client"
	"github.com/prometheus-community/alertmanager-mcp-server/tools"
)

func main() {
	app := kingpin.New("alertmanager-mcp-server", "MCP server for the Prometheus Alertmanager.").DefaultEnvars()
	alertmanagerURL := app.Flag("alertmanager.url", "URL of the Alertmanager to manage.").
		Envar("ALERTMANAGER_URL").
		Default("http://localhost:9093").
		URL()
	httpConfigFile := app.Flag("http.config.file", "HTTP client configuration file for connecting to the Alertmanager (TLS, authentication).").
		PlaceHolder("<filename>").
		String()

	promslogConfig := &promslog.Config{}
	promslogflag.AddFlags(app, promslogConfig)
	app.Version(version.Print("alertmanager-mcp-server"))
	app.GetFlag("help").Short('h')
	app.UsageWriter(os.Stdout)

	resolver, err := newConfigResolver(
		os.ExpandEnv("$HOME/.config/alertmanager-mcp-server/config.yml"),
		"/etc/alertmanager-mcp-server/config.yml",
	)
	if err != nil {
		kingpin.Fatalf("could not load config file: %v\n", err)
	}
	app.Resolver(resolver)

	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := promslog.New(promslogConfig)

	clientCfg := client.Config{
		URL:    (*alertmanagerURL).String(),
		Logger: logger.With("component", "client"),
	}
	if *httpConfigFile != "" {
		httpConfig, err := loadHTTPConfigFile(*httpConfigFile)
		if err != nil {
			logger.Error("Failed to load HTTP config file", "file", *httpConfigFile, "err", err)
			os.Exit(1)
		}
		clientCfg.HTTPConfig = httpConfig
	}

	amc, err := client.New(clientCfg)
	if err != nil {
		logger.Error("Failed to create Alertmanager client", "err", err)
		os.Exit(1)
	}

	srv := tools.NewServer(amc, logger.With("component", "tools"))

	logger.Info("Starting alertmanager-mcp-server", "version", version.Info())
	logger.Info("Build context", "build_context", version.BuildContext())
	logger.Info("Managing Alertmanager", "url", clientCfg.URL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group
	g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))
	{
		stdio := server.NewStdioServer(srv)
		stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))
		g.Add(func() error {
			// Listen returns when the host closes stdin.
			return stdio.Listen(ctx, os.Stdin, os.Stdout)
		}, func(error) {
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		var sig run.SignalError
		if errors.As(err, &sig) {
			logger.Info("Received signal, exiting", "signal", sig.Signal)
			return
		}
		logger.Error("Server exited with error", "err", err)
		os.Exit(1)
	}
	logger.Info("Server exited")
}
