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

// Package tools implements the MCP tools exposed by the server, one tool
// per Alertmanager operation.
package tools

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/common/version"

	"github.com/prometheus-community/alertmanager-mcp-server/client"
)

const serverInstructions = `This server manages alerts and silences of a single Prometheus Alertmanager.
Use get-alerts or get-alert-groups to inspect firing alerts and get-alert-details
for the full payload of one alert. Silences are created with create-silence,
listed with get-silences and expired with delete-silence. Filter arguments take
Alertmanager matcher expressions such as alertname="HighLatency" or
severity=~"warning|critical".`

// NewServer returns an MCP server with all Alertmanager tools registered.
func NewServer(c *client.Client, logger *slog.Logger) *server.MCPServer {
	srv := server.NewMCPServer(
		"alertmanager-mcp-server",
		version.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)
	srv.AddTools(All(c, logger)...)
	return srv
}

// All returns the full tool table backed by the given client.
func All(c *client.Client, logger *slog.Logger) []server.ServerTool {
	return []server.ServerTool{
		alertQueryTool(c, logger),
		alertDetailsTool(c, logger),
		silenceCreateTool(c, logger),
		silenceQueryTool(c, logger),
		silenceDeleteTool(c, logger),
		alertGroupsTool(c, logger),
	}
}

// jsonResult renders v as indented JSON. A marshal failure is reported
// through the error envelope like any other failure of the operation.
func jsonResult(errPrefix string, v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(errPrefix, err), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// errorResult wraps a failure in the error envelope shown to the model.
// Handlers return it alongside a nil error: an upstream failure is a tool
// outcome to reason about, not a protocol failure.
func errorResult(prefix string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("%s: %s", prefix, err))
}
