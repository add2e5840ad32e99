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

package tools

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/prometheus-community/alertmanager-mcp-server/client"
)

func silenceQueryTool(c *client.Client, logger *slog.Logger) server.ServerTool {
	tool := mcp.NewTool("get-silences",
		mcp.WithDescription("List silences, optionally restricted by a label filter. Expired silences are included."),
		mcp.WithString("filter",
			mcp.Description(`Label matchers restricting the silences, e.g. alertname="HighLatency".`),
		),
		mcp.WithTitleAnnotation("Get silences"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := req.GetString("filter", "")
		logger.Debug("Fetching silences", "filter", filter)

		silences, err := c.ListSilences(ctx, filter)
		if err != nil {
			return errorResult("Error fetching silences", err), nil
		}

		formatted := make([]formattedSilence, 0, len(silences))
		for _, s := range silences {
			formatted = append(formatted, formatSilence(s))
		}
		return jsonResult("Error fetching silences", formatted)
	}

	return server.ServerTool{Tool: tool, Handler: handler}
}
