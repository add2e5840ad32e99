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
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/prometheus-community/alertmanager-mcp-server/client"
)

func alertGroupsTool(c *client.Client, logger *slog.Logger) server.ServerTool {
	tool := mcp.NewTool("get-alert-groups",
		mcp.WithDescription("List alerts grouped the way Alertmanager routes them, optionally restricted by a label filter and by alert state."),
		mcp.WithString("filter",
			mcp.Description(`Label matchers restricting the alerts, e.g. alertname="HighLatency" or severity=~"warning|critical".`),
		),
		mcp.WithBoolean("active",
			mcp.Description("Include active alerts."),
			mcp.DefaultBool(true),
		),
		mcp.WithBoolean("silenced",
			mcp.Description("Include silenced alerts."),
			mcp.DefaultBool(false),
		),
		mcp.WithBoolean("inhibited",
			mcp.Description("Include alerts suppressed by an inhibition rule."),
			mcp.DefaultBool(false),
		),
		mcp.WithTitleAnnotation("Get alert groups"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := client.AlertFilter{
			Filter:    req.GetString("filter", ""),
			Active:    req.GetBool("active", true),
			Silenced:  req.GetBool("silenced", false),
			Inhibited: req.GetBool("inhibited", false),
		}
		logger.Debug("Fetching alert groups", "filter", filter.Filter, "active", filter.Active, "silenced", filter.Silenced, "inhibited", filter.Inhibited)

		raw, err := c.ListAlertGroups(ctx, filter)
		if err != nil {
			return errorResult("Error fetching alert groups", err), nil
		}

		// The grouped structure is Alertmanager's own and is passed on
		// verbatim, reindented for readability.
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return errorResult("Error fetching alert groups", err), nil
		}
		return mcp.NewToolResultText(buf.String()), nil
	}

	return server.ServerTool{Tool: tool, Handler: handler}
}
