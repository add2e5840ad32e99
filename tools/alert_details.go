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
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/common/model"

	"github.com/prometheus-community/alertmanager-mcp-server/client"
)

// alertDetails is the full alert payload returned by get-alert-details,
// with the alertname pulled up beside the fingerprint.
type alertDetails struct {
	Fingerprint  string             `json:"fingerprint"`
	Alertname    string             `json:"alertname"`
	Labels       model.LabelSet     `json:"labels"`
	Annotations  model.LabelSet     `json:"annotations"`
	StartsAt     string             `json:"startsAt"`
	EndsAt       string             `json:"endsAt"`
	GeneratorURL string             `json:"generatorURL"`
	Status       client.AlertStatus `json:"status"`
}

func alertDetailsTool(c *client.Client, logger *slog.Logger) server.ServerTool {
	tool := mcp.NewTool("get-alert-details",
		mcp.WithDescription("Get the full payload of a single alert, including all labels and annotations, looked up by its fingerprint."),
		mcp.WithString("fingerprint",
			mcp.Required(),
			mcp.Description("Fingerprint of the alert, as returned by get-alerts."),
		),
		mcp.WithTitleAnnotation("Get alert details"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		fingerprint, err := req.RequireString("fingerprint")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		logger.Debug("Fetching alert details", "fingerprint", fingerprint)

		// Fingerprints cannot be fetched directly, so scan the full list.
		// AlertFilter{Active: true} encodes to an empty query, which asks
		// for alerts in every state.
		alerts, err := c.ListAlerts(ctx, client.AlertFilter{Active: true})
		if err != nil {
			return errorResult("Error fetching alert details", err), nil
		}

		for _, a := range alerts {
			if a.Fingerprint == fingerprint {
				return jsonResult("Error fetching alert details", alertDetails{
					Fingerprint:  a.Fingerprint,
					Alertname:    string(a.Labels[model.AlertNameLabel]),
					Labels:       a.Labels,
					Annotations:  a.Annotations,
					StartsAt:     a.StartsAt,
					EndsAt:       a.EndsAt,
					GeneratorURL: a.GeneratorURL,
					Status:       a.Status,
				})
			}
		}
		return mcp.NewToolResultError(fmt.Sprintf("Alert with fingerprint %q not found", fingerprint)), nil
	}

	return server.ServerTool{Tool: tool, Handler: handler}
}
