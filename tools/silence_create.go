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
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/prometheus-community/alertmanager-mcp-server/client"
)

func silenceCreateTool(c *client.Client, logger *slog.Logger) server.ServerTool {
	tool := mcp.NewTool("create-silence",
		mcp.WithDescription("Create a new silence suppressing notifications for all alerts matching the given label matchers."),
		mcp.WithArray("matchers",
			mcp.Required(),
			mcp.Description("Label matchers selecting the alerts to silence."),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":    map[string]any{"type": "string", "description": "Label name the matcher applies to."},
					"value":   map[string]any{"type": "string", "description": "Label value or regular expression to match."},
					"isRegex": map[string]any{"type": "boolean", "description": "Whether value is a regular expression.", "default": false},
				},
				"required": []string{"name", "value"},
			}),
		),
		mcp.WithString("startsAt",
			mcp.Description("RFC 3339 timestamp at which the silence starts. Defaults to now."),
		),
		mcp.WithString("endsAt",
			mcp.Required(),
			mcp.Description("RFC 3339 timestamp at which the silence expires."),
		),
		mcp.WithString("createdBy",
			mcp.Required(),
			mcp.Description("Name or identifier of the silence's creator."),
		),
		mcp.WithString("comment",
			mcp.Required(),
			mcp.Description("Reason for the silence."),
		),
		mcp.WithTitleAnnotation("Create silence"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Matchers  []client.Matcher `json:"matchers"`
			StartsAt  string           `json:"startsAt"`
			EndsAt    string           `json:"endsAt"`
			CreatedBy string           `json:"createdBy"`
			Comment   string           `json:"comment"`
		}
		if err := req.BindArguments(&args); err != nil {
			return errorResult("Error creating silence", err), nil
		}

		if len(args.Matchers) == 0 {
			return errorResult("Error creating silence", errors.New("at least one matcher is required")), nil
		}
		for _, m := range args.Matchers {
			if m.Name == "" {
				return errorResult("Error creating silence", errors.New("matcher name must not be empty")), nil
			}
		}

		// A missing start time means now. A caller-supplied one is parsed
		// for validity but sent upstream verbatim.
		startsAt := args.StartsAt
		if startsAt == "" {
			startsAt = strfmt.DateTime(time.Now().UTC()).String()
		}
		start, err := strfmt.ParseDateTime(startsAt)
		if err != nil {
			return errorResult("Error creating silence", fmt.Errorf("invalid startsAt: %w", err)), nil
		}
		if args.EndsAt == "" {
			return errorResult("Error creating silence", errors.New("endsAt is required")), nil
		}
		end, err := strfmt.ParseDateTime(args.EndsAt)
		if err != nil {
			return errorResult("Error creating silence", fmt.Errorf("invalid endsAt: %w", err)), nil
		}
		if time.Time(start).After(time.Time(end)) {
			return errorResult("Error creating silence", errors.New("silence cannot start after it ends")), nil
		}
		if args.CreatedBy == "" {
			return errorResult("Error creating silence", errors.New("createdBy is required")), nil
		}
		if args.Comment == "" {
			return errorResult("Error creating silence", errors.New("comment is required")), nil
		}

		logger.Debug("Creating silence", "matchers", len(args.Matchers), "startsAt", startsAt, "endsAt", args.EndsAt, "createdBy", args.CreatedBy)

		id, err := c.CreateSilence(ctx, &client.PostableSilence{
			Matchers:  args.Matchers,
			StartsAt:  startsAt,
			EndsAt:    args.EndsAt,
			CreatedBy: args.CreatedBy,
			Comment:   args.Comment,
		})
		if err != nil {
			return errorResult("Error creating silence", err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Silence created with ID: %s", id)), nil
	}

	return server.ServerTool{Tool: tool, Handler: handler}
}
