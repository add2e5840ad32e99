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

	"github.com/prometheus-community/alertmanager-mcp-server/client"
)

func silenceDeleteTool(c *client.Client, logger *slog.Logger) server.ServerTool {
	tool := mcp.NewTool("delete-silence",
		mcp.WithDescription("Expire a silence by ID. The silenced alerts resume notifying."),
		mcp.WithString("silenceId",
			mcp.Required(),
			mcp.Description("ID of the silence to expire, as returned by get-silences or create-silence."),
		),
		mcp.WithTitleAnnotation("Delete silence"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("silenceId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		logger.Debug("Deleting silence", "id", id)

		if err := c.DeleteSilence(ctx, id); err != nil {
			return errorResult("Error deleting silence", err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Silence %s deleted successfully", id)), nil
	}

	return server.ServerTool{Tool: tool, Handler: handler}
}
