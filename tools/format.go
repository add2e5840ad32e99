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
	"github.com/prometheus/common/model"

	"github.com/prometheus-community/alertmanager-mcp-server/client"
)

const (
	severityLabel         model.LabelName = "severity"
	summaryAnnotation     model.LabelName = "summary"
	descriptionAnnotation model.LabelName = "description"
)

// Placeholders for alerts that carry no severity label or no summary or
// description annotation.
const (
	severityUnknown = "unknown"
	noSummary       = "No summary provided"
	noDescription   = "No description provided"
)

// formattedAlert is the compact alert projection returned by get-alerts.
// It keeps the fields a caller needs to triage an alert and drops the
// rest; the full payload stays available through get-alert-details.
type formattedAlert struct {
	Fingerprint string               `json:"fingerprint"`
	Alertname   string               `json:"alertname"`
	Severity    string               `json:"severity"`
	Summary     string               `json:"summary"`
	Description string               `json:"description"`
	StartsAt    string               `json:"startsAt"`
	Status      formattedAlertStatus `json:"status"`
	Labels      model.LabelSet       `json:"labels"`
}

// formattedAlertStatus reduces the silencedBy and inhibitedBy ID lists to
// booleans; the IDs themselves rarely matter for triage.
type formattedAlertStatus struct {
	State     client.AlertState `json:"state"`
	Silenced  bool              `json:"silenced"`
	Inhibited bool              `json:"inhibited"`
}

func formatAlert(a *client.Alert) formattedAlert {
	f := formattedAlert{
		Fingerprint: a.Fingerprint,
		Alertname:   string(a.Labels[model.AlertNameLabel]),
		Severity:    severityUnknown,
		Summary:     noSummary,
		Description: noDescription,
		StartsAt:    a.StartsAt,
		Status: formattedAlertStatus{
			State:     a.Status.State,
			Silenced:  len(a.Status.SilencedBy) > 0,
			Inhibited: len(a.Status.InhibitedBy) > 0,
		},
		Labels: a.Labels,
	}
	if v := string(a.Labels[severityLabel]); v != "" {
		f.Severity = v
	}
	if v := string(a.Annotations[summaryAnnotation]); v != "" {
		f.Summary = v
	}
	if v := string(a.Annotations[descriptionAnnotation]); v != "" {
		f.Description = v
	}
	return f
}

// formattedSilence is the silence projection returned by get-silences,
// with the status struct flattened to its state string.
type formattedSilence struct {
	ID        string              `json:"id"`
	Status    client.SilenceState `json:"status"`
	CreatedBy string              `json:"createdBy"`
	Comment   string              `json:"comment"`
	StartsAt  string              `json:"startsAt"`
	EndsAt    string              `json:"endsAt"`
	Matchers  []client.Matcher    `json:"matchers"`
}

func formatSilence(s *client.Silence) formattedSilence {
	return formattedSilence{
		ID:        s.ID,
		Status:    s.Status.State,
		CreatedBy: s.CreatedBy,
		Comment:   s.Comment,
		StartsAt:  s.StartsAt,
		EndsAt:    s.EndsAt,
		Matchers:  s.Matchers,
	}
}
