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

package client

import (
	"net/url"
	"strconv"

	"github.com/prometheus/common/model"
)

// AlertState is the processing state of an alert as reported by the
// Alertmanager API.
type AlertState string

// Possible values of AlertState.
const (
	AlertStateActive      AlertState = "active"
	AlertStateSuppressed  AlertState = "suppressed"
	AlertStateUnprocessed AlertState = "unprocessed"
)

// SilenceState is the lifecycle state of a silence as reported by the
// Alertmanager API.
type SilenceState string

// Possible values of SilenceState.
const (
	SilenceStateActive  SilenceState = "active"
	SilenceStatePending SilenceState = "pending"
	SilenceStateExpired SilenceState = "expired"
)

// Alert is an alert as returned by GET /api/v2/alerts. Timestamps are kept
// as the verbatim RFC 3339 strings from the wire so they survive a round
// trip through this program without reformatting.
type Alert struct {
	Fingerprint  string         `json:"fingerprint"`
	Labels       model.LabelSet `json:"labels"`
	Annotations  model.LabelSet `json:"annotations"`
	StartsAt     string         `json:"startsAt"`
	EndsAt       string         `json:"endsAt"`
	GeneratorURL string         `json:"generatorURL"`
	Status       AlertStatus    `json:"status"`
}

// AlertStatus describes an alert's state together with the silences and
// alerts responsible for suppressing it.
type AlertStatus struct {
	State       AlertState `json:"state"`
	SilencedBy  []string   `json:"silencedBy"`
	InhibitedBy []string   `json:"inhibitedBy"`
}

// Silence is a silence as returned by GET /api/v2/silences.
type Silence struct {
	ID        string        `json:"id"`
	Status    SilenceStatus `json:"status"`
	Matchers  []Matcher     `json:"matchers"`
	StartsAt  string        `json:"startsAt"`
	EndsAt    string        `json:"endsAt"`
	CreatedBy string        `json:"createdBy"`
	Comment   string        `json:"comment"`
}

// SilenceStatus holds the lifecycle state of a silence.
type SilenceStatus struct {
	State SilenceState `json:"state"`
}

// Matcher selects alerts by label. The isRegex field is always serialized,
// even when false, as the v2 API requires it to be present.
type Matcher struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	IsRegex bool   `json:"isRegex"`
}

// PostableSilence is the request body for POST /api/v2/silences.
type PostableSilence struct {
	Matchers  []Matcher `json:"matchers"`
	StartsAt  string    `json:"startsAt"`
	EndsAt    string    `json:"endsAt"`
	CreatedBy string    `json:"createdBy"`
	Comment   string    `json:"comment"`
}

// AlertFilter restricts which alerts GET /api/v2/alerts returns.
type AlertFilter struct {
	// Filter holds label matcher expressions such as
	// `alertname="HighLatency"`, passed through verbatim.
	Filter string
	// Active selects alerts that are firing.
	Active bool
	// Silenced selects alerts suppressed by a silence.
	Silenced bool
	// Inhibited selects alerts suppressed by an inhibition rule.
	Inhibited bool
}

// Values encodes the filter as query parameters. Alertmanager treats every
// absent boolean parameter as true, so each one is sent only when it
// deviates from that default: silenced and inhibited when requested,
// active only when switched off. AlertFilter{Active: true} therefore
// encodes to an empty query, which asks for every alert regardless of
// state.
func (f AlertFilter) Values() url.Values {
	v := url.Values{}
	if f.Filter != "" {
		v.Set("filter", f.Filter)
	}
	if f.Silenced {
		v.Set("silenced", strconv.FormatBool(true))
	}
	if f.Inhibited {
		v.Set("inhibited", strconv.FormatBool(true))
	}
	if !f.Active {
		v.Set("active", strconv.FormatBool(false))
	}
	return v
}
