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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/common/model"
	"github.com/stretchr/testify/require"
)

const alertsFixture = `[
  {
    "fingerprint": "a1b2c3d4e5f60718",
    "labels": {"alertname": "HighLatency", "severity": "critical", "instance": "web-1"},
    "annotations": {"summary": "p99 latency above 2s", "description": "The p99 latency of web-1 has been above 2s for 10 minutes."},
    "startsAt": "2025-08-20T10:00:00.000Z",
    "endsAt": "2025-08-20T13:00:00.000Z",
    "generatorURL": "http://prometheus:9090/graph?g0.expr=latency",
    "status": {"state": "active", "silencedBy": [], "inhibitedBy": []}
  },
  {
    "fingerprint": "ffee00112233aabb",
    "labels": {"alertname": "DiskFull", "instance": "db-1"},
    "annotations": {},
    "startsAt": "2025-08-19T22:30:00.000Z",
    "endsAt": "0001-01-01T00:00:00.000Z",
    "generatorURL": "http://prometheus:9090/graph?g0.expr=disk",
    "status": {"state": "suppressed", "silencedBy": ["sil-1"], "inhibitedBy": []}
  }
]`

const silencesFixture = `[
  {
    "id": "3f8cbd6e-7a20-4a3e-b9d5-5f5c60f0a1c2",
    "status": {"state": "active"},
    "matchers": [{"name": "alertname", "value": "HighLatency", "isRegex": false}],
    "startsAt": "2025-08-20T10:00:00.000Z",
    "endsAt": "2025-08-20T14:00:00.000Z",
    "createdBy": "oncall",
    "comment": "deploy in progress"
  }
]`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Config{URL: srv.URL})
	require.NoError(t, err)
	return c
}

func TestNewRequiresURL(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestAlertFilterValues(t *testing.T) {
	for _, tc := range []struct {
		name     string
		filter   AlertFilter
		expected url.Values
	}{
		{
			name:     "active only is the upstream default",
			filter:   AlertFilter{Active: true},
			expected: url.Values{},
		},
		{
			name:     "filter expression",
			filter:   AlertFilter{Filter: `alertname="HighLatency"`, Active: true},
			expected: url.Values{"filter": []string{`alertname="HighLatency"`}},
		},
		{
			name:     "silenced and inhibited sent only when requested",
			filter:   AlertFilter{Active: true, Silenced: true, Inhibited: true},
			expected: url.Values{"silenced": []string{"true"}, "inhibited": []string{"true"}},
		},
		{
			name:     "active sent only when switched off",
			filter:   AlertFilter{Silenced: true},
			expected: url.Values{"silenced": []string{"true"}, "active": []string{"false"}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.filter.Values())
		})
	}
}

func TestListAlerts(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(alertsFixture))
	})

	alerts, err := c.ListAlerts(context.Background(), AlertFilter{
		Filter:   `severity="critical"`,
		Active:   true,
		Silenced: true,
	})
	require.NoError(t, err)
	require.Equal(t, "/api/v2/alerts", gotPath)
	require.Equal(t, `severity="critical"`, gotQuery.Get("filter"))
	require.Equal(t, "true", gotQuery.Get("silenced"))
	require.False(t, gotQuery.Has("active"))
	require.False(t, gotQuery.Has("inhibited"))

	require.Len(t, alerts, 2)
	require.Equal(t, "a1b2c3d4e5f60718", alerts[0].Fingerprint)
	require.Equal(t, model.LabelValue("HighLatency"), alerts[0].Labels[model.AlertNameLabel])
	require.Equal(t, "2025-08-20T10:00:00.000Z", alerts[0].StartsAt)
	require.Equal(t, AlertStateActive, alerts[0].Status.State)
	require.Empty(t, alerts[0].Status.SilencedBy)
	require.Equal(t, AlertStateSuppressed, alerts[1].Status.State)
	require.Equal(t, []string{"sil-1"}, alerts[1].Status.SilencedBy)
}

func TestListAlertsAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "something exploded", http.StatusInternalServerError)
	})

	_, err := c.ListAlerts(context.Background(), AlertFilter{Active: true})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusInternalServerError, apiErr.Code)
	require.Contains(t, err.Error(), "500")
	require.Contains(t, err.Error(), "something exploded")
}

func TestListAlertsInvalidJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"this is": "not a list"`))
	})

	_, err := c.ListAlerts(context.Background(), AlertFilter{Active: true})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid alerts response")
}

func TestClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{URL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	start := time.Now()
	_, err = c.ListAlerts(context.Background(), AlertFilter{Active: true})
	require.Error(t, err)
	require.Contains(t, err.Error(), "request timed out after 50ms")
	require.Less(t, time.Since(start), time.Second)
}

func TestListAlertGroups(t *testing.T) {
	groups := `[{"labels":{"severity":"critical"},"receiver":{"name":"pager"},"alerts":[]}]`
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(groups))
	})

	raw, err := c.ListAlertGroups(context.Background(), AlertFilter{Active: true})
	require.NoError(t, err)
	require.Equal(t, "/api/v2/alerts/groups", gotPath)
	require.JSONEq(t, groups, string(raw))
}

func TestListAlertGroupsInvalidJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"labels":`))
	})

	_, err := c.ListAlertGroups(context.Background(), AlertFilter{Active: true})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid alert groups response")
}

func TestListSilences(t *testing.T) {
	var gotQuery url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(silencesFixture))
	})

	silences, err := c.ListSilences(context.Background(), "")
	require.NoError(t, err)
	require.False(t, gotQuery.Has("filter"))
	require.Len(t, silences, 1)
	require.Equal(t, "3f8cbd6e-7a20-4a3e-b9d5-5f5c60f0a1c2", silences[0].ID)
	require.Equal(t, SilenceStateActive, silences[0].Status.State)
	require.Equal(t, "oncall", silences[0].CreatedBy)

	_, err = c.ListSilences(context.Background(), `alertname="HighLatency"`)
	require.NoError(t, err)
	require.Equal(t, `alertname="HighLatency"`, gotQuery.Get("filter"))
}

func TestCreateSilence(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"silenceID":"55a513e0-87d7-4bd6-a450-f1b5e6f2e052"}`))
	})

	id, err := c.CreateSilence(context.Background(), &PostableSilence{
		Matchers:  []Matcher{{Name: "alertname", Value: "HighLatency"}},
		StartsAt:  "2025-08-20T10:00:00.000Z",
		EndsAt:    "2025-08-20T14:00:00.000Z",
		CreatedBy: "oncall",
		Comment:   "deploy in progress",
	})
	require.NoError(t, err)
	require.Equal(t, "55a513e0-87d7-4bd6-a450-f1b5e6f2e052", id)
	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/api/v2/silences", gotPath)
	require.Equal(t, "application/json", gotContentType)

	matchers, ok := gotBody["matchers"].([]any)
	require.True(t, ok)
	require.Len(t, matchers, 1)
	m, ok := matchers[0].(map[string]any)
	require.True(t, ok)
	// isRegex must be on the wire even when false.
	v, ok := m["isRegex"]
	require.True(t, ok)
	require.Equal(t, false, v)
	require.Equal(t, "2025-08-20T10:00:00.000Z", gotBody["startsAt"])
}

func TestDeleteSilence(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
	})

	err := c.DeleteSilence(context.Background(), "3f8cbd6e-7a20-4a3e-b9d5-5f5c60f0a1c2")
	require.NoError(t, err)
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/api/v2/silence/3f8cbd6e-7a20-4a3e-b9d5-5f5c60f0a1c2", gotPath)
}

func TestDeleteSilenceNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "silence not found", http.StatusNotFound)
	})

	err := c.DeleteSilence(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Code)
	require.Contains(t, err.Error(), "404")
}

func TestPathPrefix(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{URL: srv.URL + "/alertmanager"})
	require.NoError(t, err)

	_, err = c.ListAlerts(context.Background(), AlertFilter{Active: true})
	require.NoError(t, err)
	require.Equal(t, "/alertmanager/api/v2/alerts", gotPath)
}

func TestTruncate(t *testing.T) {
	for _, tc := range []struct {
		in       string
		n        int
		expected string
	}{
		{"", 5, ""},
		{"abcde", 5, "abcde"},
		{"abcdef", 5, "ab..."},
		{"abcdef", 3, "abc"},
	} {
		require.Equal(t, tc.expected, truncate(tc.in, tc.n), "truncate(%q, %d)", tc.in, tc.n)
	}
}
