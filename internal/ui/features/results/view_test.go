package results

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pingerdash/internal/dataset"
	"github.com/leapstack-labs/pingerdash/internal/device"
	"github.com/leapstack-labs/pingerdash/internal/speedtest"
	"github.com/leapstack-labs/pingerdash/internal/ui/features"
)

func TestSignalKey(t *testing.T) {
	tests := []struct {
		column string
		want   string
	}{
		{"AVG_PING", "AVG_PING"},
		{"avg_ping2", "avg_ping2"},
		{"avg.ping", "x_6176672e70696e67"},
		{"avg-ping", "x_6176672d70696e67"},
		{"avg ping", "x_6176672070696e67"},
		{"_hidden", "x_5f68696464656e"},
		{"x_1", "x_785f31"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SignalKey(tt.column), tt.column)
	}
}

func TestBuildView_ColumnNamesNeedingEscape(t *testing.T) {
	ds := dataset.MustNew(
		dataset.Float("avg.ping", 5, 12, 20, 35, 50),
		dataset.Text("host name", "a", "b", "a", "b", "a"),
	)
	id := device.MustParse(features.DemoDevice)
	pingKey, hostKey := SignalKey("avg.ping"), SignalKey("host name")

	var sig LookupSignals
	require.NoError(t, json.Unmarshal([]byte(`{"filters":{"enabled":true,"columns":["avg.ping","host name"],`+
		`"values":{"`+pingKey+`":{"kind":"numeric","min":10,"max":40},`+
		`"`+hostKey+`":{"kind":"categorical","categories":["a"]}}}}`), &sig))

	view := buildView(sig, id, ds, speedtest.DefaultQuery(), 3)
	assert.Equal(t, 5, view.Total)
	assert.Equal(t, 1, view.Shown, "only 20 is in range and hosted on a")

	require.Len(t, view.Widgets, 2)
	assert.Equal(t, "filters.values."+pingKey, view.Widgets[0].Path)
	assert.Equal(t, pingKey, view.Widgets[0].Key)
	assert.Equal(t, "avg.ping", view.Widgets[0].Column)

	var signals struct {
		Filters struct {
			Values map[string]WidgetSignals `json:"values"`
		} `json:"filters"`
	}
	require.NoError(t, json.Unmarshal([]byte(view.Signals), &signals))
	assert.Contains(t, signals.Filters.Values, pingKey)
	assert.Contains(t, signals.Filters.Values, hostKey)
	assert.NotContains(t, signals.Filters.Values, "avg.ping")
}
