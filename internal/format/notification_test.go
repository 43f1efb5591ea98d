package format

import (
	"bytes"
	"testing"

	"github.com/cristianoliveira/leadnexus/internal/colors"
	"github.com/cristianoliveira/leadnexus/internal/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationLine(t *testing.T) {
	tests := []struct {
		name string
		n    notification.Notification
		want string
	}{
		{"title only", notification.Notification{Kind: notification.KindInfo, Title: "Saved"}, "[info] Saved"},
		{"with message", notification.Success("Exported", "12 leads"), "[success] Exported - 12 leads"},
		{
			"with action",
			notification.Notification{Kind: notification.KindError, Title: "Load failed", Action: &notification.Action{Label: "Retry"}},
			"[error] Load failed (Retry)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NotificationLine(tt.n))
		})
	}
}

func TestFormatNotifications(t *testing.T) {
	var buf bytes.Buffer
	err := FormatNotifications(&buf, []notification.Notification{
		notification.Warning("Slow source", ""),
		notification.Info("Alert", "3 matching leads"),
	})
	require.NoError(t, err)

	want := colors.Yellow + "[warning] Slow source" + colors.Reset + "\n" +
		colors.Blue + "[info] Alert - 3 matching leads" + colors.Reset + "\n"
	assert.Equal(t, want, buf.String())
}
