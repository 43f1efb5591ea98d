package format

import (
	"fmt"
	"io"

	"github.com/cristianoliveira/leadnexus/internal/colors"
	"github.com/cristianoliveira/leadnexus/internal/notification"
)

var kindColors = map[notification.Kind]string{
	notification.KindSuccess: colors.Green,
	notification.KindError:   colors.Red,
	notification.KindInfo:    colors.Blue,
	notification.KindWarning: colors.Yellow,
}

// NotificationLine renders a notification on a single line without color.
func NotificationLine(n notification.Notification) string {
	line := fmt.Sprintf("[%s] %s", n.Kind, n.Title)
	if n.Message != "" {
		line += " - " + n.Message
	}
	if n.Action != nil && n.Action.Label != "" {
		line += " (" + n.Action.Label + ")"
	}
	return line
}

// FormatNotifications writes notifications oldest first, colored by kind.
func FormatNotifications(writer io.Writer, notifications []notification.Notification) error {
	for _, n := range notifications {
		if _, err := fmt.Fprintf(writer, "%s%s%s\n", kindColors[n.Kind], NotificationLine(n), colors.Reset); err != nil {
			return err
		}
	}
	return nil
}
