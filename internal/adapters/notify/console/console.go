package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"peds-aftercare/internal/ports/notify"

	"github.com/fatih/color"
)

// Notifier imprime cada recordatorio como un banner en la terminal.
type Notifier struct {
	mu  sync.Mutex
	out io.Writer

	banner *color.Color
	detail *color.Color
}

// New escribe en out (stdout si es nil). Los colores se apagan solos si out no es TTY.
func New(out io.Writer) *Notifier {
	if out == nil {
		out = os.Stdout
	}
	return &Notifier{
		out:    out,
		banner: color.New(color.FgHiYellow, color.Bold),
		detail: color.New(color.FgCyan),
	}
}

func (n *Notifier) Notify(ctx context.Context, msg notify.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, err := n.banner.Fprintf(n.out, "💊 Time to take %s!\n", msg.Medication); err != nil {
		return fmt.Errorf("console notify: %w", err)
	}

	line := fmt.Sprintf("   reminder #%d at %s", msg.FireCount, msg.FiredAt.Format("15:04:05"))
	switch {
	case msg.Final:
		line += " (last dose of this schedule)"
	case !msg.NextDue.IsZero():
		line += ", next at " + msg.NextDue.Format("15:04:05")
	}
	if _, err := n.detail.Fprintln(n.out, line); err != nil {
		return fmt.Errorf("console notify: %w", err)
	}
	return nil
}
