// Package progress reports environment acquisition progress.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/envcache/internal/core/ports"
	"go.trai.ch/envcache/internal/ui/output"
	"go.trai.ch/envcache/internal/ui/style"
)

// Console writes a summary line per phase, followed by the changed distributions.
type Console struct {
	mu  sync.Mutex
	out *termenv.Output
}

var _ ports.Reporter = (*Console)(nil)

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{out: output.New(w)}
}

// OnResolveComplete implements ports.ResolveLogger.
func (c *Console) OnResolveComplete(count int, elapsed time.Duration) {
	c.summary("Resolved", count, elapsed)
}

// OnAudit implements ports.InstallLogger.
func (c *Console) OnAudit(count int, elapsed time.Duration) {
	c.summary("Audited", count, elapsed)
}

// OnUninstall implements ports.InstallLogger.
func (c *Console) OnUninstall(removed []domain.InstalledDistribution, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.write(summaryLine("Uninstalled", len(removed), elapsed))
	for _, d := range removed {
		line := c.out.String(" " + style.Minus + " " + d.Name.String() + "==" + d.Version).
			Foreground(termenv.RGBColor(string(style.Red)))
		c.write(line.String())
	}
}

// OnInstall implements ports.InstallLogger.
func (c *Console) OnInstall(installed []domain.Distribution, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.write(summaryLine("Installed", len(installed), elapsed))
	for _, d := range installed {
		line := c.out.String(" " + style.Plus + " " + d.String()).
			Foreground(termenv.RGBColor(string(style.Green)))
		c.write(line.String())
	}
}

func (c *Console) summary(verb string, count int, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.write(summaryLine(verb, count, elapsed))
}

func (c *Console) write(line string) {
	_, _ = c.out.WriteString(line + "\n")
}

func summaryLine(verb string, count int, elapsed time.Duration) string {
	noun := "packages"
	if count == 1 {
		noun = "package"
	}
	return fmt.Sprintf("%s %d %s in %s", verb, count, noun, FormatElapsed(elapsed))
}

// FormatElapsed renders sub-second durations in milliseconds and longer ones in seconds.
func FormatElapsed(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
