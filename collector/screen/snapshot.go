package screen

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robzale/sentcollect/collector/definitions"
)

// UIDumper produces a textual dump of the current UI tree.
type UIDumper interface {
	DumpUI(ctx context.Context) (string, error)
}

const (
	dumpAttempts = 3
	dumpPace     = time.Second
)

// Grabber acquires UI snapshots. The dump mechanism intermittently fails to
// produce a parseable tree, so each grab retries a few times before giving
// up and handing back an empty snapshot. Grab never returns an error; a
// failed acquisition is an absorbed fault, not a run fault.
type Grabber struct {
	device UIDumper
}

func NewGrabber(device UIDumper) *Grabber {
	return &Grabber{device: device}
}

func (g *Grabber) Grab(ctx context.Context) definitions.Snapshot {
	for attempt := 1; attempt <= dumpAttempts; attempt++ {
		content, err := g.device.DumpUI(ctx)
		if err == nil && len(content) > 0 {
			return definitions.Snapshot{Content: content, Timestamp: time.Now()}
		}
		log.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", dumpAttempts).
			Msg("[Grab] ui dump failed")
		if attempt < dumpAttempts {
			time.Sleep(dumpPace)
		}
	}
	return definitions.Snapshot{Timestamp: time.Now()}
}
