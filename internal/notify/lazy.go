package notify

import (
	"context"
	"sync"

	"github.com/genricoloni/mprisctl/internal/controlerr"
	"github.com/genricoloni/mprisctl/internal/domain"
)

// Lazy builds its notifier on the first notification, so commands that never
// notify do not depend on the backend being available
type Lazy struct {
	build func() (domain.Notifier, error)

	once     sync.Once
	notifier domain.Notifier
	err      error
}

// NewLazy creates a notifier that calls build once, when first needed
func NewLazy(build func() (domain.Notifier, error)) *Lazy {
	return &Lazy{build: build}
}

// Notify builds the backend if needed and forwards n to it
func (l *Lazy) Notify(ctx context.Context, n domain.Notification) error {
	l.once.Do(func() {
		l.notifier, l.err = l.build()
	})
	if l.err != nil {
		return controlerr.Notification(l.err)
	}
	return l.notifier.Notify(ctx, n)
}
