package main

import (
	"context"
	"log/slog"
	"sync"

	"github.com/skyguard-wallet/skyguard-go/pkg/device"
	"github.com/skyguard-wallet/skyguard-go/pkg/discovery"
	"github.com/skyguard-wallet/skyguard-go/pkg/version"
	"github.com/skyguard-wallet/skyguard-go/pkg/wire"
)

// identity is the part of the credential store that is advertised.
type identity interface {
	Label() string
	DeviceID() string
}

// announcer keeps the mDNS advertisement in step with the device label and
// ID, which change on ApplySettings and WipeDevice.
type announcer struct {
	adv    discovery.Advertiser
	id     identity
	port   uint16
	logger *slog.Logger

	mu   sync.Mutex
	ctx  context.Context
	last discovery.DeviceInfo
}

func newAnnouncer(adv discovery.Advertiser, id identity, port uint16, logger *slog.Logger) *announcer {
	return &announcer{adv: adv, id: id, port: port, logger: logger}
}

func (a *announcer) info() discovery.DeviceInfo {
	return discovery.DeviceInfo{
		Label:    a.id.Label(),
		DeviceID: a.id.DeviceID(),
		Protocol: version.Protocol,
		Port:     a.port,
	}
}

// Start registers the service.
func (a *announcer) Start(ctx context.Context) error {
	info := a.info()
	if err := a.adv.Advertise(ctx, &info); err != nil {
		return err
	}
	a.mu.Lock()
	a.ctx = ctx
	a.last = info
	a.mu.Unlock()
	return nil
}

// Refresh updates the TXT records if the identity changed. A new label
// renames the instance, so the service is registered again.
func (a *announcer) Refresh() {
	info := a.info()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ctx == nil || info == a.last {
		return
	}
	var err error
	if info.Label != a.last.Label {
		err = a.adv.Advertise(a.ctx, &info)
	} else {
		err = a.adv.Update(&info)
	}
	if err != nil {
		if a.logger != nil {
			a.logger.Warn("mDNS update failed", "error", err)
		}
		return
	}
	a.last = info
}

// Stop withdraws the advertisement.
func (a *announcer) Stop() {
	a.adv.Stop()
}

// Wrap returns a handler that refreshes the advertisement after each request.
func (a *announcer) Wrap(h device.Handler) device.Handler {
	return announcingHandler{next: h, a: a}
}

type announcingHandler struct {
	next device.Handler
	a    *announcer
}

func (h announcingHandler) Handle(ctx context.Context, msg wire.Message) error {
	err := h.next.Handle(ctx, msg)
	h.a.Refresh()
	return err
}
