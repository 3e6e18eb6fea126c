package lifx

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.yhsif.com/lifxlan"
	lifxlight "go.yhsif.com/lifxlan/light"

	"github.com/denwilliams/go-wakeuplight/internal/effect"
	"github.com/denwilliams/go-wakeuplight/internal/logging"
)

const (
	loadTimeout = 30 * time.Second
	pushTimeout = 5 * time.Second
	retryDelay  = 10 * time.Second
)

// Mirror shows the strip's mean color on a LIFX bulb. Render only records
// the newest color; Run pushes it to the bulb on its own goroutine.
type Mirror struct {
	id         string
	device     lifxlan.Device
	light      lifxlight.Device
	transition time.Duration

	pending chan effect.Color

	// owned by the render side
	last     effect.Color
	rendered bool

	// owned by Run
	mu    sync.Mutex
	power lifxlan.Power
	color *lifxlan.Color
}

// NewMirror addresses a bulb by host:port and MAC target, e.g.
// "10.0.0.5:56700" and "d0:73:d5:01:23:45".
func NewMirror(addr, target string, transition time.Duration) (*Mirror, error) {
	t, err := lifxlan.ParseTarget(target)
	if err != nil {
		return nil, fmt.Errorf("parse lifx target %q: %w", target, err)
	}
	return newMirror(target, lifxlan.NewDevice(addr, lifxlan.ServiceUDP, t), transition), nil
}

func newMirror(id string, device lifxlan.Device, transition time.Duration) *Mirror {
	return &Mirror{
		id:         id,
		device:     device,
		transition: transition,
		pending:    make(chan effect.Color, 1),
	}
}

func (m *Mirror) Render(f *effect.Frame) error {
	c := f.Average()
	if m.rendered && c == m.last {
		return nil
	}
	m.last, m.rendered = c, true

	select {
	case m.pending <- c:
		return nil
	default:
	}
	// Replace the color Run has not picked up yet.
	select {
	case <-m.pending:
	default:
	}
	select {
	case m.pending <- c:
	default:
	}
	return nil
}

// Run loads the bulb and pushes colors until ctx is done.
func (m *Mirror) Run(ctx context.Context) error {
	for {
		err := m.Load(ctx)
		if err == nil {
			break
		}
		logging.Warn("LIFX mirror %s unavailable, retrying: %s", m.id, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay):
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case c := <-m.pending:
			if err := m.push(ctx, c); err != nil {
				logging.Warn("Failed to mirror %s to %s: %s", c, m.id, err)
			}
		}
	}
}

// Load checks the device is a light and wraps it.
func (m *Mirror) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	logging.Debug("Loading %s", m.id)

	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	conn, err := m.device.Dial()
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	if err := m.device.GetHardwareVersion(ctx, conn); err != nil {
		return fmt.Errorf("get hardware version: %w", err)
	}

	lifxType, product := getType(m.device.HardwareVersion())
	if lifxType != Light {
		return fmt.Errorf("device type %d is not a light", lifxType)
	}
	if product != nil {
		logging.Debug("Loaded %s product=%s", m.id, product.ProductName)
	}

	l, err := lifxlight.Wrap(ctx, m.device, false)
	if err != nil {
		return fmt.Errorf("wrap light: %w", err)
	}
	m.light = l

	if power, err := m.device.GetPower(ctx, conn); err == nil {
		m.power = power
	}
	return nil
}

func (m *Mirror) push(ctx context.Context, c effect.Color) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, pushTimeout)
	defer cancel()

	conn, err := m.device.Dial()
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	if c == effect.Black {
		if m.power == lifxlan.PowerOff {
			return nil
		}
		if err := m.device.SetPower(ctx, conn, lifxlan.PowerOff, false); err != nil {
			return err
		}
		m.power = lifxlan.PowerOff
		mirrorUpdates.WithLabelValues(onOrOff(false)).Inc()
		return nil
	}

	color := toLifxColor(c)
	if !isSameColor(m.color, color) {
		if err := m.light.SetColor(ctx, conn, color, m.transition, false); err != nil {
			return err
		}
		m.color = color
	}

	if m.power != lifxlan.PowerOn {
		if err := m.device.SetPower(ctx, conn, lifxlan.PowerOn, false); err != nil {
			return err
		}
		m.power = lifxlan.PowerOn
	}
	mirrorUpdates.WithLabelValues(onOrOff(true)).Inc()
	return nil
}

func onOrOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
