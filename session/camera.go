// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// FramePollInterval is the delay between frame dimension checks
const FramePollInterval = 150 * time.Millisecond

// Default capture size requested when no device is chosen
const (
	IdealWidth  = 1280
	IdealHeight = 720
)

var (
	ErrCameraUnsupported = errors.New("camera not supported on this device")
	ErrNoSurface         = errors.New("video surface not available")
	errSuperseded        = errors.New("camera request superseded")
)

// Constraints select a capture device
type Constraints struct {
	DeviceID    string // exact device; empty means any
	IdealWidth  int
	IdealHeight int
}

// DeviceInfo describes one video input
type DeviceInfo struct {
	ID    string
	Label string
}

// Stream is an acquired capture. Stop releases every track.
type Stream interface {
	Label() string
	Stop()
}

// MediaDevices acquires capture streams
type MediaDevices interface {
	GetUserMedia(ctx context.Context, c Constraints) (Stream, error)
	EnumerateCameras(ctx context.Context) ([]DeviceInfo, error)
}

// Surface displays a stream. Attach returns once the first frame can be
// decoded; Dimensions reports the current frame size.
type Surface interface {
	Attach(ctx context.Context, s Stream) error
	Dimensions() (width, height int)
}

// MediaError is a named device error such as NotAllowedError
type MediaError struct {
	Name    string
	Message string
}

func (e *MediaError) Error() string {
	if e.Message == "" {
		return e.Name
	}
	return e.Name + ": " + e.Message
}

// ClassifyCameraError maps a device error to the message shown to the user
func ClassifyCameraError(err error) string {
	const prefix = "Unable to access camera. "

	var me *MediaError
	if !errors.As(err, &me) {
		if err == nil || err.Error() == "" {
			return prefix + "Unknown error occurred."
		}
		return prefix + err.Error()
	}

	switch me.Name {
	case "NotAllowedError", "PermissionDeniedError":
		return prefix + "Permission denied. Please allow camera access in your browser settings."
	case "NotFoundError", "DevicesNotFoundError":
		return prefix + "No camera found. Please connect a camera."
	case "NotReadableError", "TrackStartError":
		return prefix + "Camera is already in use by another application."
	}
	if me.Message != "" {
		return prefix + me.Message
	}
	return prefix + "Unknown error occurred."
}

// Camera owns the active capture stream. A failed request leaves it
// inactive until Request is called again.
type Camera struct {
	mu           sync.Mutex
	devices      MediaDevices
	surface      Surface
	pollInterval time.Duration

	gen         int
	active      Stream
	cancelWatch context.CancelFunc
	ready       bool
	errMsg      string
	debug       string
	cameras     []DeviceInfo
}

// NewCamera builds a camera coordinator; nil devices means no camera support
func NewCamera(devices MediaDevices, surface Surface) *Camera {
	return &Camera{
		devices:      devices,
		surface:      surface,
		pollInterval: FramePollInterval,
	}
}

// Request releases any active stream and acquires a new one. Readiness
// flips asynchronously once the surface reports non-zero frame dimensions.
func (c *Camera) Request(ctx context.Context, deviceID string) error {
	c.mu.Lock()
	c.releaseLocked()
	c.gen++
	gen := c.gen
	c.errMsg = ""
	c.debug = "Requesting camera access..."
	c.mu.Unlock()

	if c.devices == nil {
		c.mu.Lock()
		c.errMsg = "Camera not supported on this device"
		c.mu.Unlock()
		return ErrCameraUnsupported
	}

	cons := Constraints{DeviceID: deviceID}
	if deviceID == "" {
		cons.IdealWidth, cons.IdealHeight = IdealWidth, IdealHeight
	}

	stream, err := c.devices.GetUserMedia(ctx, cons)
	if err != nil {
		return c.fail(ctx, gen, err)
	}

	if c.surface == nil {
		stream.Stop()
		c.mu.Lock()
		if c.gen == gen {
			c.errMsg = "Video surface not available"
		}
		c.mu.Unlock()
		return ErrNoSurface
	}
	if err := c.surface.Attach(ctx, stream); err != nil {
		stream.Stop()
		return c.fail(ctx, gen, err)
	}

	cameras, err := c.devices.EnumerateCameras(ctx)
	if err != nil {
		slog.Debug("camera enumeration failed", "error", err)
	}

	label := stream.Label()
	if label == "" {
		label = "Unknown camera"
	}

	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		stream.Stop()
		return errSuperseded
	}
	watchCtx, cancel := context.WithCancel(context.Background())
	c.active = stream
	c.cancelWatch = cancel
	if cameras != nil {
		c.cameras = cameras
	}
	c.debug = "Camera active: " + label
	c.mu.Unlock()

	go c.watchFrames(watchCtx, gen)
	return nil
}

// watchFrames polls frame dimensions until both are positive
func (c *Camera) watchFrames(ctx context.Context, gen int) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		w, h := c.surface.Dimensions()
		if w > 0 && h > 0 {
			c.mu.Lock()
			if c.gen == gen {
				c.ready = true
			}
			c.mu.Unlock()
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (c *Camera) fail(ctx context.Context, gen int, err error) error {
	msg := ClassifyCameraError(err)
	name := "Unknown"
	var me *MediaError
	if errors.As(err, &me) && me.Name != "" {
		name = me.Name
	}

	cameras, enumErr := c.devices.EnumerateCameras(ctx)
	if enumErr != nil {
		slog.Debug("camera enumeration failed", "error", enumErr)
	}

	c.mu.Lock()
	if c.gen == gen {
		c.ready = false
		c.errMsg = msg
		c.debug = "Error: " + name
		if cameras != nil {
			c.cameras = cameras
		}
	}
	c.mu.Unlock()

	slog.Warn("camera request failed", "error", err)
	return fmt.Errorf("camera: %w", err)
}

// Stop releases the active stream
func (c *Camera) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseLocked()
	c.gen++
}

func (c *Camera) releaseLocked() {
	if c.cancelWatch != nil {
		c.cancelWatch()
		c.cancelWatch = nil
	}
	if c.active != nil {
		c.active.Stop()
		c.active = nil
	}
	c.ready = false
}

// Ready is true only after a frame with non-zero dimensions was observed
func (c *Camera) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// Err is the user-facing error message, empty when none
func (c *Camera) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *Camera) Debug() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.debug
}

// Cameras lists the video inputs seen at the last request
func (c *Camera) Cameras() []DeviceInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]DeviceInfo, len(c.cameras))
	copy(out, c.cameras)
	return out
}
