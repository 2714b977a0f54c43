package dlfindex

import (
	"context"
	"log/slog"
	"time"
)

// CoreInfo describes a search core.
type CoreInfo struct {
	Name      string
	Exists    bool
	CreatedAt time.Time // zero when unknown
}

// CreateCore creates a search core and returns its name. An empty name gets a generated one.
func (c *Client) CreateCore(ctx context.Context, name string) (_ string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("core.create", start, err, slog.String("core", name)) }()

	return c.coreSvc.CreateCore(ctx, name)
}

// GetCore reports whether name exists. A missing core is not an error.
func (c *Client) GetCore(ctx context.Context, name string) (_ CoreInfo, err error) {
	start := time.Now()
	defer func() { c.obs.observe("core.get", start, err, slog.String("core", name)) }()

	h, err := c.coreSvc.GetInstance(ctx, name)
	if err != nil {
		return CoreInfo{}, err
	}
	return CoreInfo{Name: name, Exists: h.Exists()}, nil
}

// ListCores returns every known core.
func (c *Client) ListCores(ctx context.Context) (_ []CoreInfo, err error) {
	start := time.Now()
	defer func() { c.obs.observe("core.list", start, err) }()

	infos, err := c.coreSvc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CoreInfo, 0, len(infos))
	for _, info := range infos {
		ci := CoreInfo{Name: info.Name, Exists: true}
		if info.CreatedAt > 0 {
			ci.CreatedAt = time.Unix(info.CreatedAt, 0).UTC()
		}
		out = append(out, ci)
	}
	return out, nil
}
