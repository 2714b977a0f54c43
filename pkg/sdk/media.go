package dlfindex

import (
	"context"
	"log/slog"
	"time"
)

// MediaItem is the file resolved for one page of a document.
type MediaItem struct {
	URL      string
	MimeType string
	Label    string
	Group    string
	Page     int
	PageID   string
}

// Media resolves the file of a page. Page accepts an order number, a physical
// page id or an empty string for the first page. Groups overrides the
// configured file group preference when non-empty.
func (c *Client) Media(ctx context.Context, uid int64, page string, groups []string) (_ MediaItem, err error) {
	start := time.Now()
	defer func() { c.obs.observe("media", start, err, slog.Int64("uid", uid), slog.String("page", page)) }()

	item, err := c.mediaSvc.Resolve(ctx, uid, page, groups)
	if err != nil {
		return MediaItem{}, err
	}
	return MediaItem{
		URL:      item.URL,
		MimeType: item.MimeType,
		Label:    item.Label,
		Group:    item.Group,
		Page:     item.Page,
		PageID:   item.PageID,
	}, nil
}
