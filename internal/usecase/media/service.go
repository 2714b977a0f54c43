// Package media resolves the playable or viewable file of a single page.
package media

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dlfindex/internal/domain"
	"github.com/kailas-cloud/dlfindex/internal/domain/mets"
)

// DefaultGroups is used when neither the request nor the configuration names groups.
var DefaultGroups = []string{"AUDIO", "DEFAULT"}

// Item is the file chosen for a page.
type Item struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type,omitempty"`
	Label    string `json:"label,omitempty"`
	Group    string `json:"group"`
	Page     int    `json:"page"`
	PageID   string `json:"page_id"`
}

// Service resolves media items.
type Service struct {
	docs   DocumentReader
	loader DocumentLoader
	groups []string
	logger *zap.Logger
}

// New creates a media service. Empty groups fall back to DefaultGroups.
func New(docs DocumentReader, loader DocumentLoader, groups []string, logger *zap.Logger) *Service {
	if len(groups) == 0 {
		groups = DefaultGroups
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		docs:   docs,
		loader: loader,
		groups: append([]string(nil), groups...),
		logger: logger,
	}
}

// Resolve returns the file of the first group in groups that the referenced page has.
// rawPage is a 1-based index or a physical identifier; "" selects the first page.
func (s *Service) Resolve(ctx context.Context, uid int64, rawPage string, groups []string) (Item, error) {
	groups = cleanGroups(groups)
	if len(groups) == 0 {
		groups = s.groups
	}

	row, err := s.docs.FindByPrimaryKey(ctx, uid)
	if err != nil {
		return Item{}, fmt.Errorf("find document %d: %w", uid, err)
	}
	if row == nil {
		return Item{}, fmt.Errorf("document %d: %w", uid, domain.ErrNotFound)
	}

	doc, err := s.loader.Parse(ctx, row.Location, row.Format)
	if err != nil {
		return Item{}, fmt.Errorf("load document %d: %w", uid, err)
	}
	if doc.NumPages() < 1 {
		return Item{}, fmt.Errorf("document %d has no pages: %w", uid, domain.ErrNoMedia)
	}

	page, err := mets.ParsePageRef(strings.TrimSpace(rawPage)).Resolve(doc)
	if err != nil {
		return Item{}, fmt.Errorf("document %d: %w", uid, err)
	}
	pageID, _ := doc.PageID(page)

	file, group, ok := doc.FirstFile(pageID, groups)
	if !ok {
		s.logger.Debug("no media for page",
			zap.Int64("uid", uid),
			zap.String("page", pageID),
			zap.Strings("groups", groups),
		)
		return Item{}, fmt.Errorf("document %d page %s: %w", uid, pageID, domain.ErrNoMedia)
	}

	item := Item{
		URL:      file.Location,
		MimeType: file.MimeType,
		Group:    group,
		Page:     page,
		PageID:   pageID,
	}
	if u, ok := doc.PhysicalUnit(pageID); ok {
		item.Label = u.OrderLabel
		if item.Label == "" {
			item.Label = u.Label
		}
	}
	return item, nil
}

func cleanGroups(groups []string) []string {
	var out []string
	for _, g := range groups {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}
