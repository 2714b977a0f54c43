package record

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/dlfindex/internal/domain/mets"
	"github.com/kailas-cloud/dlfindex/internal/domain/record"
)

// tagSeparator splits multi-valued TAG fields; it must match the core schema.
const tagSeparator = "|"

// hitFields are the hash fields a search loads per hit. The "text" aggregate only feeds
// full-text matching.
var hitFields = []string{
	"id", "uid", "pid", "toplevel", "type", "title", "owner", "collection", "collections",
	"location", "logical_id", "page", "files", "meta", "generation",
}

// buildHashFields converts a record into a flat map[string]string for HSET.
// Multi-valued fields are stored twice: as a JSON array preserving order and as a TAG.
func buildHashFields(rec *record.Record) (map[string]string, error) {
	collections, err := json.Marshal(nonNil(rec.Collections))
	if err != nil {
		return nil, fmt.Errorf("marshal collections: %w", err)
	}
	files, err := json.Marshal(rec.Files)
	if err != nil {
		return nil, fmt.Errorf("marshal files: %w", err)
	}
	meta, err := json.Marshal(rec.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	return map[string]string{
		"id":          rec.ID,
		"uid":         strconv.FormatInt(rec.UID, 10),
		"pid":         strconv.FormatInt(rec.Pid, 10),
		"toplevel":    strconv.FormatBool(rec.Toplevel),
		"type":        rec.Type,
		"title":       rec.Title,
		"owner":       rec.Owner,
		"collection":  joinTags(rec.Collections),
		"collections": string(collections),
		"location":    rec.Location,
		"logical_id":  rec.LogicalID,
		"page":        strconv.Itoa(rec.Page),
		"files":       string(files),
		"meta":        string(meta),
		"text":        fullText(rec.Metadata),
		"generation":  strconv.FormatInt(rec.Generation, 10),
	}, nil
}

// parseHashFields converts a flat hash map back into a hit. Malformed values decode to zero values.
func parseHashFields(key string, m map[string]string) record.Hit {
	hit := record.Hit{Key: key}
	hit.ID = m["id"]
	hit.UID, _ = strconv.ParseInt(m["uid"], 10, 64)
	hit.Pid, _ = strconv.ParseInt(m["pid"], 10, 64)
	hit.Toplevel = m["toplevel"] == "true"
	hit.Type = m["type"]
	hit.Title = m["title"]
	hit.Owner = m["owner"]
	hit.Location = m["location"]
	hit.LogicalID = m["logical_id"]
	hit.Page, _ = strconv.Atoi(m["page"])
	hit.Generation, _ = strconv.ParseInt(m["generation"], 10, 64)

	if v := m["collections"]; v != "" {
		_ = json.Unmarshal([]byte(v), &hit.Collections)
	} else if v := m["collection"]; v != "" {
		hit.Collections = strings.Split(v, tagSeparator)
	}
	if v := m["files"]; v != "" {
		_ = json.Unmarshal([]byte(v), &hit.Files)
	}
	if v := m["meta"]; v != "" {
		var md mets.Metadata
		if err := json.Unmarshal([]byte(v), &md); err == nil {
			hit.Metadata = md
		}
	}
	return hit
}

func joinTags(values []string) string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(strings.ReplaceAll(v, tagSeparator, " "))
		if v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return strings.Join(cleaned, tagSeparator)
}

func fullText(md mets.Metadata) string {
	var b strings.Builder
	for _, f := range md {
		for _, v := range f.Values {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(v)
		}
	}
	return b.String()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
