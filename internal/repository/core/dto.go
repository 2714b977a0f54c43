package core

import (
	"fmt"
	"strconv"

	domcore "github.com/kailas-cloud/dlfindex/internal/domain/core"
)

const (
	fieldName      = "name"
	fieldIndex     = "index"
	fieldCreatedAt = "created_at"
)

func infoToHash(info domcore.Info) map[string]string {
	return map[string]string{
		fieldName:      info.Name,
		fieldIndex:     info.Index,
		fieldCreatedAt: strconv.FormatInt(info.CreatedAt, 10),
	}
}

func infoFromHash(m map[string]string) (domcore.Info, error) {
	createdAt, err := strconv.ParseInt(m[fieldCreatedAt], 10, 64)
	if err != nil {
		return domcore.Info{}, fmt.Errorf("parse created_at %q: %w", m[fieldCreatedAt], err)
	}
	return domcore.Info{
		Name:      m[fieldName],
		Index:     m[fieldIndex],
		CreatedAt: createdAt,
	}, nil
}
