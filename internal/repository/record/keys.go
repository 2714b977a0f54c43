package record

import (
	"fmt"

	"github.com/kailas-cloud/dlfindex/internal/domain"
)

// Keys of one document share the {uid} hash tag so a transaction stays on one slot.

func recordKey(core string, uid int64, id string) string {
	return fmt.Sprintf("%s%s:rec:{%d}:%s", domain.KeyPrefix, core, uid, id)
}

func docSetKey(core string, uid int64) string {
	return fmt.Sprintf("%s%s:doc:{%d}:keys", domain.KeyPrefix, core, uid)
}

func generationKey(core string, uid int64) string {
	return fmt.Sprintf("%s%s:doc:{%d}:gen", domain.KeyPrefix, core, uid)
}

func indexName(core string) string {
	return fmt.Sprintf("%s%s:idx", domain.KeyPrefix, core)
}
