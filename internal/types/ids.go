package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID builds a collision-resistant record identifier of the form
// "<prefix>-<unix millis>-<random suffix>".
func NewID(prefix string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), suffix)
}
