package certificates

import (
	"crypto/sha256"
	"encoding/base32"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current instant. Injected so identifier allocation and
// ledger timestamps stay controllable in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

const (
	idPrefix    = "CERT-"
	idSuffixLen = 12
)

// IDGenerator allocates certificate identifiers. The hashed material ties an
// identifier to its trainee/training inputs and allocation instant; the
// random nonce keeps identifiers non-guessable and collision-free across
// processes.
type IDGenerator struct {
	clock Clock
}

func NewIDGenerator(clock Clock) *IDGenerator {
	if clock == nil {
		clock = SystemClock()
	}
	return &IDGenerator{clock: clock}
}

// GenerateID returns a fresh identifier of the form CERT-<12 base32 chars>.
// It fails only when the entropy source does; that failure is fatal for the
// request and never retried here.
func (g *IDGenerator) GenerateID(traineeID, trainingID string) (string, error) {
	nonce, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("certificate id nonce: %w", err)
	}

	material := fmt.Sprintf("%s|%s|%d|%s", traineeID, trainingID, g.clock.Now().UnixNano(), nonce)
	sum := sha256.Sum256([]byte(material))
	suffix := base32.StdEncoding.EncodeToString(sum[:])[:idSuffixLen]

	return idPrefix + suffix, nil
}
