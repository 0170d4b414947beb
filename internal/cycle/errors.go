// internal/cycle/errors.go
package cycle

import (
	"errors"
	"fmt"

	"github.com/tamzrod/sanitrax-ctrl/internal/decode"
	"github.com/tamzrod/sanitrax-ctrl/internal/lock"
	"github.com/tamzrod/sanitrax-ctrl/internal/poller"
	"github.com/tamzrod/sanitrax-ctrl/internal/registers"
	"github.com/tamzrod/sanitrax-ctrl/internal/settings"
	"github.com/tamzrod/sanitrax-ctrl/internal/writer/api"
)

// Kind classifies a cycle failure. Codes are stable: they become the process exit status.
type Kind uint16

const (
	KindUnknown            Kind = 1
	KindTransport          Kind = 2
	KindPersistenceMissing Kind = 3
	KindPersistenceCorrupt Kind = 4
	KindRemoteUnavailable  Kind = 5
	KindLookup             Kind = 6
	KindLock               Kind = 7
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindPersistenceMissing:
		return "persistence_missing"
	case KindPersistenceCorrupt:
		return "persistence_corrupt"
	case KindRemoteUnavailable:
		return "remote_unavailable"
	case KindLookup:
		return "lookup"
	case KindLock:
		return "lock"
	default:
		return "unknown"
	}
}

// Error is a classified cycle failure.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Code exposes the kind as a numeric code.
func (e *Error) Code() uint16 { return uint16(e.Kind) }

// Classify wraps err with the kind its sentinel implies.
// Already classified errors are returned unchanged.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return err
	}
	return &Error{Kind: KindOf(err), Op: op, Err: err}
}

// KindOf maps package sentinels onto the taxonomy.
func KindOf(err error) Kind {
	var ce *Error
	switch {
	case errors.As(err, &ce):
		return ce.Kind
	case errors.Is(err, poller.ErrShortRead):
		return KindTransport
	case errors.Is(err, settings.ErrNotFound):
		return KindPersistenceMissing
	case errors.Is(err, settings.ErrCorrupt):
		return KindPersistenceCorrupt
	case errors.Is(err, decode.ErrUnknownFaultCode), errors.Is(err, registers.ErrStateOutOfRange):
		return KindLookup
	case errors.Is(err, lock.ErrTimeout):
		return KindLock
	case errors.Is(err, api.ErrStatus):
		return KindRemoteUnavailable
	default:
		return KindUnknown
	}
}
