package release

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned by prompt providers when the operator cancels.
var ErrCancelled = errors.New("cancelled")

// Kind classifies a release failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindUncommittedChanges
	KindRemoteChanges
	KindLocalTagExists
	KindRemoteTagExists
	KindInvalidVersionArgument
	KindQualityGateFailure
	KindPublishFailure
	KindPromptCancelled
	KindCommitHistoryUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindUncommittedChanges:
		return "UncommittedChanges"
	case KindRemoteChanges:
		return "RemoteChanges"
	case KindLocalTagExists:
		return "LocalTagExists"
	case KindRemoteTagExists:
		return "RemoteTagExists"
	case KindInvalidVersionArgument:
		return "InvalidVersionArgument"
	case KindQualityGateFailure:
		return "QualityGateFailure"
	case KindPublishFailure:
		return "PublishFailure"
	case KindPromptCancelled:
		return "PromptCancelled"
	case KindCommitHistoryUnavailable:
		return "CommitHistoryUnavailable"
	default:
		return "Unknown"
	}
}

// Fatal reports whether a failure of this kind aborts the run.
func (k Kind) Fatal() bool {
	return k != KindCommitHistoryUnavailable
}

// Error is the single error type of the release taxonomy. Subject names
// what failed: a version for tag and version errors, a stage for gate
// failures, a registry for publish failures. Output carries the raw text
// of the collaborator that detected the failure.
type Error struct {
	Kind    Kind
	Subject string
	Output  string
	Err     error
}

// NewError builds a taxonomy error.
func NewError(kind Kind, subject, output string, err error) *Error {
	return &Error{Kind: kind, Subject: subject, Output: output, Err: err}
}

func (e *Error) Error() string {
	msg := e.message()
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) message() string {
	switch e.Kind {
	case KindUncommittedChanges:
		return "uncommitted changes"
	case KindRemoteChanges:
		return "unfetched changes in remote"
	case KindLocalTagExists:
		return fmt.Sprintf("local tag for %s already exists", e.Subject)
	case KindRemoteTagExists:
		return fmt.Sprintf("remote tag for %s already exists", e.Subject)
	case KindInvalidVersionArgument:
		return fmt.Sprintf("invalid version argument %q", e.Subject)
	case KindQualityGateFailure:
		return fmt.Sprintf("quality gate %s failed", e.Subject)
	case KindPublishFailure:
		return fmt.Sprintf("publishing to %s failed", e.Subject)
	case KindPromptCancelled:
		if e.Subject != "" {
			return fmt.Sprintf("%s prompt cancelled", e.Subject)
		}
		return "prompt cancelled"
	case KindCommitHistoryUnavailable:
		return "commit history unavailable"
	default:
		return "release failed"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the taxonomy kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given taxonomy kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// OutputOf returns the raw collaborator output attached to err, if any.
func OutputOf(err error) string {
	var re *Error
	if errors.As(err, &re) {
		return re.Output
	}
	return ""
}

// Cancelled maps a prompt error to KindPromptCancelled when the operator
// cancelled, and returns other errors unchanged.
func Cancelled(prompt string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrCancelled) {
		return NewError(KindPromptCancelled, prompt, "", err)
	}
	return err
}
