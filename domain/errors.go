package domain

import (
	"errors"
	"fmt"
)

// ErrSegmentationEmpty means the script held no usable dialogue, even after the sentence fallback.
var ErrSegmentationEmpty = errors.New("no content: script produced no dialogue segments")

// ErrStageAborted marks units that were never started because a sibling failed first.
var ErrStageAborted = errors.New("stage aborted before unit started")

// StageFailure is a unit failure inside a bounded stage.
type StageFailure struct {
	Stage StageName
	Index int
	Cause error
}

func (e *StageFailure) Error() string {
	return fmt.Sprintf("%s failed for segment %d: %v", e.Stage, e.Index+1, e.Cause)
}

func (e *StageFailure) Unwrap() error {
	return e.Cause
}

type PollTimeoutError struct {
	Index      int
	ExternalID string
	Attempts   int
}

func (e *PollTimeoutError) Error() string {
	return fmt.Sprintf("video generation for segment %d timed out after %d attempts (job %s)", e.Index+1, e.Attempts, e.ExternalID)
}

type VideoJobFailedError struct {
	Index      int
	ExternalID string
	Detail     string
}

func (e *VideoJobFailedError) Error() string {
	return fmt.Sprintf("video generation for segment %d failed (job %s): %s", e.Index+1, e.ExternalID, e.Detail)
}

type MergeFailure struct {
	Kind  PodcastKind
	Cause error
}

func (e *MergeFailure) Error() string {
	return fmt.Sprintf("merge %s segments: %v", e.Kind, e.Cause)
}

func (e *MergeFailure) Unwrap() error {
	return e.Cause
}

type UploadFailure struct {
	Key   string
	Cause error
}

func (e *UploadFailure) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Key, e.Cause)
}

func (e *UploadFailure) Unwrap() error {
	return e.Cause
}

type ScriptFailure struct {
	Cause error
}

func (e *ScriptFailure) Error() string {
	return fmt.Sprintf("generate script: %v", e.Cause)
}

func (e *ScriptFailure) Unwrap() error {
	return e.Cause
}

// CleanupWarning is logged when a temporary artifact could not be removed. It never reaches
// the caller.
type CleanupWarning struct {
	Path  string
	Cause error
}

func (w CleanupWarning) Error() string {
	return fmt.Sprintf("cleanup %s: %v", w.Path, w.Cause)
}
