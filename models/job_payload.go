// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownJobType is returned when a payload is decoded for a job type this
// build does not know about.
var ErrUnknownJobType = errors.New("unknown job type")

// JobPayload is the typed payload attached to a Job. Each job kind carries
// its own payload struct with explicit fields; the payload is stored as JSON
// in the jobs table and decoded back by DecodeJobPayload based on the job
// type tag.
type JobPayload interface {
	// EntityID returns the identifier of the entity the mutation targets.
	// It is used to match push conflicts back to their originating job.
	EntityID() string
}

// BookmarkPayload carries a bookmark create/update/delete.
type BookmarkPayload struct {
	BookmarkID string `json:"bookmark_id"`
	DocumentID string `json:"document_id,omitempty"`
	PageNumber int    `json:"page_number,omitempty"`
	Note       string `json:"note,omitempty"`
}

func (p BookmarkPayload) EntityID() string { return p.BookmarkID }

// CommentPayload carries a comment create/update/delete.
type CommentPayload struct {
	CommentID  string `json:"comment_id"`
	DocumentID string `json:"document_id,omitempty"`
	PageNumber int    `json:"page_number,omitempty"`
	Content    string `json:"content,omitempty"`
}

func (p CommentPayload) EntityID() string { return p.CommentID }

// ReadingProgressPayload carries a reading-progress update. Progress is a
// fraction in [0,1] of the document read so far.
type ReadingProgressPayload struct {
	DocumentID  string  `json:"document_id"`
	LastPage    int     `json:"last_page"`
	Progress    float64 `json:"progress"`
	DeviceLabel string  `json:"device_label,omitempty"`
}

func (p ReadingProgressPayload) EntityID() string { return p.DocumentID }

// TagPayload carries a tag create/update/delete.
type TagPayload struct {
	TagID string `json:"tag_id"`
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
}

func (p TagPayload) EntityID() string { return p.TagID }

// DocumentTagPayload carries a document-tag link add/remove. The link id is
// the composite "documentID:tagID".
type DocumentTagPayload struct {
	DocumentID string `json:"document_id"`
	TagID      string `json:"tag_id"`
}

func (p DocumentTagPayload) EntityID() string { return p.DocumentID + ":" + p.TagID }

// SharePayload carries a share create/delete.
type SharePayload struct {
	ShareID    string `json:"share_id"`
	DocumentID string `json:"document_id,omitempty"`
	Subject    string `json:"subject,omitempty"`
	Permission string `json:"permission,omitempty"`
}

func (p SharePayload) EntityID() string { return p.ShareID }

// ScanLibraryPayload requests a server-side rescan of a library root.
type ScanLibraryPayload struct {
	LibraryID string `json:"library_id"`
}

func (p ScanLibraryPayload) EntityID() string { return p.LibraryID }

// EncodeJobPayload serialises a payload for storage.
func EncodeJobPayload(p JobPayload) ([]byte, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode job payload: %w", err)
	}
	return raw, nil
}

// DecodeJobPayload deserialises raw into the payload struct matching the job
// type. Returns ErrUnknownJobType (wrapped) for job types without a payload
// mapping.
func DecodeJobPayload(t JobType, raw []byte) (JobPayload, error) {
	var (
		p   JobPayload
		err error
	)

	switch t {
	case JobCreateBookmark, JobUpdateBookmark, JobDeleteBookmark:
		var v BookmarkPayload
		err = json.Unmarshal(raw, &v)
		p = v
	case JobCreateComment, JobUpdateComment, JobDeleteComment:
		var v CommentPayload
		err = json.Unmarshal(raw, &v)
		p = v
	case JobUpdateReadingProgress:
		var v ReadingProgressPayload
		err = json.Unmarshal(raw, &v)
		p = v
	case JobCreateTag, JobUpdateTag, JobDeleteTag:
		var v TagPayload
		err = json.Unmarshal(raw, &v)
		p = v
	case JobAddDocumentTag, JobRemoveDocumentTag:
		var v DocumentTagPayload
		err = json.Unmarshal(raw, &v)
		p = v
	case JobCreateShare, JobDeleteShare:
		var v SharePayload
		err = json.Unmarshal(raw, &v)
		p = v
	case JobScanLibrary:
		var v ScanLibraryPayload
		err = json.Unmarshal(raw, &v)
		p = v
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownJobType, t)
	}

	if err != nil {
		return nil, fmt.Errorf("decode %q payload: %w", t, err)
	}
	return p, nil
}

// ChangeData renders a payload as the generic key-value data map carried by a
// SyncChange on the wire.
func ChangeData(p JobPayload) (map[string]any, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	data := make(map[string]any)
	if err = json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal payload into map: %w", err)
	}
	return data, nil
}
