package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/teamjokbo/jokbo/internal/model"
	"github.com/teamjokbo/jokbo/internal/realtime"
	"github.com/teamjokbo/jokbo/internal/repository"
	"github.com/teamjokbo/jokbo/internal/validation"
)

// EntryService owns the procurement-review log: list projection, create,
// and in-place edit. Mutations upload staged attachments first, then write
// the row, then notify realtime subscribers.
type EntryService struct {
	entryRepository repository.EntryRepository
	attachments     *AttachmentService
	hub             *realtime.Hub
	teamID          string
}

func NewEntryService(entryRepository repository.EntryRepository, attachments *AttachmentService, hub *realtime.Hub, teamID string) *EntryService {
	return &EntryService{
		entryRepository: entryRepository,
		attachments:     attachments,
		hub:             hub,
		teamID:          teamID,
	}
}

// List returns the team's entries newest first, filtered by the free-text
// query and item-type filter, plus signed URLs for every attachment key in
// the result. Keys that fail to sign are absent from the map.
func (s *EntryService) List(ctx context.Context, query, typeFilter string) ([]*model.Entry, map[string]string, error) {
	entries, err := s.entryRepository.ByTeam(ctx, s.teamID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load entries: %w", err)
	}

	filtered := model.FilterEntries(entries, query, typeFilter)

	var keys []string
	for _, e := range filtered {
		keys = append(keys, e.Attachments.Keys()...)
	}

	return filtered, s.attachments.SignedURLs(ctx, keys), nil
}

// Create validates the candidate record, uploads staged files, and inserts
// the row with the session identity as creator. Validation failure means no
// upload and no insert.
func (s *EntryService) Create(ctx context.Context, in validation.EntryInput, files []*multipart.FileHeader, createdBy string) (*model.Entry, map[string]string, error) {
	fieldErrs := validation.ValidateEntry(&in)
	if fieldErrs != nil {
		return nil, nil, fieldErrs
	}

	attachments, err := s.attachments.Upload(ctx, s.teamID, files)
	if err != nil {
		return nil, nil, err
	}

	entry := &model.Entry{
		TeamID:      s.teamID,
		Category:    in.Category,
		ItemType:    in.ItemType,
		ReviewText:  in.ReviewText,
		SharedAt:    optional(in.SharedAt),
		AuthorName:  optional(in.AuthorName),
		Note:        optional(in.Note),
		LinkURL:     optional(in.LinkURL),
		Attachments: attachments,
		CreatedBy:   createdBy,
	}

	err = s.entryRepository.Create(ctx, entry)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to insert entry: %w", err)
	}

	s.hub.PublishInsert(entry)

	return entry, s.attachments.SignedURLs(ctx, entry.Attachments.Keys()), nil
}

// Update edits an existing row in place. Freshly uploaded attachment
// metadata is appended to the entry's existing attachments; metadata already
// attached is never mutated or dropped.
func (s *EntryService) Update(ctx context.Context, id int64, in validation.EntryInput, files []*multipart.FileHeader) (*model.Entry, map[string]string, error) {
	fieldErrs := validation.ValidateEntry(&in)
	if fieldErrs != nil {
		return nil, nil, fieldErrs
	}

	entry, err := s.entryRepository.ByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if entry.TeamID != s.teamID {
		return nil, nil, repository.ErrEntryNotFound
	}

	uploaded, err := s.attachments.Upload(ctx, s.teamID, files)
	if err != nil {
		return nil, nil, err
	}

	entry.Category = in.Category
	entry.ItemType = in.ItemType
	entry.ReviewText = in.ReviewText
	entry.SharedAt = optional(in.SharedAt)
	entry.AuthorName = optional(in.AuthorName)
	entry.Note = optional(in.Note)
	entry.LinkURL = optional(in.LinkURL)
	entry.Attachments = append(entry.Attachments, uploaded...)

	err = s.entryRepository.Update(ctx, entry)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update entry: %w", err)
	}

	s.hub.PublishUpdate(entry)

	return entry, s.attachments.SignedURLs(ctx, entry.Attachments.Keys()), nil
}

// Delete removes a row and notifies subscribers. There is no UI for this;
// it backs administrative cleanup only.
func (s *EntryService) Delete(ctx context.Context, id int64) error {
	entry, err := s.entryRepository.ByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.TeamID != s.teamID {
		return repository.ErrEntryNotFound
	}

	err = s.entryRepository.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.hub.PublishDelete(s.teamID, id)
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
