// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Makarov

package service

import (
	"context"
	"fmt"

	"github.com/makarovdm/go-sync-suite/internal/logger"
	"github.com/makarovdm/go-sync-suite/internal/store"
	"github.com/makarovdm/go-sync-suite/models"
)

// recordService is the concrete implementation of RecordService. The server
// treats record contents as opaque: merging namespaces is the client's job,
// the server only swaps the whole document and stamps updated_at.
type recordService struct {
	recordRepository store.RecordRepository
	notifier         Notifier
	logger           *logger.Logger
}

func NewRecordService(recordRepository store.RecordRepository, notifier Notifier, logger *logger.Logger) RecordService {
	return &recordService{
		recordRepository: recordRepository,
		notifier:         notifier,
		logger:           logger,
	}
}

// GetRecord returns the user's record. A user who has never written returns
// a wrapped store.ErrRecordNotFound.
func (s *recordService) GetRecord(ctx context.Context, userID int64) (models.RemoteRecord, error) {
	record, err := s.recordRepository.GetRecord(ctx, userID)
	if err != nil {
		return models.RemoteRecord{}, fmt.Errorf("get record for user %d: %w", userID, err)
	}

	return record, nil
}

// UpsertRecord replaces the user's record with req.Record and notifies the
// user's live sessions. The write and the notification are not atomic; a
// session that misses a notification recovers at its next reconciliation.
func (s *recordService) UpsertRecord(ctx context.Context, userID int64, req models.PutRecordRequest) (models.RemoteRecord, error) {
	log := logger.FromContext(ctx)

	if req.Record == nil {
		log.Error().Int64("userID", userID).Msg("no record content provided")
		return models.RemoteRecord{}, ErrInvalidDataProvided
	}

	updatedAt, err := s.recordRepository.UpsertRecord(ctx, userID, req.Record)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("record upsert failed")
		return models.RemoteRecord{}, fmt.Errorf("upsert record for user %d: %w", userID, err)
	}

	record := models.RemoteRecord{
		UserID:     userID,
		Namespaces: req.Record,
		UpdatedAt:  updatedAt,
	}

	s.notifier.Broadcast(ctx, userID, models.SyncNotification{
		Type:      models.NotificationRecordUpdated,
		DeviceID:  req.DeviceID,
		Record:    req.Record,
		UpdatedAt: updatedAt,
	})

	return record, nil
}
