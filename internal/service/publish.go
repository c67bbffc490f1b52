package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/events"
)

// publishChange publishes a row change without blocking the caller's
// success path. Failures are logged and swallowed.
func publishChange(ctx context.Context, pub events.Publisher, logger *zap.Logger, eventType, table string, record, oldRecord interface{}) {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		logger.Error("failed to marshal event record", zap.Error(err))
		return
	}

	event := events.ChangeEvent{
		Type:   eventType,
		Table:  table,
		Record: recordJSON,
	}
	if oldRecord != nil {
		oldJSON, err := json.Marshal(oldRecord)
		if err != nil {
			logger.Error("failed to marshal event old record", zap.Error(err))
			return
		}
		event.OldRecord = oldJSON
	}

	if err := pub.PublishChange(ctx, event); err != nil {
		logger.Warn("failed to publish change event", zap.String("table", table), zap.Error(err))
	}
}
