package lifecycle

import (
	"context"

	"github.com/bountyboard/bountyboard-backend/pkg/chain"
	"github.com/bountyboard/bountyboard-backend/pkg/datastore"
	"github.com/bountyboard/bountyboard-backend/pkg/logging"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

// ReputationNotifier records a request outcome against the creator's reputation.
// Notify never fails the caller; delivery is best effort.
type ReputationNotifier interface {
	Notify(ctx context.Context, creator string, requestID string, completed bool)
}

// DirectNotifier submits updateRequestStatus in-line and drops the update on failure
type DirectNotifier struct {
	writer chain.ReputationWriter
	logger logging.Logger
}

func NewDirectNotifier(writer chain.ReputationWriter, logger logging.Logger) *DirectNotifier {
	return &DirectNotifier{writer: writer, logger: logger}
}

func (n *DirectNotifier) Notify(ctx context.Context, creator string, requestID string, completed bool) {
	txHash, err := n.writer.UpdateRequestStatus(ctx, creator, requestID, completed)
	if err != nil {
		ReputationNotifyTotal.WithLabelValues("direct", "dropped").Inc()
		n.logger.Warn("Reputation update failed, dropping",
			"creator", creator, "request_id", requestID, "completed", completed, "error", err)
		return
	}
	ReputationNotifyTotal.WithLabelValues("direct", "delivered").Inc()
	n.logger.Info("Reputation updated", "creator", creator, "request_id", requestID, "tx_hash", txHash)
}

// OutboxNotifier submits in-line and parks failed updates in the outbox for the relay
type OutboxNotifier struct {
	writer chain.ReputationWriter
	outbox datastore.OutboxRepository
	logger logging.Logger
}

func NewOutboxNotifier(writer chain.ReputationWriter, outbox datastore.OutboxRepository, logger logging.Logger) *OutboxNotifier {
	return &OutboxNotifier{writer: writer, outbox: outbox, logger: logger}
}

func (n *OutboxNotifier) Notify(ctx context.Context, creator string, requestID string, completed bool) {
	txHash, err := n.writer.UpdateRequestStatus(ctx, creator, requestID, completed)
	if err == nil {
		ReputationNotifyTotal.WithLabelValues("outbox", "delivered").Inc()
		n.logger.Info("Reputation updated", "creator", creator, "request_id", requestID, "tx_hash", txHash)
		return
	}

	event := &types.ReputationEvent{
		RequestID:      requestID,
		CreatorAddress: creator,
		Completed:      completed,
		Attempts:       1,
		LastError:      err.Error(),
	}
	if outboxErr := n.outbox.Create(ctx, event); outboxErr != nil {
		ReputationNotifyTotal.WithLabelValues("outbox", "dropped").Inc()
		n.logger.Error("Failed to queue reputation update, dropping",
			"creator", creator, "request_id", requestID, "error", err, "outbox_error", outboxErr)
		return
	}
	ReputationNotifyTotal.WithLabelValues("outbox", "queued").Inc()
	n.logger.Warn("Reputation update failed, queued for relay",
		"creator", creator, "request_id", requestID, "event_id", event.ID, "error", err)
}
