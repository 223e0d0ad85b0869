package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/pkg/errs"
)

// UploadEvidenceCommandHandler sends a file to the object store and attaches
// the returned reference.
//
// The order is first read without a lock so an actor who may not act, or a
// stage that is not in progress, is refused before any bytes are uploaded.
// The attach step repeats every check against the locked order; if the stage
// moved on in between, the upload is orphaned and the call fails with a
// StateConflictError.
type UploadEvidenceCommandHandler struct {
	uowFactory    OrderUoWFactory
	store         ports.EvidenceStore
	uploadTimeout time.Duration
	attach        AttachEvidenceCommandHandler
	authz         services.StageAuthorizer
	logger        *slog.Logger
}

func NewUploadEvidenceCommandHandler(
	uowFactory OrderUoWFactory,
	store ports.EvidenceStore,
	uploadTimeout time.Duration,
	logger *slog.Logger,
) UploadEvidenceCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if uploadTimeout <= 0 {
		uploadTimeout = 30 * time.Second
	}
	return UploadEvidenceCommandHandler{
		uowFactory:    uowFactory,
		store:         store,
		uploadTimeout: uploadTimeout,
		attach:        NewAttachEvidenceCommandHandler(uowFactory, logger),
		authz:         services.NewStageAuthorizer(),
		logger:        logger.With("component", "UploadEvidenceCommandHandler"),
	}
}

func (h *UploadEvidenceCommandHandler) Handle(ctx context.Context, cmd UploadEvidenceCommand) (order.StageRecordState, error) {
	if err := cmd.Validate(); err != nil {
		return order.StageRecordState{}, err
	}
	if !cmd.Stage().RequiresEvidence() {
		return order.StageRecordState{}, errs.NewValueIsInvalidErrorWithCause("stage",
			fmt.Errorf("%s is approved by acknowledgment and takes no evidence", cmd.Stage()))
	}

	if err := h.precheck(ctx, cmd); err != nil {
		return order.StageRecordState{}, err
	}

	now := time.Now().UTC()
	key := EvidenceKey(cmd, now)
	ref, err := h.upload(ctx, key, cmd)
	if err != nil {
		return order.StageRecordState{}, err
	}

	attachCmd, err := NewAttachEvidenceCommand(cmd.OrderID(), cmd.Stage(), ref, cmd.Notes(), cmd.Actor())
	if err != nil {
		return order.StageRecordState{}, err
	}
	rec, err := h.attach.Handle(ctx, attachCmd)
	if err != nil {
		h.logger.WarnContext(ctx, "uploaded evidence could not be attached",
			"orderID", cmd.OrderID().String(), "stage", cmd.Stage().String(), "ref", ref, "error", err)
		return order.StageRecordState{}, err
	}
	return rec, nil
}

// EvidenceKey names an upload as <orderID>/<stage>-<unix millis><ext>.
func EvidenceKey(cmd UploadEvidenceCommand, now time.Time) string {
	return fmt.Sprintf("%s/%s-%d%s", cmd.OrderID().String(), cmd.Stage().String(), now.UnixMilli(), cmd.Extension())
}

func (h *UploadEvidenceCommandHandler) precheck(ctx context.Context, cmd UploadEvidenceCommand) error {
	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err := h.authz.AuthorizeAct(cmd.Actor(), o, cmd.Stage()); err != nil {
		return err
	}
	if err := o.Status().ValidateMutable(); err != nil {
		return err
	}
	rec, err := o.StageRecord(cmd.Stage())
	if err != nil {
		return err
	}
	if o.CurrentStage() != cmd.Stage() || rec.Status() != stage.InProgress {
		return errs.NewStateConflictError("stage "+cmd.Stage().String(), "is not the stage in progress")
	}
	return nil
}

func (h *UploadEvidenceCommandHandler) upload(ctx context.Context, key string, cmd UploadEvidenceCommand) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, h.uploadTimeout)
	defer cancel()

	ref, err := h.store.Put(ctx, key, cmd.ContentType(), cmd.Body())
	if err != nil {
		return "", errs.NewExternalDependencyError("evidence store", err)
	}
	if ref == "" {
		return "", errs.NewExternalDependencyError("evidence store", fmt.Errorf("empty reference for %s", key))
	}
	return ref, nil
}
