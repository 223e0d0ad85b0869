package commands

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"production/internal/core/domain/model/identity"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrUploadEvidenceCommandIsNotConstructed = errors.New(
	"UploadEvidenceCommand must be created via NewUploadEvidenceCommand constructor",
)

// UploadEvidenceCommand carries an evidence file that still has to be sent to
// the object store before its reference can be attached.
type UploadEvidenceCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	stage       stage.Stage
	fileName    string
	contentType string
	body        io.Reader
	notes       *string
	actor       identity.Actor

	guard guard.ConstructorGuard
}

func NewUploadEvidenceCommand(
	orderID kernel.UUID,
	s stage.Stage,
	fileName string,
	contentType string,
	body io.Reader,
	notes *string,
	actor identity.Actor,
) (UploadEvidenceCommand, error) {
	var bodyErr error
	if body == nil {
		bodyErr = errs.NewValueIsRequiredError("file")
	}
	if err := errors.Join(
		validateOrderID(orderID),
		s.Validate(),
		bodyErr,
		validateActor(actor),
	); err != nil {
		return UploadEvidenceCommand{}, err
	}

	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return UploadEvidenceCommand{
		orderID:     orderID,
		stage:       s,
		fileName:    strings.TrimSpace(fileName),
		contentType: contentType,
		body:        body,
		notes:       copyString(notes),
		actor:       actor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UploadEvidenceCommand) Validate() error {
	return c.guard.Validate(ErrUploadEvidenceCommandIsNotConstructed)
}

func (c UploadEvidenceCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UploadEvidenceCommand) Stage() stage.Stage {
	return c.stage
}

// Extension returns the lower-cased file extension including the dot, or "".
func (c UploadEvidenceCommand) Extension() string {
	return strings.ToLower(filepath.Ext(c.fileName))
}

func (c UploadEvidenceCommand) ContentType() string {
	return c.contentType
}

func (c UploadEvidenceCommand) Body() io.Reader {
	return c.body
}

func (c UploadEvidenceCommand) Notes() *string {
	return copyString(c.notes)
}

func (c UploadEvidenceCommand) Actor() identity.Actor {
	return c.actor
}
