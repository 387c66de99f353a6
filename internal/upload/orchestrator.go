// Package upload validates received receipt files and promotes them to
// permanent storage.
package upload

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/refund-service/internal/config"
	"github.com/spec-kit/refund-service/internal/events"
	"github.com/spec-kit/refund-service/internal/storage"
	"github.com/spec-kit/refund-service/internal/validation"
	apperrors "github.com/spec-kit/refund-service/pkg/util"
)

// MsgFileRequired is reported when the request carries no file.
const MsgFileRequired = "Arquivo é obrigatório"

// State is a step of one upload's lifecycle.
type State string

const (
	StateReceived  State = "RECEIVED"
	StateValidated State = "VALIDATED"
	StateStored    State = "STORED"
	StateRejected  State = "REJECTED"
)

// Received is a file that already sits in temporary storage.
type Received struct {
	// TempName is the file's name inside the temp directory.
	TempName string
	// Meta is the raw metadata reported by the ingestion boundary.
	Meta map[string]any
}

// Result is the outcome of a successful upload.
type Result struct {
	Filename string
	State    State
}

// Orchestrator runs the validate → store | reject sequence.
type Orchestrator struct {
	cfg        *config.UploadConfig
	store      storage.FileStorage
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewOrchestrator builds an orchestrator. cfg is read on every call.
func NewOrchestrator(cfg *config.UploadConfig, store storage.FileStorage, dispatcher events.Dispatcher, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{cfg: cfg, store: store, dispatcher: dispatcher, logger: logger}
}

// MetaSchema describes acceptable file metadata under the given configuration.
// Keys other than filename, mimetype and size pass through unexamined.
func MetaSchema(cfg *config.UploadConfig) validation.Schema {
	return validation.Schema{
		Mode: validation.Passthrough,
		Fields: []validation.Field{
			{
				Name:    "filename",
				Kind:    validation.KindString,
				Message: MsgFileRequired,
				Rules:   []validation.Rule{validation.MinLength{N: 1, Message: MsgFileRequired}},
			},
			{
				Name: "mimetype",
				Kind: validation.KindString,
				Rules: []validation.Rule{validation.Refine{
					Check: func(v any) bool {
						s, _ := v.(string)
						return cfg.Accepts(s)
					},
					Message: "Tipo de arquivo não suportado. Formatos permitidos: " + strings.Join(cfg.AcceptedTypes, ", "),
				}},
			},
			{
				Name: "size",
				Kind: validation.KindNumber,
				Rules: []validation.Rule{
					validation.Positive{},
					validation.Refine{
						Check: func(v any) bool {
							n, _ := v.(float64)
							return n <= float64(cfg.MaxFileSize())
						},
						Message: fmt.Sprintf(" Tamanho permitido de até %dMB", cfg.MaxSizeMB),
					},
				},
			},
		},
	}
}

// Handle validates the received file and promotes it, returning the stored name.
// On validation failure the temp file is removed and the validation error is returned.
// A temp file must not be handed to Handle twice.
func (o *Orchestrator) Handle(ctx context.Context, userID string, file Received) (Result, error) {
	log := o.logger.With(zap.String("temp_file", file.TempName))
	log.Debug("upload received", zap.String("state", string(StateReceived)))

	values, err := validation.Validate(MetaSchema(o.cfg), file.Meta)
	if err != nil {
		o.discard(ctx, file.TempName, log)
		log.Info("upload rejected", zap.String("state", string(StateRejected)), zap.Error(err))
		return Result{State: StateRejected}, err
	}
	log.Debug("upload validated", zap.String("state", string(StateValidated)))

	stored, err := o.store.Save(ctx, file.TempName, values.String("filename"))
	if err != nil {
		o.discard(ctx, file.TempName, log)
		return Result{State: StateRejected}, apperrors.NewInternalError(fmt.Errorf("store upload: %w", err))
	}
	log.Info("upload stored", zap.String("state", string(StateStored)), zap.String("stored", stored))

	if o.dispatcher != nil {
		event := events.NewEvent(events.EventReceiptUploaded, stored, userID, events.ReceiptUploadedPayload{
			Filename: stored,
			MimeType: values.String("mimetype"),
			Size:     int64(values.Float("size")),
		})
		if err := o.dispatcher.Publish(ctx, event); err != nil {
			log.Warn("receipt event handlers failed", zap.String("stored", stored), zap.Error(err))
		}
	}
	return Result{Filename: stored, State: StateStored}, nil
}

// discard deletes a temp file; failures are logged so they never replace the caller's error.
func (o *Orchestrator) discard(ctx context.Context, tempName string, log *zap.Logger) {
	if tempName == "" {
		return
	}
	if err := o.store.Delete(context.WithoutCancel(ctx), tempName, storage.LocationTmp); err != nil {
		log.Error("failed to delete temp upload", zap.Error(err))
	}
}
