package service

import (
	"context"
	"time"

	"examreg/internal/audit"
	"examreg/internal/platform/privacy"
	"examreg/internal/platform/tracer"
	"examreg/internal/registration/metrics"
	"examreg/internal/registration/models"
	dErrors "examreg/pkg/domain-errors"
	"examreg/pkg/requestcontext"
)

// VerifyAndRegister persists the callback's payload when its signature is
// valid. A rejected signature persists nothing and sends nothing.
func (s *Service) VerifyAndRegister(ctx context.Context, cb *models.PaymentCallback) (record *models.Record, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanVerifyPayment,
		tracer.String(tracer.AttrOrderID, cb.OrderID),
		tracer.String(tracer.AttrTransactionID, cb.PaymentID),
	)
	defer func() { span.End(err) }()

	if !s.checkSignature(ctx, cb) {
		s.logger.WarnContext(ctx, "payment signature rejected",
			"request_id", requestcontext.RequestID(ctx),
			"order_id", cb.OrderID,
			"payment_id", cb.PaymentID,
		)
		s.emit(ctx, audit.PathPayment, audit.EventSignatureRejected, func(e *audit.Event) {
			e.OrderID = cb.OrderID
			e.TransactionID = cb.PaymentID
			e.Reason = "signature mismatch"
		})
		return nil, dErrors.New(dErrors.CodeUnauthorized, MsgInvalidSignature)
	}

	return s.commit(ctx, metrics.PathPayment, cb.PaymentID, cb.Payload, cb.OrderID)
}

// Register persists a payload without a payment, under the "N/A" transaction id.
func (s *Service) Register(ctx context.Context, payload models.Payload) (record *models.Record, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanRegister)
	defer func() { span.End(err) }()

	return s.commit(ctx, metrics.PathNoPayment, models.NoPaymentTransactionID, payload, "")
}

func (s *Service) checkSignature(ctx context.Context, cb *models.PaymentCallback) bool {
	_, span := s.tracer.Start(ctx, tracer.SpanSignatureCheck)
	ok := s.verifier.Verify(cb.OrderID, cb.PaymentID, cb.Signature)
	span.SetAttributes(tracer.Bool(tracer.AttrSignatureOK, ok))
	span.End(nil)
	s.metrics.ObserveVerification(ok)
	return ok
}

// commit runs the shared persist-then-notify tail of both paths.
func (s *Service) commit(ctx context.Context, path, transactionID string, payload models.Payload, orderID string) (*models.Record, error) {
	record := &models.Record{
		TransactionID: transactionID,
		Payload:       payload.Clone(),
		CreatedAt:     requestcontext.Now(ctx).UTC(),
	}

	id, err := s.persist(ctx, path, record)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to save registration",
			"request_id", requestcontext.RequestID(ctx),
			"path", path,
			"transaction_id", transactionID,
			"error", err,
		)
		s.emit(ctx, path, audit.EventRegistrationPersistFailed, func(e *audit.Event) {
			e.OrderID = orderID
			e.TransactionID = transactionID
			e.Reason = err.Error()
		})
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, MsgPersistFailed)
	}
	record.ID = id

	s.logger.InfoContext(ctx, "registration saved",
		"request_id", requestcontext.RequestID(ctx),
		"path", path,
		"record_id", id.String(),
		"transaction_id", transactionID,
		"email", privacy.MaskEmail(payload.Email()),
	)
	s.emit(ctx, path, audit.EventRegistrationCommitted, func(e *audit.Event) {
		e.OrderID = orderID
		e.TransactionID = transactionID
		e.RecordID = id.String()
	})

	_, span := s.tracer.Start(ctx, tracer.SpanNotify, tracer.String(tracer.AttrRecordID, id.String()))
	s.notifier.Dispatch(ctx, record)
	span.AddEvent(tracer.EventNotificationQueued)
	span.End(nil)

	return record, nil
}

func (s *Service) persist(ctx context.Context, path string, record *models.Record) (id models.RecordID, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanPersist,
		tracer.String(tracer.AttrTransactionID, record.TransactionID),
		tracer.String(tracer.AttrEmailHash, tracer.HashEmail(record.Payload.Email())),
	)
	defer func() { span.End(err) }()

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	start := time.Now()
	id, err = s.store.Save(ctx, record)
	s.metrics.ObservePersist(path, time.Since(start), err)
	return id, err
}

func (s *Service) emit(ctx context.Context, path string, typ audit.EventType, fill func(*audit.Event)) {
	if s.auditor == nil {
		return
	}
	event := audit.NewEvent(ctx, typ, path)
	fill(&event)
	s.auditor.Emit(ctx, event)
}
