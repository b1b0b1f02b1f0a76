// Package notification turns domain events into outbound emails. Mail
// delivery runs on the worker pool so publishing never blocks a request.
package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/orders/backend/internal/domain/identity"
	"github.com/orders/backend/internal/domain/order"
	"github.com/orders/backend/internal/domain/shared"
	"github.com/orders/backend/internal/infrastructure/email"
	"github.com/orders/backend/internal/infrastructure/worker"
)

// Queue accepts background jobs
type Queue interface {
	Submit(job worker.Job) error
}

var _ shared.EventHandler = (*Dispatcher)(nil)

// Dispatcher subscribes to domain events and mails the affected parties:
// confirmation tokens to new users, status updates to customers and a
// summary of every placed order to the administrator.
type Dispatcher struct {
	userRepo  identity.UserRepository
	orderRepo order.Repository
	sender    email.Sender
	queue     Queue
	adminTo   string
	logger    *zap.Logger
}

// NewDispatcher creates a notification dispatcher. adminTo may be empty,
// in which case no admin copies are sent.
func NewDispatcher(
	userRepo identity.UserRepository,
	orderRepo order.Repository,
	sender email.Sender,
	queue Queue,
	adminTo string,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		userRepo:  userRepo,
		orderRepo: orderRepo,
		sender:    sender,
		queue:     queue,
		adminTo:   adminTo,
		logger:    logger.Named("notifications"),
	}
}

// EventTypes returns the events the dispatcher reacts to
func (d *Dispatcher) EventTypes() []string {
	return []string{
		identity.EventTypeUserRegistered,
		order.EventTypeStateChanged,
	}
}

// Handle schedules the mail for the event on the background queue. A full
// queue drops the mail with a logged error rather than failing the caller.
func (d *Dispatcher) Handle(ctx context.Context, event shared.DomainEvent) error {
	var job worker.Job

	switch e := event.(type) {
	case *identity.UserRegisteredEvent:
		job = d.confirmTokenJob(e)
	case *order.StateChangedEvent:
		job = d.stateChangedJob(e)
	default:
		return nil
	}

	if err := d.queue.Submit(job); err != nil {
		d.logger.Error("failed to queue notification",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	}
	return nil
}

// confirmTokenJob mails the registration confirmation token
func (d *Dispatcher) confirmTokenJob(event *identity.UserRegisteredEvent) worker.Job {
	to := event.Email
	key := event.TokenKey
	return func(ctx context.Context) {
		msg := email.Message{
			To:      []string{to},
			Subject: subjectConfirmToken,
			Text:    confirmTokenBody(to, key),
		}
		if err := d.sender.Send(ctx, msg); err != nil {
			d.logger.Error("failed to send confirmation mail",
				zap.String("to", to),
				zap.Error(err),
			)
		}
	}
}

// stateChangedJob mails the customer a status update; when an order is
// freshly placed it also mails the administrator a full summary.
func (d *Dispatcher) stateChangedJob(event *order.StateChangedEvent) worker.Job {
	orderID := event.AggregateID()
	userID := event.UserID
	state := event.State
	return func(ctx context.Context) {
		user, err := d.userRepo.FindByID(ctx, userID)
		if err != nil {
			d.logger.Error("failed to load user for notification",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
			return
		}

		o, err := d.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			d.logger.Error("failed to load order for notification",
				zap.String("order_id", orderID.String()),
				zap.Error(err),
			)
			return
		}

		msg := email.Message{
			To:      []string{user.Email},
			Subject: subjectOrderStatus,
			Text:    orderStatusBody(o),
		}
		if err := d.sender.Send(ctx, msg); err != nil {
			d.logger.Error("failed to send status mail",
				zap.String("to", user.Email),
				zap.Error(err),
			)
		}

		if state == order.StateNew && d.adminTo != "" {
			d.notifyAdmin(ctx, o, user.Email)
		}
	}
}

// notifyAdmin mails the administrator the new-order summary
func (d *Dispatcher) notifyAdmin(ctx context.Context, o *order.Order, buyerEmail string) {
	html, err := adminOrderBody(o, buyerEmail)
	if err != nil {
		d.logger.Error("failed to render admin order mail",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
		return
	}

	msg := email.Message{
		To:      []string{d.adminTo},
		Subject: subjectNewOrder,
		Text:    "Размещён новый заказ №" + o.ID.String(),
		HTML:    html,
	}
	if err := d.sender.Send(ctx, msg); err != nil {
		d.logger.Error("failed to send admin order mail",
			zap.String("to", d.adminTo),
			zap.Error(err),
		)
	}
}
