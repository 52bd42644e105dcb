package operator

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/operator/actions"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage *storage.Storage
	queue   chan ActionItem
}

func NewOperator(s *storage.Storage, queue chan ActionItem) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		item.response <- ActionItemResponse{err: o.processItem(item)}
	}
}

// processItem runs the action in its own transaction. The transaction is
// committed only when Perform returns nil; every other exit rolls it back.
func (o *Operator) processItem(item ActionItem) (err error) {
	if err := item.ctx.Err(); err != nil {
		return err
	}

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action %T panicked: %v", item.action, r)
		}
		if committed {
			return
		}
		if rbErr := writer.Rollback(); rbErr != nil {
			logrus.WithError(rbErr).WithField("action", fmt.Sprintf("%T", item.action)).
				Warn("operator.rollback.failed")
		}
	}()

	if err = item.action.Perform(item.ctx, writer); err != nil {
		return err
	}

	if err = writer.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
