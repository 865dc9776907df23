package client

import "github.com/aradovic23/drinks-viewer/pkg/logger"

// Notification — транзитное уведомление о результате действия.
type Notification struct {
	Action    ActionKind
	ItemTitle string
	Message   string
}

// Notifier получает уведомления об исходах мутаций.
// Реализация решает, как показать их пользователю.
type Notifier interface {
	Success(n Notification)
	Error(n Notification)
}

// LogNotifier пишет уведомления в журнал. Используется там, где нет
// интерактивного интерфейса, и как реализация по умолчанию.
type LogNotifier struct {
	logger logger.Logger
}

func NewLogNotifier(logger logger.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Success(n Notification) {
	l.logger.Infof("%s %q: done", n.Action, n.ItemTitle)
}

func (l *LogNotifier) Error(n Notification) {
	l.logger.Warnf("%s %q failed: %s", n.Action, n.ItemTitle, n.Message)
}
