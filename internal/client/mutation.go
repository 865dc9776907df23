package client

import (
	"context"
	"sync"
	"time"

	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/aradovic23/drinks-viewer/pkg/e"
)

// ActionKind — вид мутации над продуктом.
type ActionKind string

const (
	ActionCreate    ActionKind = "create"
	ActionUpdate    ActionKind = "update"
	ActionDelete    ActionKind = "delete"
	ActionHide      ActionKind = "hide"
	ActionRecommend ActionKind = "recommend"
)

// RequiresConfirmation сообщает, нужно ли подтверждение перед выполнением.
// Создание и обновление не разрушительны и выполняются сразу.
func (k ActionKind) RequiresConfirmation() bool {
	switch k {
	case ActionDelete, ActionHide, ActionRecommend:
		return true
	default:
		return false
	}
}

// State — состояние координатора мутации.
type State int

const (
	StateIdle State = iota
	StateConfirming
	StateInFlight
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConfirming:
		return "confirming"
	case StateInFlight:
		return "in_flight"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Coordinator управляет жизненным циклом одной мутации для пары
// (продукт, вид действия): подтверждение, единственный сетевой вызов,
// инвалидация кэша и уведомление. Пока мутация в полёте, повторные
// попытки отклоняются. После закрытия поздние завершения не меняют
// состояние интерфейса.
type Coordinator struct {
	itemID string
	kind   ActionKind

	store    *CatalogStore
	gateway  Gateway
	notifier Notifier

	mutationTimeout time.Duration
	notificationTTL time.Duration

	mu         sync.Mutex
	itemTitle  string
	state      State
	closed     bool
	resetTimer *time.Timer
}

// State возвращает текущее состояние координатора.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Open переводит координатор в состояние подтверждения.
// Сетевой вызов на этом шаге не выполняется.
func (c *Coordinator) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return e.ErrClientClosed
	}
	if c.state == StateInFlight {
		return e.ErrMutationInFlight
	}
	if !c.kind.RequiresConfirmation() {
		return e.Wrap(string(c.kind), e.ErrStatusBadRequest)
	}

	c.state = StateConfirming
	return nil
}

// Cancel закрывает подтверждение без выполнения действия.
func (c *Coordinator) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateConfirming {
		return e.ErrConfirmationRequired
	}

	c.state = StateIdle
	return nil
}

// Confirm выполняет подтверждённое действие. Ровно один сетевой вызов:
// повторный Confirm, пока мутация в полёте, отклоняется.
func (c *Coordinator) Confirm(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return e.ErrClientClosed
	}
	if c.state == StateInFlight {
		c.mu.Unlock()
		return e.ErrMutationInFlight
	}
	if c.state != StateConfirming {
		c.mu.Unlock()
		return e.ErrConfirmationRequired
	}
	c.state = StateInFlight
	c.mu.Unlock()

	return c.run(ctx, func(ctx context.Context) (*domain.Product, error) {
		switch c.kind {
		case ActionDelete:
			return nil, c.gateway.DeleteProduct(ctx, c.itemID)
		case ActionHide:
			return c.gateway.HideProduct(ctx, c.itemID)
		default:
			return c.gateway.RecommendProduct(ctx, c.itemID)
		}
	})
}

// SubmitCreate создаёт продукт, минуя подтверждение.
// Payload должен быть предварительно пропущен через FormBinder.
func (c *Coordinator) SubmitCreate(ctx context.Context, payload *ProductPayload) error {
	if c.kind != ActionCreate {
		return e.Wrap(string(c.kind), e.ErrStatusBadRequest)
	}

	if err := c.takeOff(payload.Title); err != nil {
		return err
	}

	return c.run(ctx, func(ctx context.Context) (*domain.Product, error) {
		return c.gateway.CreateProduct(ctx, payload)
	})
}

// SubmitUpdate обновляет продукт, минуя подтверждение.
func (c *Coordinator) SubmitUpdate(ctx context.Context, patch *ProductPatch) error {
	if c.kind != ActionUpdate {
		return e.Wrap(string(c.kind), e.ErrStatusBadRequest)
	}

	if err := c.takeOff(""); err != nil {
		return err
	}

	return c.run(ctx, func(ctx context.Context) (*domain.Product, error) {
		return c.gateway.UpdateProduct(ctx, c.itemID, patch)
	})
}

// Dismiss закрывает уведомление и возвращает координатор в исходное состояние.
func (c *Coordinator) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Таймер сброса может сработать параллельно с Close.
	if c.closed {
		return
	}
	if c.state != StateSucceeded && c.state != StateFailed {
		return
	}
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
	c.state = StateIdle
}

// Close останавливает координатор: завершение уже летящей мутации
// больше не меняет состояние и не шлёт уведомлений.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
}

// takeOff переводит Idle → InFlight для действий без подтверждения.
func (c *Coordinator) takeOff(title string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return e.ErrClientClosed
	}
	if c.state == StateInFlight {
		return e.ErrMutationInFlight
	}
	if c.state != StateIdle {
		return e.ErrMutationInFlight
	}

	if title != "" {
		c.itemTitle = title
	}
	c.state = StateInFlight
	return nil
}

// run выполняет сетевой вызов и доводит координатор до конечного состояния.
// Успех безусловно инвалидирует кэш каталога; неудача кэш не трогает,
// потому что состояние на сервере не изменилось.
func (c *Coordinator) run(ctx context.Context, call func(context.Context) (*domain.Product, error)) error {
	ctx, cancel := context.WithTimeout(ctx, c.mutationTimeout)
	defer cancel()

	product, err := call(ctx)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return err
	}
	title := c.itemTitle

	if err != nil {
		c.state = StateFailed
		c.mu.Unlock()

		c.notifier.Error(Notification{
			Action:    c.kind,
			ItemTitle: title,
			Message:   err.Error(),
		})
		c.scheduleReset()
		return err
	}

	c.state = StateSucceeded
	c.mu.Unlock()

	// Оптимистичное локальное обновление до прихода свежего снимка.
	switch {
	case c.kind == ActionDelete:
		c.store.Remove(c.itemID)
	case product != nil:
		c.store.Patch(product)
	}

	c.store.Invalidate()

	c.notifier.Success(Notification{
		Action:    c.kind,
		ItemTitle: title,
	})
	c.scheduleReset()
	return nil
}

func (c *Coordinator) scheduleReset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if c.resetTimer != nil {
		c.resetTimer.Stop()
	}
	c.resetTimer = time.AfterFunc(c.notificationTTL, c.Dismiss)
}

type coordinatorKey struct {
	itemID string
	kind   ActionKind
}

// MutationManager выдаёт координаторы по паре (продукт, действие).
// Для одной пары всегда возвращается один и тот же экземпляр, что
// обеспечивает правило «одна мутация в полёте».
type MutationManager struct {
	store    *CatalogStore
	gateway  Gateway
	notifier Notifier

	mutationTimeout time.Duration
	notificationTTL time.Duration

	mu           sync.Mutex
	coordinators map[coordinatorKey]*Coordinator
	closed       bool
}

func NewMutationManager(
	store *CatalogStore,
	gateway Gateway,
	notifier Notifier,
	mutationTimeout time.Duration,
	notificationTTL time.Duration,
) *MutationManager {
	return &MutationManager{
		store:           store,
		gateway:         gateway,
		notifier:        notifier,
		mutationTimeout: mutationTimeout,
		notificationTTL: notificationTTL,
		coordinators:    make(map[coordinatorKey]*Coordinator),
	}
}

// For возвращает координатор для пары (продукт, действие).
func (m *MutationManager) For(itemID, itemTitle string, kind ActionKind) *Coordinator {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := coordinatorKey{itemID: itemID, kind: kind}
	if c, ok := m.coordinators[key]; ok {
		return c
	}

	c := &Coordinator{
		itemID:          itemID,
		itemTitle:       itemTitle,
		kind:            kind,
		store:           m.store,
		gateway:         m.gateway,
		notifier:        m.notifier,
		mutationTimeout: m.mutationTimeout,
		notificationTTL: m.notificationTTL,
		closed:          m.closed,
	}
	m.coordinators[key] = c
	return c
}

// Close закрывает все координаторы при демонтаже представления.
func (m *MutationManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	for _, c := range m.coordinators {
		c.Close()
	}
}
