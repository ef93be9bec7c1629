package transfer

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// Прогресс имитируется: реальную загрузку выполняет браузер, и странице она не видна.
// Проценты растут случайными шагами до 90, через SnapAfter становятся 100,
// ещё через ResetAfter кнопка возвращается в исходное состояние.

const progressCap = 90

type ProgressOptions struct {
	Tick       time.Duration
	SnapAfter  time.Duration
	ResetAfter time.Duration
	MaxStep    int
	// Step переопределяет случайный шаг (для тестов)
	Step func() int
}

func DefaultProgressOptions() ProgressOptions {
	return ProgressOptions{
		Tick:       100 * time.Millisecond,
		SnapAfter:  time.Second,
		ResetAfter: 2 * time.Second,
		MaxStep:    15,
	}
}

type Event struct {
	Percent int
	// Idle - имитация закончена, кнопку можно вернуть
	Idle bool
}

// SSE - событие в формате text/event-stream
func (e Event) SSE() string {
	if e.Idle {
		return fmt.Sprintf("event: idle\ndata: %d\n\n", e.Percent)
	}

	return fmt.Sprintf("event: progress\ndata: %d\n\n", e.Percent)
}

func (o ProgressOptions) step() int {
	if o.Step != nil {
		return o.Step()
	}

	if o.MaxStep <= 1 {
		return 1
	}

	return 1 + rand.IntN(o.MaxStep)
}

// Simulate отправляет события в emit, пока не дойдёт до Idle.
// Ошибка emit (например, клиент отключился) останавливает имитацию.
func Simulate(ctx context.Context, opts ProgressOptions, emit func(Event) error) error {
	if opts.Tick <= 0 {
		opts.Tick = DefaultProgressOptions().Tick
	}

	percent := 0
	if err := emit(Event{Percent: percent}); err != nil {
		return err
	}

	ticker := time.NewTicker(opts.Tick)
	defer ticker.Stop()

	snap := time.NewTimer(opts.SnapAfter)
	defer snap.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-snap.C:
			break loop
		case <-ticker.C:
			if percent >= progressCap {
				continue
			}

			percent = min(percent+opts.step(), progressCap)
			if err := emit(Event{Percent: percent}); err != nil {
				return err
			}
		}
	}

	if err := emit(Event{Percent: 100}); err != nil {
		return err
	}

	reset := time.NewTimer(opts.ResetAfter)
	defer reset.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-reset.C:
	}

	return emit(Event{Percent: 100, Idle: true})
}
