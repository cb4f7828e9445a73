package quote

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/jhoicas/ascari-panel/internal/application/ports"
	"github.com/jhoicas/ascari-panel/internal/domain/entity"
)

var errRejected = errors.New("el backend rechazó la cotización")

// Dispatcher envía cotizaciones al backend en segundo plano. Política local primero: la cotización
// ya está emitida y se puede imprimir; el envío es best-effort y su resultado queda en SyncStatus
// y en los logs, nunca se le muestra al vendedor como error.
type Dispatcher struct {
	sem     *semaphore.Weighted
	timeout time.Duration
	log     zerolog.Logger
	now     func() time.Time

	mu       sync.Mutex
	statuses map[string]entity.SyncStatus
	released map[string]struct{} // liberados con el envío todavía en curso
	wg       sync.WaitGroup
}

// NewDispatcher limita a maxInFlight los envíos simultáneos de todo el proceso.
func NewDispatcher(maxInFlight int64, timeout time.Duration, log zerolog.Logger) *Dispatcher {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{
		sem:      semaphore.NewWeighted(maxInFlight),
		timeout:  timeout,
		log:      log,
		now:      time.Now,
		statuses: map[string]entity.SyncStatus{},
		released: map[string]struct{}{},
	}
}

// Persist programa el envío de q. Cada código se envía una sola vez mientras su estado esté retenido;
// devuelve false si ya estaba.
func (d *Dispatcher) Persist(gw ports.SessionGateway, q entity.Quotation) bool {
	d.mu.Lock()
	if _, seen := d.statuses[q.Code]; seen {
		d.mu.Unlock()
		return false
	}
	d.statuses[q.Code] = entity.SyncStatus{Code: q.Code, State: entity.SyncPending, UpdatedAt: d.now()}
	d.wg.Add(1)
	d.mu.Unlock()

	payload := ports.PayloadFromQuotation(q)
	go func() {
		defer d.wg.Done()
		_ = d.sem.Acquire(context.Background(), 1)
		defer d.sem.Release(1)

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		res, err := gw.SubmitQuotation(ctx, payload)
		if err == nil && !res.Success {
			err = errRejected
		}
		if err != nil {
			d.log.Warn().Err(err).Str("code", payload.Code).Msg("no se pudo registrar la cotización en el backend")
			d.record(entity.SyncStatus{Code: payload.Code, State: entity.SyncFailed, Error: err.Error()})
			return
		}
		d.log.Info().Str("code", payload.Code).Str("remote_id", res.RemoteID).Msg("cotización registrada en el backend")
		d.record(entity.SyncStatus{Code: payload.Code, State: entity.SyncSynced, RemoteID: res.RemoteID})
	}()
	return true
}

func (d *Dispatcher) record(s entity.SyncStatus) {
	s.UpdatedAt = d.now()
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.released[s.Code]; ok {
		delete(d.released, s.Code)
		delete(d.statuses, s.Code)
		return
	}
	d.statuses[s.Code] = s
}

// Release descarta el estado de un código que ya nadie va a consultar (nueva cotización o sesión
// cerrada). Si el envío sigue en curso, el estado se descarta al terminar.
func (d *Dispatcher) Release(code string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.statuses[code]
	if !ok {
		return
	}
	if s.State == entity.SyncPending {
		d.released[code] = struct{}{}
		return
	}
	delete(d.statuses, code)
}

// Len códigos con estado retenido.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.statuses)
}

// Status estado del envío de un código.
func (d *Dispatcher) Status(code string) (entity.SyncStatus, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.statuses[code]
	return s, ok
}

// Wait espera a que terminen los envíos en curso (apagado y tests).
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
