package viewstate

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"shopfront/internal/catalog"
	"shopfront/internal/models"
)

// DefaultConfirmationTTL es cuánto dura visible el mensaje de
// confirmación antes de auto-descartarse.
const DefaultConfirmationTTL = 2 * time.Second

// Store aplica las transiciones de estado bajo un mutex y publica cada
// estado nuevo a los suscriptores. Cada suscriptor recibe por un canal
// con buffer 1 y semántica de "último gana": si no alcanzó a leer, el
// estado viejo se descarta y queda el más reciente.
type Store struct {
	mu      sync.Mutex
	state   State
	subs    map[int]chan State
	nextSub int

	// la carga en curso se resuelve a lo más una vez
	pending bool

	dismiss    *time.Timer
	dismissTTL time.Duration
	closed     bool

	logger *zap.Logger
}

// NewStore crea un store con el estado inicial vacío.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		subs:       make(map[int]chan State),
		dismissTTL: DefaultConfirmationTTL,
		logger:     logger,
	}
}

// SetConfirmationTTL ajusta la duración del mensaje de confirmación.
// Pensado para tests; debe llamarse antes de usar el store.
func (st *Store) SetConfirmationTTL(ttl time.Duration) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.dismissTTL = ttl
}

// State devuelve la foto actual.
func (st *Store) State() State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

// Subscribe registra un observador. Devuelve el canal de estados y una
// función para desuscribirse; la desuscripción es idempotente.
func (st *Store) Subscribe() (<-chan State, func()) {
	st.mu.Lock()
	defer st.mu.Unlock()

	id := st.nextSub
	st.nextSub++
	ch := make(chan State, 1)
	st.subs[id] = ch

	cancel := func() {
		st.mu.Lock()
		defer st.mu.Unlock()
		if sub, ok := st.subs[id]; ok {
			delete(st.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// StartLoad entra al estado de carga y habilita una única resolución.
func (st *Store) StartLoad() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.closed {
		return
	}
	st.pending = true
	st.apply(startLoad(st.state))
}

// ResolveCatalog completa la carga en curso con el catálogo recibido.
// Si no hay carga pendiente (ya resuelta o nunca iniciada) se ignora:
// no hay escritores concurrentes del resultado de una misma carga.
func (st *Store) ResolveCatalog(products []models.Product) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.closed || !st.pending {
		return
	}
	st.pending = false
	st.apply(resolveCatalog(st.state, products))
}

// ResolveError completa la carga en curso con un error. El usuario
// puede reintentar con StartLoad.
func (st *Store) ResolveError(msg string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.closed || !st.pending {
		return
	}
	st.pending = false
	st.logger.Warn("catalog load failed", zap.String("reason", msg))
	st.apply(resolveError(st.state, msg))
}

// SetQueryText actualiza el texto de búsqueda y recalcula lo visible.
func (st *Store) SetQueryText(text string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.closed {
		return
	}
	q := st.state.Query
	q.Text = text
	st.apply(setQuery(st.state, q))
}

// SelectCategory aplica la regla de toggle sobre el chip tocado.
func (st *Store) SelectCategory(label string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.closed {
		return
	}
	q := st.state.Query
	q.Category = catalog.Toggle(q.Category, label)
	st.apply(setQuery(st.state, q))
}

// ShowConfirmation muestra un mensaje transitorio y arma el timer de
// auto-descarte. Un mensaje nuevo reinicia el timer del anterior.
func (st *Store) ShowConfirmation(msg string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.closed {
		return
	}
	if st.dismiss != nil {
		st.dismiss.Stop()
	}
	st.apply(setConfirmation(st.state, msg))
	st.dismiss = time.AfterFunc(st.dismissTTL, st.dismissConfirmation)
}

func (st *Store) dismissConfirmation() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.closed || st.state.Confirmation == "" {
		return
	}
	st.apply(setConfirmation(st.state, ""))
}

// Close cancela el timer pendiente y cierra todos los canales de
// suscripción. Después de Close el store no aplica más transiciones,
// así un callback atrasado nunca toca una pantalla ya desmontada.
func (st *Store) Close() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.closed {
		return
	}
	st.closed = true
	if st.dismiss != nil {
		st.dismiss.Stop()
		st.dismiss = nil
	}
	for id, ch := range st.subs {
		delete(st.subs, id)
		close(ch)
	}
}

// apply guarda el estado nuevo y lo publica. Se llama con el mutex tomado.
func (st *Store) apply(next State) {
	st.state = next
	for _, ch := range st.subs {
		select {
		case ch <- next:
		default:
			// descarta el estado no leído y deja el más nuevo
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- next:
			default:
			}
		}
	}
}
