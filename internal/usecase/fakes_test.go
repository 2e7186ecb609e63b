package usecase

import (
	"context"
	"sync"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeTx records transaction outcomes. The in-memory store mutates state
// directly, so tests assert on commit/rollback flags rather than on undone
// writes.
type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}
func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeDB struct {
	mu  sync.Mutex
	txs []*fakeTx
}

func (d *fakeDB) BeginTx(ctx context.Context) (database.Tx, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	tx := &fakeTx{}
	d.txs = append(d.txs, tx)
	return tx, nil
}

func (d *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (d *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (d *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (d *fakeDB) Ping(ctx context.Context) error { return nil }
func (d *fakeDB) Close()                         {}

func (d *fakeDB) lastTx() *fakeTx {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.txs) == 0 {
		return nil
	}
	return d.txs[len(d.txs)-1]
}

// memStore is an in-memory stand-in for the PostgreSQL schema. It mirrors
// the constraints the repositories rely on: one ticket row per
// (showtime, seat), one order link per ticket, one snack line per
// (order, snack).
type memStore struct {
	mu sync.Mutex

	cinemas     map[uuid.UUID]*entity.Cinema
	auditoriums map[uuid.UUID]*entity.Auditorium
	seats       map[uuid.UUID]*entity.Seat
	movies      map[uuid.UUID]*entity.Movie
	showtimes   map[uuid.UUID]*entity.Showtime
	snacks      map[uuid.UUID]*entity.SnackItem
	customers   map[uuid.UUID]*entity.Customer
	sessions    map[uuid.UUID]*entity.Session

	tickets     map[uuid.UUID]*entity.Ticket
	seatTickets map[[2]uuid.UUID]uuid.UUID // (showtime, seat) -> ticket

	orders      map[uuid.UUID]*entity.Order
	orderOf     map[uuid.UUID]uuid.UUID // ticket -> order
	orderSnacks map[uuid.UUID]map[uuid.UUID]*entity.OrderSnack
}

func newMemStore() *memStore {
	return &memStore{
		cinemas:     map[uuid.UUID]*entity.Cinema{},
		auditoriums: map[uuid.UUID]*entity.Auditorium{},
		seats:       map[uuid.UUID]*entity.Seat{},
		movies:      map[uuid.UUID]*entity.Movie{},
		showtimes:   map[uuid.UUID]*entity.Showtime{},
		snacks:      map[uuid.UUID]*entity.SnackItem{},
		customers:   map[uuid.UUID]*entity.Customer{},
		sessions:    map[uuid.UUID]*entity.Session{},
		tickets:     map[uuid.UUID]*entity.Ticket{},
		seatTickets: map[[2]uuid.UUID]uuid.UUID{},
		orders:      map[uuid.UUID]*entity.Order{},
		orderOf:     map[uuid.UUID]uuid.UUID{},
		orderSnacks: map[uuid.UUID]map[uuid.UUID]*entity.OrderSnack{},
	}
}

func newTestRepo(store *memStore) *repository.Repository {
	return &repository.Repository{
		Customer:   &memCustomerRepo{store},
		Session:    &memSessionRepo{store},
		Cinema:     &memCinemaRepo{store},
		Auditorium: &memAuditoriumRepo{store},
		Seat:       &memSeatRepo{store},
		Movie:      &memMovieRepo{store},
		Showtime:   &memShowtimeRepo{store},
		Snack:      &memSnackRepo{store},
		Ticket:     &memTicketRepo{store},
		Order:      &memOrderRepo{store},
		OrderSnack: &memOrderSnackRepo{store},
	}
}

// recomputeTotalLocked mirrors the SQL total: non-canceled attached ticket
// prices plus snack line totals. Caller holds the lock.
func (m *memStore) recomputeTotalLocked(orderID uuid.UUID) float64 {
	total := 0.0
	for ticketID, oID := range m.orderOf {
		if oID != orderID {
			continue
		}
		ticket := m.tickets[ticketID]
		if ticket != nil && ticket.Status != entity.TicketStatusCanceled {
			total += ticket.Price
		}
	}
	for _, line := range m.orderSnacks[orderID] {
		total += line.LineTotal()
	}
	if order := m.orders[orderID]; order != nil {
		order.TotalAmount = total
	}
	return total
}

// ---- customer ----

type memCustomerRepo struct{ s *memStore }

func (r *memCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if c.Email == customer.Email {
			return repository.ErrConflict
		}
	}
	r.s.customers[customer.ID] = customer
	return nil
}

func (r *memCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.customers[id], nil
}

func (r *memCustomerRepo) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

// ---- session ----

type memSessionRepo struct{ s *memStore }

func (r *memSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sessions[session.Token] = session
	return nil
}

func (r *memSessionRepo) FindByToken(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.sessions[token], nil
}

func (r *memSessionRepo) DeleteByToken(ctx context.Context, token uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sessions, token)
	return nil
}

func (r *memSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for token, session := range r.s.sessions {
		if session.ExpiresAt.Before(time.Now()) {
			delete(r.s.sessions, token)
			n++
		}
	}
	return n, nil
}

// ---- cinema ----

type memCinemaRepo struct{ s *memStore }

func (r *memCinemaRepo) Create(ctx context.Context, cinema *entity.Cinema) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.cinemas[cinema.ID] = cinema
	return nil
}

func (r *memCinemaRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Cinema, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.cinemas[id], nil
}

func (r *memCinemaRepo) FindAllActive(ctx context.Context) ([]*entity.Cinema, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Cinema
	for _, c := range r.s.cinemas {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

// ---- auditorium ----

type memAuditoriumRepo struct{ s *memStore }

func (r *memAuditoriumRepo) Create(ctx context.Context, auditorium *entity.Auditorium) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.auditoriums[auditorium.ID] = auditorium
	return nil
}

func (r *memAuditoriumRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Auditorium, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.auditoriums[id], nil
}

func (r *memAuditoriumRepo) FindByCinemaID(ctx context.Context, cinemaID uuid.UUID) ([]*entity.Auditorium, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Auditorium
	for _, a := range r.s.auditoriums {
		if a.CinemaID == cinemaID {
			out = append(out, a)
		}
	}
	return out, nil
}

// ---- seat ----

type memSeatRepo struct{ s *memStore }

func (r *memSeatRepo) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, seat := range seats {
		r.s.seats[seat.ID] = seat
	}
	return nil
}

func (r *memSeatRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.seats[id], nil
}

func (r *memSeatRepo) FindByAuditoriumID(ctx context.Context, auditoriumID uuid.UUID) ([]*entity.Seat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Seat
	for _, seat := range r.s.seats {
		if seat.AuditoriumID == auditoriumID {
			out = append(out, seat)
		}
	}
	sortSeats(out)
	return out, nil
}

func (r *memSeatRepo) FindByIDsTx(ctx context.Context, tx database.DBTX, ids []uuid.UUID) ([]*entity.Seat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Seat
	for _, id := range ids {
		if seat := r.s.seats[id]; seat != nil {
			out = append(out, seat)
		}
	}
	sortSeats(out)
	return out, nil
}

func sortSeats(seats []*entity.Seat) {
	for i := 1; i < len(seats); i++ {
		for j := i; j > 0; j-- {
			a, b := seats[j-1], seats[j]
			if a.Row < b.Row || (a.Row == b.Row && a.Col <= b.Col) {
				break
			}
			seats[j-1], seats[j] = b, a
		}
	}
}

// ---- movie ----

type memMovieRepo struct{ s *memStore }

func (r *memMovieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movies[movie.ID] = movie
	return nil
}

func (r *memMovieRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.movies[id], nil
}

func (r *memMovieRepo) FindAllActive(ctx context.Context) ([]*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Movie
	for _, m := range r.s.movies {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

// ---- showtime ----

type memShowtimeRepo struct{ s *memStore }

func (r *memShowtimeRepo) Create(ctx context.Context, showtime *entity.Showtime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.showtimes {
		if existing.AuditoriumID == showtime.AuditoriumID && existing.StartTime.Equal(showtime.StartTime) {
			return repository.ErrConflict
		}
	}
	r.s.showtimes[showtime.ID] = showtime
	return nil
}

func (r *memShowtimeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.showtimes[id], nil
}

func (r *memShowtimeRepo) FindByIDTx(ctx context.Context, tx database.DBTX, id uuid.UUID) (*entity.Showtime, error) {
	return r.FindByID(ctx, id)
}

func (r *memShowtimeRepo) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Showtime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Showtime
	for _, s := range r.s.showtimes {
		if s.MovieID == movieID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memShowtimeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.showtimes, id)
	return nil
}

// ---- snack ----

type memSnackRepo struct{ s *memStore }

func (r *memSnackRepo) Create(ctx context.Context, snack *entity.SnackItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.snacks[snack.ID] = snack
	return nil
}

func (r *memSnackRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.SnackItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.snacks[id], nil
}

func (r *memSnackRepo) FindByIDTx(ctx context.Context, tx database.DBTX, id uuid.UUID) (*entity.SnackItem, error) {
	return r.FindByID(ctx, id)
}

func (r *memSnackRepo) FindAllAvailable(ctx context.Context) ([]*entity.SnackItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SnackItem
	for _, snack := range r.s.snacks {
		if snack.IsAvailable {
			out = append(out, snack)
		}
	}
	return out, nil
}

// ---- ticket ----

type memTicketRepo struct{ s *memStore }

func (r *memTicketRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.tickets[id], nil
}

func (r *memTicketRepo) FindByShowtimeAndSeat(ctx context.Context, showtimeID, seatID uuid.UUID) (*entity.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if id, ok := r.s.seatTickets[[2]uuid.UUID{showtimeID, seatID}]; ok {
		return r.s.tickets[id], nil
	}
	return nil, nil
}

func (r *memTicketRepo) SeatsTakenByShowtime(ctx context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []uuid.UUID
	for _, ticket := range r.s.tickets {
		if ticket.ShowtimeID == showtimeID && ticket.Status.Taken() {
			out = append(out, ticket.SeatID)
		}
	}
	return out, nil
}

func (r *memTicketRepo) ExistsByShowtime(ctx context.Context, showtimeID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ticket := range r.s.tickets {
		if ticket.ShowtimeID == showtimeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memTicketRepo) ClaimTx(ctx context.Context, tx database.DBTX, ticket *entity.Ticket) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]uuid.UUID{ticket.ShowtimeID, ticket.SeatID}
	if existingID, ok := r.s.seatTickets[key]; ok {
		existing := r.s.tickets[existingID]
		if existing.Status == entity.TicketStatusPaid {
			return false, nil
		}
		if existing.Status == entity.TicketStatusReserved &&
			(existing.CustomerID == nil || ticket.CustomerID == nil || *existing.CustomerID != *ticket.CustomerID) {
			return false, nil
		}
		existing.CustomerID = ticket.CustomerID
		existing.Status = ticket.Status
		existing.Price = ticket.Price
		existing.UpdatedAt = ticket.UpdatedAt
		ticket.ID = existing.ID
		ticket.CreatedAt = existing.CreatedAt
		return true, nil
	}
	copied := *ticket
	r.s.tickets[ticket.ID] = &copied
	r.s.seatTickets[key] = ticket.ID
	return true, nil
}

func (r *memTicketRepo) FindByOrderTx(ctx context.Context, tx database.DBTX, orderID uuid.UUID) ([]*entity.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Ticket
	for ticketID, oID := range r.s.orderOf {
		if oID == orderID {
			out = append(out, r.s.tickets[ticketID])
		}
	}
	return out, nil
}

func (r *memTicketRepo) MarkPaidByOrderTx(ctx context.Context, tx database.DBTX, orderID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for ticketID, oID := range r.s.orderOf {
		if oID != orderID {
			continue
		}
		if ticket := r.s.tickets[ticketID]; ticket != nil && ticket.Status == entity.TicketStatusReserved {
			ticket.Status = entity.TicketStatusPaid
		}
	}
	return nil
}

func (r *memTicketRepo) CancelByOrderTx(ctx context.Context, tx database.DBTX, orderID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for ticketID, oID := range r.s.orderOf {
		if oID != orderID {
			continue
		}
		if ticket := r.s.tickets[ticketID]; ticket != nil {
			ticket.Status = entity.TicketStatusCanceled
			ticket.CustomerID = nil
		}
	}
	return nil
}

// ---- order ----

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.orders[id], nil
}

func (r *memOrderRepo) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Order
	for _, order := range r.s.orders {
		if order.CustomerID == customerID {
			all = append(all, order)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memOrderRepo) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, order := range r.s.orders {
		if order.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

func (r *memOrderRepo) CreateTx(ctx context.Context, tx database.DBTX, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders[order.ID] = order
	return nil
}

func (r *memOrderRepo) FindByIDForUpdateTx(ctx context.Context, tx database.DBTX, id uuid.UUID) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.orders[id], nil
}

func (r *memOrderRepo) MarkPaidTx(ctx context.Context, tx database.DBTX, id uuid.UUID, method entity.PaymentMethod, paidAt time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	order := r.s.orders[id]
	if order == nil || order.Status != entity.OrderStatusPending {
		return false, nil
	}
	order.Status = entity.OrderStatusPaid
	order.PaymentMethod = &method
	order.PaidAt = &paidAt
	return true, nil
}

func (r *memOrderRepo) MarkCanceledTx(ctx context.Context, tx database.DBTX, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	order := r.s.orders[id]
	if order == nil || order.Status != entity.OrderStatusPending {
		return false, nil
	}
	order.Status = entity.OrderStatusCanceled
	return true, nil
}

func (r *memOrderRepo) AttachTicketTx(ctx context.Context, tx database.DBTX, orderID, ticketID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.orderOf[ticketID]; exists {
		return &pgconn.PgError{Code: "23505", ConstraintName: "order_tickets_ticket_id_key"}
	}
	r.s.orderOf[ticketID] = orderID
	return nil
}

func (r *memOrderRepo) DetachTicketsTx(ctx context.Context, tx database.DBTX, orderID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for ticketID, oID := range r.s.orderOf {
		if oID == orderID {
			delete(r.s.orderOf, ticketID)
		}
	}
	return nil
}

func (r *memOrderRepo) RecomputeTotalTx(ctx context.Context, tx database.DBTX, orderID uuid.UUID) (float64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.recomputeTotalLocked(orderID), nil
}

// ---- order snacks ----

type memOrderSnackRepo struct{ s *memStore }

func (r *memOrderSnackRepo) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderSnack, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.OrderSnack
	for _, line := range r.s.orderSnacks[orderID] {
		out = append(out, line)
	}
	return out, nil
}

func (r *memOrderSnackRepo) UpsertLineTx(ctx context.Context, tx database.DBTX, line *entity.OrderSnack) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lines := r.s.orderSnacks[line.OrderID]
	if lines == nil {
		lines = map[uuid.UUID]*entity.OrderSnack{}
		r.s.orderSnacks[line.OrderID] = lines
	}
	if existing, ok := lines[line.SnackID]; ok {
		existing.Qty += line.Qty
		line.ID = existing.ID
		line.Qty = existing.Qty
		line.Price = existing.Price
		return nil
	}
	copied := *line
	lines[line.SnackID] = &copied
	return nil
}
